package registry

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/tools"
	"github.com/effective-security/fintools/utils"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server returns the MCP server exporting the published tools and prompts.
// The server is created once, the calls are dispatched through the registry.
func (r *Registry) Server() (*mcp.Server, error) {
	if r.State() != Ready {
		return nil, errors.WithStack(ErrNotReady)
	}

	r.serverOnce.Do(func() {
		srv := mcp.NewServer(&mcp.Implementation{Name: r.name, Version: r.version}, nil)
		for _, name := range r.names {
			tool := r.byName[name]
			if p, ok := tool.(tools.Prompter); ok {
				srv.AddPrompt(mcpPrompt(p), r.promptHandler(name))
				continue
			}
			srv.AddTool(mcpTool(tool), r.toolHandler(name))
		}
		r.server = srv
	})
	return r.server, nil
}

func mcpTool(tool tools.ITool) *mcp.Tool {
	t := &mcp.Tool{
		Name:        tool.Name(),
		Description: tool.Description(),
		InputSchema: inputSchema(tool.Parameters()),
	}
	if tags := tools.TagsOf(tool); len(tags) > 0 {
		t.Meta = mcp.Meta{"tags": tags}
	}
	if ann := tools.AnnotationsOf(tool); ann != nil {
		openWorld := ann.OpenWorld
		t.Title = ann.Title
		t.Annotations = &mcp.ToolAnnotations{
			Title:         ann.Title,
			ReadOnlyHint:  ann.ReadOnly,
			OpenWorldHint: &openWorld,
		}
	}
	return t
}

func mcpPrompt(p tools.Prompter) *mcp.Prompt {
	prompt := &mcp.Prompt{
		Name:        p.Name(),
		Description: p.Description(),
	}
	for _, arg := range p.Arguments() {
		prompt.Arguments = append(prompt.Arguments, &mcp.PromptArgument{
			Name:        arg.Name,
			Description: arg.Description,
			Required:    arg.Required,
		})
	}
	if tags := tools.TagsOf(p); len(tags) > 0 {
		prompt.Meta = mcp.Meta{"tags": tags}
	}
	return prompt
}

// inputSchema returns the schema as JSON object of type `object`
func inputSchema(params any) map[string]any {
	var res map[string]any
	if params != nil {
		if js, err := json.Marshal(params); err == nil {
			_ = json.Unmarshal(js, &res)
		}
	}
	if res == nil {
		res = map[string]any{}
	}
	if _, ok := res["type"]; !ok {
		res["type"] = "object"
	}
	return res
}

func (r *Registry) toolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := "{}"
		if req.Params != nil && len(req.Params.Arguments) > 0 {
			input = string(req.Params.Arguments)
		}
		out, err := r.Call(ctx, name, input)
		if err != nil {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: utils.ErrorJSON(err.Error())}},
			}, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: out}},
		}, nil
	}
}

func (r *Registry) promptHandler(name string) mcp.PromptHandler {
	return func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		args := map[string]string{}
		if req.Params != nil && req.Params.Arguments != nil {
			args = req.Params.Arguments
		}
		out, err := r.Call(ctx, name, utils.ToJSON(args))
		if err != nil {
			return nil, err
		}
		tool, _ := r.Lookup(name)
		return &mcp.GetPromptResult{
			Description: tool.Description(),
			Messages: []*mcp.PromptMessage{
				{Role: "user", Content: &mcp.TextContent{Text: out}},
			},
		}, nil
	}
}
