package alphavantage

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/pkg/httpenc"
	"github.com/effective-security/fintools/utils"
	"github.com/effective-security/xlog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RemoteTool describes a tool of the remote server
type RemoteTool struct {
	Name        string
	Description string
	// InputSchema is the JSON schema of the tool arguments
	InputSchema any
}

// Proxy provides access to the remote tools
type Proxy interface {
	// ListTools returns the inventory of the remote tools
	ListTools(ctx context.Context) ([]*RemoteTool, error)
	// CallTool invokes the remote tool and returns its text result
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
}

const clientName = "fintools"

// MCPProxy is the Proxy for the remote MCP server over streamable HTTP.
// The session is established on first use and reused.
type MCPProxy struct {
	transport func() mcp.Transport
	timeout   time.Duration
	client    *mcp.Client

	lock    sync.Mutex
	session *mcp.ClientSession
}

// ensure MCPProxy implements Proxy
var _ Proxy = (*MCPProxy)(nil)

// NewMCPProxy returns the proxy for the endpoint,
// the API key is passed as `apikey` query parameter.
func NewMCPProxy(endpoint, apiKey string, timeout time.Duration) (*MCPProxy, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid endpoint: %s", endpoint)
	}
	if apiKey != "" {
		q := u.Query()
		q.Set("apikey", apiKey)
		u.RawQuery = q.Encode()
	}
	target := u.String()

	httpClient := &http.Client{
		Transport: &httpenc.Transport{AcceptEncoding: httpenc.AcceptAll},
	}
	return NewMCPProxyWithTransport(func() mcp.Transport {
		return &mcp.StreamableClientTransport{
			Endpoint:   target,
			HTTPClient: httpClient,
		}
	}, timeout), nil
}

// NewMCPProxyWithTransport returns the proxy connecting with the transport
func NewMCPProxyWithTransport(transport func() mcp.Transport, timeout time.Duration) *MCPProxy {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MCPProxy{
		transport: transport,
		timeout:   timeout,
		client:    mcp.NewClient(&mcp.Implementation{Name: clientName, Version: "v1.0.0"}, nil),
	}
}

func (p *MCPProxy) connect(ctx context.Context) (*mcp.ClientSession, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.session != nil {
		return p.session, nil
	}

	session, err := p.client.Connect(ctx, p.transport(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MCP server")
	}
	p.session = session
	return session, nil
}

// reset drops the session after a transport failure
func (p *MCPProxy) reset(session *mcp.ClientSession) {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.session == session {
		_ = session.Close()
		p.session = nil
	}
}

// Close closes the session
func (p *MCPProxy) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if p.session == nil {
		return nil
	}
	err := p.session.Close()
	p.session = nil
	return err
}

func (p *MCPProxy) ListTools(ctx context.Context) ([]*RemoteTool, error) {
	session, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var list []*RemoteTool
	params := &mcp.ListToolsParams{}
	for {
		res, err := session.ListTools(ctx, params)
		if err != nil {
			p.reset(session)
			return nil, errors.Wrap(err, "failed to list tools")
		}
		for _, t := range res.Tools {
			list = append(list, &RemoteTool{
				Name:        t.Name,
				Description: t.Description,
				InputSchema: t.InputSchema,
			})
		}
		if res.NextCursor == "" {
			break
		}
		params.Cursor = res.NextCursor
	}

	logger.ContextKV(ctx, xlog.DEBUG, "status", "listed", "tools", len(list))
	return list, nil
}

func (p *MCPProxy) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	session, err := p.connect(ctx)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		p.reset(session)
		return "", errors.Wrapf(err, "failed to call tool %s", name)
	}
	return resultText(name, res)
}

// resultText returns the text content of the result,
// or the structured content as JSON if there is no text.
func resultText(name string, res *mcp.CallToolResult) (string, error) {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	text := strings.Join(parts, "\n")
	if res.IsError {
		return "", errors.Newf("tool %s failed: %s", name, text)
	}
	if text == "" && res.StructuredContent != nil {
		text = utils.ToJSON(res.StructuredContent)
	}
	return text, nil
}
