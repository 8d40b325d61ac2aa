// Package scope provides the prompts that define the scope of the financial analyst agent.
package scope

import (
	"context"
	_ "embed"
	"reflect"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/pkg/schema"
	"github.com/effective-security/fintools/tools"
	"github.com/effective-security/fintools/utils"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/fintools/tools", "scope")

// GroupName is the name of the prompt group, used as the prefix in the registry
const GroupName = "scope"

// PromptFinancialAnalysis is the name of the analyst prompt
const PromptFinancialAnalysis = "financial_analysis_prompt"

//go:embed financial_analysis.tmpl
var financialAnalysisTemplate string

// ToolHint describes a tool in the prompt
type ToolHint struct {
	Name string
	Args []string
	Hint string
}

// DefaultToolHints are the registry tools the analyst may call
var DefaultToolHints = []ToolHint{
	{
		Name: "alphavantage_search_symbol",
		Args: []string{"keywords"},
		Hint: "resolve ambiguous company names to tickers; call before any market data request if the ticker is uncertain.",
	},
	{
		Name: "alphavantage_get_intraday",
		Args: []string{"symbol", "interval"},
		Hint: "intraday OHLC and volume; pick an interval that matches the user's timeframe and report the last refresh time from the payload.",
	},
	{
		Name: "alphavantage_get_news_sentiment",
		Args: []string{"tickers", "topics?", "time_from?", "time_to?"},
		Hint: "headline-level sentiment; only call when the user asks about news, catalysts, or sentiment. Omit optional parameters unless the user specifies them.",
	},
	{
		Name: "sec_map_ticker_to_cik",
		Args: []string{"ticker"},
		Hint: "convert a market ticker to its SEC CIK; cache and reuse the result for subsequent SEC calls.",
	},
	{
		Name: "sec_get_latest_10k_metadata",
		Args: []string{"ticker"},
		Hint: "latest 10-K metadata (filing date, accession number, document links); use when the user wants filing stats or links.",
	},
	{
		Name: "sec_get_latest_10k_text",
		Args: []string{"ticker", "sections?"},
		Hint: "plain-text excerpt of the latest 10-K; accept a comma-delimited list of sections if the user requests specific items.",
	},
}

// DefaultPrinciples are the interaction principles of the analyst
var DefaultPrinciples = []string{
	"Interpret the user's request, asking for clarification when the ticker, timeframe, or data type is unclear.",
	"Plan tool usage before acting; avoid redundant calls and rely on previous results whenever possible (e.g., reuse the CIK you already mapped).",
	"Call only the tools necessary to answer the question. If the tools cannot satisfy the request, explain the limitation honestly.",
	"Ground every statement in tool outputs. Note timestamps, units, and data gaps; do not fabricate values.",
	"Match the user's desired level of detail. Deliver concise answers for narrow questions and provide richer context only when the user asks for it; never generate a full multi-section report by default.",
	"Close responses with optional next steps only when they add clear value.",
	"Limit yourself to at most five total tool calls. If you still cannot answer, stop and share your best analysis along with the gap.",
}

// NewGroup returns the group of scope prompts
func NewGroup() tools.Group {
	return tools.NewGroup(GroupName, NewFinancialAnalysisPrompt())
}

// PromptRequest is the input of the prompt
type PromptRequest struct {
	Query string `json:"query" yaml:"query" jsonschema:"title=query,description=The question of the user."`
}

// PromptResult is the rendered prompt
type PromptResult struct {
	Text string `json:"text" yaml:"text"`
}

// FinancialAnalysisPrompt renders the system prompt of the lead financial analyst
type FinancialAnalysisPrompt struct {
	tmpl   *template.Template
	inputs map[string]any
	params any
}

// ensure FinancialAnalysisPrompt implements the interfaces
var (
	_ tools.Tool[PromptRequest, PromptResult] = (*FinancialAnalysisPrompt)(nil)
	_ tools.Prompter                          = (*FinancialAnalysisPrompt)(nil)
	_ tools.Tagged                            = (*FinancialAnalysisPrompt)(nil)
)

// NewFinancialAnalysisPrompt returns the prompt with default tools and principles
func NewFinancialAnalysisPrompt() *FinancialAnalysisPrompt {
	p, err := NewFinancialAnalysisPromptWithInputs(map[string]any{
		"Tools":      DefaultToolHints,
		"Principles": DefaultPrinciples,
	})
	if err != nil {
		// the embedded template is static
		panic(err)
	}
	return p
}

// NewFinancialAnalysisPromptWithInputs returns the prompt with the template inputs,
// the query is provided on each call.
func NewFinancialAnalysisPromptWithInputs(inputs map[string]any) (*FinancialAnalysisPrompt, error) {
	tmpl, err := template.New(PromptFinancialAnalysis).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=zero").
		Parse(financialAnalysisTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse template")
	}
	sc, err := schema.New(reflect.TypeOf(PromptRequest{}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	return &FinancialAnalysisPrompt{
		tmpl:   tmpl,
		inputs: inputs,
		params: sc.Parameters,
	}, nil
}

func (p *FinancialAnalysisPrompt) Name() string {
	return PromptFinancialAnalysis
}

func (p *FinancialAnalysisPrompt) Description() string {
	return "Prompt for analyzing financial data, stocks and market trends."
}

func (p *FinancialAnalysisPrompt) Parameters() any {
	return p.params
}

func (p *FinancialAnalysisPrompt) Tags() []string {
	return []string{"financial", "analysis", "stocks"}
}

func (p *FinancialAnalysisPrompt) Arguments() []tools.Argument {
	return []tools.Argument{
		{Name: "query", Description: "The question of the user.", Required: true},
	}
}

func (p *FinancialAnalysisPrompt) Run(ctx context.Context, req *PromptRequest) (*PromptResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, errors.New("query must be provided")
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"prompt", PromptFinancialAnalysis,
		"query", slices.StringUpto(query, 64),
	)

	inputs := utils.MergeInputs(p.inputs, map[string]any{"Query": query})

	var buf strings.Builder
	if err := p.tmpl.Execute(&buf, inputs); err != nil {
		return nil, errors.Wrap(err, "failed to render prompt")
	}
	return &PromptResult{Text: strings.TrimSpace(buf.String())}, nil
}

// Call renders the prompt, the result is the prompt text
func (p *FinancialAnalysisPrompt) Call(ctx context.Context, input string) (string, error) {
	var req PromptRequest
	if err := tools.Unmarshal(input, &req); err != nil {
		return "", err
	}
	res, err := p.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
