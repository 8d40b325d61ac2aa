package registry_test

import (
	"context"
	"testing"

	"github.com/effective-security/fintools/mocks/mockfilings"
	"github.com/effective-security/fintools/registry"
	"github.com/effective-security/fintools/tools"
	"github.com/effective-security/fintools/tools/alphavantage"
	"github.com/effective-security/fintools/tools/scope"
	"github.com/effective-security/fintools/tools/sec"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func connect(t *testing.T, srv *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	ct, st := mcp.NewInMemoryTransports()
	_, err := srv.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestServer(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	provider := mockfilings.NewMockProvider(ctrl)

	r := registry.New([]tools.Group{
		alphavantage.NewGroup(newProxy()),
		scope.NewGroup(),
		sec.NewGroup(provider),
	})
	require.NoError(t, r.Initialize(ctx))

	srv, err := r.Server()
	require.NoError(t, err)
	srv2, err := r.Server()
	require.NoError(t, err)
	assert.Same(t, srv, srv2)

	session := connect(t, srv)

	toolsRes, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	byName := map[string]*mcp.Tool{}
	for _, tool := range toolsRes.Tools {
		byName[tool.Name] = tool
	}
	assert.Len(t, byName, 6)

	mt := byName["sec_map_ticker_to_cik"]
	require.NotNil(t, mt)
	assert.Equal(t, "Map a stock ticker symbol to its Central Index Key (CIK).", mt.Description)
	require.NotNil(t, mt.Annotations)
	assert.True(t, mt.Annotations.ReadOnlyHint)
	require.NotNil(t, mt.Annotations.OpenWorldHint)
	assert.True(t, *mt.Annotations.OpenWorldHint)
	assert.Equal(t, []any{"sec", "mapping", "ticker", "cik"}, mt.Meta["tags"])

	require.NotNil(t, byName["alphavantage_get_intraday"])
	assert.Nil(t, byName["scope_financial_analysis_prompt"])

	provider.EXPECT().ResolveCIK(gomock.Any(), "aapl").Return("320193", nil)
	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "sec_map_ticker_to_cik",
		Arguments: map[string]any{"ticker": "aapl"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, `{"ticker":"AAPL","cik":"320193"}`, res.Content[0].(*mcp.TextContent).Text)

	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "alphavantage_get_intraday",
		Arguments: map[string]any{"symbol": "IBM", "interval": "5min"},
	})
	require.NoError(t, err)
	assert.Equal(t, "TIME_SERIES_INTRADAY:IBM", res.Content[0].(*mcp.TextContent).Text)

	promptsRes, err := session.ListPrompts(ctx, &mcp.ListPromptsParams{})
	require.NoError(t, err)
	require.Len(t, promptsRes.Prompts, 1)
	assert.Equal(t, "scope_financial_analysis_prompt", promptsRes.Prompts[0].Name)
	require.Len(t, promptsRes.Prompts[0].Arguments, 1)
	assert.Equal(t, "query", promptsRes.Prompts[0].Arguments[0].Name)

	pres, err := session.GetPrompt(ctx, &mcp.GetPromptParams{
		Name:      "scope_financial_analysis_prompt",
		Arguments: map[string]string{"query": "How is MSFT doing?"},
	})
	require.NoError(t, err)
	require.Len(t, pres.Messages, 1)
	assert.Contains(t, pres.Messages[0].Content.(*mcp.TextContent).Text, "question: How is MSFT doing?,")
}
