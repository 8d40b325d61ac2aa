package alphavantage_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/effective-security/fintools/tools/alphavantage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRemoteServer(t *testing.T) *mcp.Server {
	t.Helper()
	srv := mcp.NewServer(&mcp.Implementation{Name: "alphavantage", Version: "v0.0.1"}, &mcp.ServerOptions{PageSize: 2})

	for _, name := range []string{"TIME_SERIES_INTRADAY", "NEWS_SENTIMENT", "SYMBOL_SEARCH", "FAILING"} {
		srv.AddTool(&mcp.Tool{
			Name:        name,
			Description: strings.ToLower(name),
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"symbol": map[string]any{"type": "string"},
				},
			},
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args map[string]any
			if len(req.Params.Arguments) > 0 {
				if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
					return nil, err
				}
			}
			res := &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{Text: fmt.Sprintf("%s:%v", req.Params.Name, args["symbol"])},
				},
			}
			if req.Params.Name == "FAILING" {
				res.IsError = true
			}
			return res, nil
		})
	}
	return srv
}

func newInMemoryProxy(t *testing.T, srv *mcp.Server) *alphavantage.MCPProxy {
	t.Helper()
	return alphavantage.NewMCPProxyWithTransport(func() mcp.Transport {
		ct, st := mcp.NewInMemoryTransports()
		_, err := srv.Connect(context.Background(), st, nil)
		require.NoError(t, err)
		return ct
	}, 5*time.Second)
}

func TestMCPProxy(t *testing.T) {
	ctx := context.Background()
	proxy := newInMemoryProxy(t, newRemoteServer(t))
	defer proxy.Close()

	list, err := proxy.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)

	names := map[string]bool{}
	for _, rt := range list {
		names[rt.Name] = true
		assert.NotNil(t, rt.InputSchema)
	}
	assert.True(t, names["TIME_SERIES_INTRADAY"])
	assert.True(t, names["SYMBOL_SEARCH"])

	out, err := proxy.CallTool(ctx, "SYMBOL_SEARCH", map[string]any{"symbol": "IBM"})
	require.NoError(t, err)
	assert.Equal(t, "SYMBOL_SEARCH:IBM", out)

	_, err = proxy.CallTool(ctx, "FAILING", map[string]any{"symbol": "IBM"})
	assert.EqualError(t, err, "tool FAILING failed: FAILING:IBM")

	g := alphavantage.NewGroup(proxy)
	require.NoError(t, g.Load(ctx))
	require.Len(t, g.Tools(), 3)

	out, err = g.Tools()[0].Call(ctx, `{"symbol":"MSFT"}`)
	require.NoError(t, err)
	assert.Equal(t, "TIME_SERIES_INTRADAY:MSFT", out)
}

func TestNewMCPProxy(t *testing.T) {
	var query, accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		accept = r.Header.Get("Accept-Encoding")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	proxy, err := alphavantage.NewMCPProxy(srv.URL+"/mcp", "demo-key", time.Second)
	require.NoError(t, err)

	_, err = proxy.ListTools(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to MCP server")
	assert.Equal(t, "apikey=demo-key", query)
	assert.Equal(t, "gzip, deflate, zstd", accept)

	_, err = alphavantage.NewMCPProxy("://bad", "", time.Second)
	assert.Error(t, err)
}
