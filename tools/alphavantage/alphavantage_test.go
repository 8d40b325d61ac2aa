package alphavantage_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/tools"
	"github.com/effective-security/fintools/tools/alphavantage"
	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProxy struct {
	inventory []*alphavantage.RemoteTool
	err       error
	listed    atomic.Int32

	lock  sync.Mutex
	calls []string
	args  []map[string]any
}

func (p *fakeProxy) ListTools(ctx context.Context) ([]*alphavantage.RemoteTool, error) {
	p.listed.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return p.inventory, nil
}

func (p *fakeProxy) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	p.lock.Lock()
	defer p.lock.Unlock()
	p.calls = append(p.calls, name)
	p.args = append(p.args, args)
	return `{"name":"` + name + `"}`, nil
}

func remoteTools(names ...string) []*alphavantage.RemoteTool {
	var list []*alphavantage.RemoteTool
	for _, name := range names {
		list = append(list, &alphavantage.RemoteTool{
			Name:        name,
			Description: name + " description",
			InputSchema: map[string]any{"type": "object"},
		})
	}
	return list
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	proxy := &fakeProxy{
		inventory: remoteTools("SYMBOL_SEARCH", "TIME_SERIES_DAILY", "NEWS_SENTIMENT", "TIME_SERIES_INTRADAY"),
	}
	g := alphavantage.NewGroup(proxy)
	assert.Equal(t, alphavantage.GroupName, g.Name())
	assert.False(t, g.Loaded())
	assert.Empty(t, g.Tools())

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Load(ctx))
		}()
	}
	wg.Wait()

	assert.True(t, g.Loaded())
	assert.Equal(t, int32(1), proxy.listed.Load())

	list := g.Tools()
	require.Len(t, list, 3)
	names := make([]string, len(list))
	for i, tool := range list {
		names[i] = tool.Name()
	}
	assert.Equal(t, []string{"get_intraday", "get_news_sentiment", "search_symbol"}, names)

	intraday := list[0]
	assert.Equal(t, "TIME_SERIES_INTRADAY description", intraday.Description())
	remote, ok := intraday.(interface{ RemoteName() string })
	require.True(t, ok)
	assert.Equal(t, "TIME_SERIES_INTRADAY", remote.RemoteName())
	params, ok := intraday.Parameters().(*jsonschema.Schema)
	require.True(t, ok)
	assert.Equal(t, "object", params.Type)
	assert.Equal(t, []string{"alphavantage", "time_series", "intraday"}, tools.TagsOf(intraday))
	ann := tools.AnnotationsOf(intraday)
	require.NotNil(t, ann)
	assert.Equal(t, "Get Intraday Time Series", ann.Title)

	// the alias forwards to the remote name
	out, err := intraday.Call(ctx, `{"symbol":"IBM","interval":"5min"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"TIME_SERIES_INTRADAY"}`, out)
	assert.Equal(t, []string{"TIME_SERIES_INTRADAY"}, proxy.calls)
	assert.Equal(t, map[string]any{"symbol": "IBM", "interval": "5min"}, proxy.args[0])

	_, err = intraday.Call(ctx, `not json`)
	assert.ErrorIs(t, err, tools.ErrFailedUnmarshalInput)

	// loaded once
	require.NoError(t, g.Load(ctx))
	assert.Equal(t, int32(1), proxy.listed.Load())
}

func TestLoad_Incomplete(t *testing.T) {
	ctx := context.Background()
	proxy := &fakeProxy{
		inventory: remoteTools("SYMBOL_SEARCH", "TIME_SERIES_INTRADAY"),
	}
	g := alphavantage.NewGroup(proxy)

	err := g.Load(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, alphavantage.ErrMirrorIncomplete))
	assert.EqualError(t, err, "Alpha Vantage tool NEWS_SENTIMENT not found in proxy inventory")
	assert.False(t, g.Loaded())
	assert.Empty(t, g.Tools())

	// retried on next Load
	proxy.inventory = remoteTools("SYMBOL_SEARCH", "TIME_SERIES_INTRADAY", "NEWS_SENTIMENT")
	require.NoError(t, g.Load(ctx))
	assert.Len(t, g.Tools(), 3)
	assert.Equal(t, int32(2), proxy.listed.Load())
}

func TestLoad_ProxyError(t *testing.T) {
	proxy := &fakeProxy{err: errors.New("connection refused")}
	g := alphavantage.NewGroupWithAliases(proxy, alphavantage.DefaultAliases[:1])

	err := g.Load(context.Background())
	assert.EqualError(t, err, "failed to list Alpha Vantage tools: connection refused")
	assert.False(t, errors.Is(err, alphavantage.ErrMirrorIncomplete))
	assert.False(t, g.Loaded())
}

func TestLoad_InvalidSchema(t *testing.T) {
	proxy := &fakeProxy{
		inventory: []*alphavantage.RemoteTool{
			{Name: "TIME_SERIES_INTRADAY", InputSchema: make(chan int)},
		},
	}
	g := alphavantage.NewGroupWithAliases(proxy, alphavantage.DefaultAliases[:1])

	err := g.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input schema of Alpha Vantage tool TIME_SERIES_INTRADAY")
	assert.False(t, g.Loaded())
	assert.Empty(t, g.Tools())
}

func TestLoad_DefaultsObjectSchema(t *testing.T) {
	proxy := &fakeProxy{
		inventory: []*alphavantage.RemoteTool{
			{Name: "TIME_SERIES_INTRADAY", InputSchema: map[string]any{
				"properties": map[string]any{"symbol": map[string]any{"type": "string"}},
			}},
		},
	}
	g := alphavantage.NewGroupWithAliases(proxy, alphavantage.DefaultAliases[:1])
	require.NoError(t, g.Load(context.Background()))

	params := g.Tools()[0].Parameters().(*jsonschema.Schema)
	assert.Equal(t, "object", params.Type)
	prop, ok := params.Properties.Get("symbol")
	require.True(t, ok)
	assert.Equal(t, "string", prop.Type)
}
