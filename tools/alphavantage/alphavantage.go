package alphavantage

import (
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/pkg/metricskey"
	"github.com/effective-security/fintools/tools"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/fintools/tools", "alphavantage")

// GroupName is the name of the tool group, used as the prefix in the registry
const GroupName = "alphavantage"

// ErrMirrorIncomplete is returned when a selected tool is missing in the remote inventory
var ErrMirrorIncomplete = errors.New("mirror incomplete")

// Alias describes how the remote tool is published
type Alias struct {
	// Remote is the name of the tool on the remote server
	Remote string
	// Name is the local name
	Name        string
	Tags        []string
	Annotations *tools.Annotations
}

// DefaultAliases are the mirrored Alpha Vantage tools
var DefaultAliases = []Alias{
	{
		Remote:      "TIME_SERIES_INTRADAY",
		Name:        "get_intraday",
		Tags:        []string{"alphavantage", "time_series", "intraday"},
		Annotations: &tools.Annotations{Title: "Get Intraday Time Series", ReadOnly: true, OpenWorld: true},
	},
	{
		Remote:      "NEWS_SENTIMENT",
		Name:        "get_news_sentiment",
		Tags:        []string{"alphavantage", "news", "sentiment"},
		Annotations: &tools.Annotations{Title: "Get News Sentiment", ReadOnly: true, OpenWorld: true},
	},
	{
		Remote:      "SYMBOL_SEARCH",
		Name:        "search_symbol",
		Tags:        []string{"alphavantage", "symbol", "search"},
		Annotations: &tools.Annotations{Title: "Search Stock Symbol", ReadOnly: true, OpenWorld: true},
	},
}

// Group is the tool group mirrored from the remote server.
// The group is empty until Load succeeds.
type Group struct {
	proxy   Proxy
	aliases []Alias

	lock   sync.RWMutex
	loaded bool
	tools  []tools.ITool
}

// ensure Group implements the interfaces
var (
	_ tools.Group  = (*Group)(nil)
	_ tools.Loader = (*Group)(nil)
)

// NewGroup returns the group mirroring DefaultAliases
func NewGroup(proxy Proxy) *Group {
	return NewGroupWithAliases(proxy, DefaultAliases)
}

// NewGroupWithAliases returns the group mirroring the aliases
func NewGroupWithAliases(proxy Proxy, aliases []Alias) *Group {
	return &Group{
		proxy:   proxy,
		aliases: slices.Clone(aliases),
	}
}

func (g *Group) Name() string {
	return GroupName
}

// Tools returns the mirrored tools, or nil if not loaded
func (g *Group) Tools() []tools.ITool {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return slices.Clone(g.tools)
}

// Loaded returns true if the mirror is populated
func (g *Group) Loaded() bool {
	g.lock.RLock()
	defer g.lock.RUnlock()
	return g.loaded
}

// Load populates the mirror from the remote inventory, once.
// All aliases are published, or none.
func (g *Group) Load(ctx context.Context) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	if g.loaded {
		return nil
	}

	logger.ContextKV(ctx, xlog.INFO, "status", "loading", "aliases", len(g.aliases))

	inventory, err := g.proxy.ListTools(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to list Alpha Vantage tools")
	}

	index := make(map[string]*RemoteTool, len(inventory))
	for _, rt := range inventory {
		index[rt.Name] = rt
	}

	list := make([]tools.ITool, 0, len(g.aliases))
	for _, a := range g.aliases {
		rt, ok := index[a.Remote]
		if !ok {
			return errors.Mark(errors.Newf("Alpha Vantage tool %s not found in proxy inventory", a.Remote), ErrMirrorIncomplete)
		}
		tool, err := newMirrorTool(g.proxy, rt, a)
		if err != nil {
			return err
		}
		list = append(list, tool)
	}

	g.tools = list
	g.loaded = true
	metricskey.StatsMirrorToolsPublished.IncrCounter(float64(len(list)), GroupName)

	logger.ContextKV(ctx, xlog.INFO,
		"status", "loaded",
		"remote", len(inventory),
		"published", len(list),
	)
	return nil
}
