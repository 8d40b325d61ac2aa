package registry

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/pkg/metricskey"
	"github.com/effective-security/fintools/tools"
	"github.com/effective-security/xlog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/fintools", "registry")

// DefaultName is the name of the registry
const DefaultName = "tool_registry"

// Errors returned by the registry, use errors.Is to check
var (
	// ErrNotReusable is returned by Initialize after a failed initialization
	ErrNotReusable = errors.New("registry initialization failed, the registry must not be reused")
	// ErrNotReady is returned by read operations before the registry is initialized
	ErrNotReady = errors.New("registry is not initialized")
	// ErrDuplicateTool is returned when two tools are published under the same name
	ErrDuplicateTool = errors.New("duplicate tool")
	// ErrToolNotFound is returned by Call and Lookup for unknown tool
	ErrToolNotFound = errors.New("tool not found")
)

// State of the registry
type State int32

const (
	// Uninitialized is the state of a new registry
	Uninitialized State = iota
	// Initializing is the state during initialization, and after it failed
	Initializing
	// Ready is the terminal state
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// Registry is the composed namespace of the tool groups
type Registry struct {
	name         string
	version      string
	groups       []tools.Group
	callback     tools.Callback
	interceptors []Interceptor

	lock  sync.Mutex
	state atomic.Int32

	// set once on Initialize
	byName map[string]tools.ITool
	names  []string
	tags   []string

	serverOnce sync.Once
	server     *mcp.Server
}

// Option configures the registry
type Option func(*Registry)

// WithName sets the name of the registry, exported as MCP implementation name
func WithName(name string) Option {
	return func(r *Registry) {
		if name != "" {
			r.name = name
		}
	}
}

// WithVersion sets the version exported as MCP implementation version
func WithVersion(version string) Option {
	return func(r *Registry) {
		if version != "" {
			r.version = version
		}
	}
}

// WithCallback sets the callback for the tool events
func WithCallback(callback tools.Callback) Option {
	return func(r *Registry) {
		r.callback = callback
	}
}

// WithInterceptors appends the interceptors, the first one is the outermost
func WithInterceptors(interceptors ...Interceptor) Option {
	return func(r *Registry) {
		r.interceptors = append(r.interceptors, interceptors...)
	}
}

// New returns the registry of the groups, merged in the order provided
func New(groups []tools.Group, opts ...Option) *Registry {
	r := &Registry{
		name:    DefaultName,
		version: "v1.0.0",
		groups:  slices.Clone(groups),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the name of the registry
func (r *Registry) Name() string {
	return r.name
}

// State returns the current state
func (r *Registry) State() State {
	return State(r.state.Load())
}

// Initialize loads and merges the groups, then collects the tags.
// It is a no-op when the registry is Ready.
func (r *Registry) Initialize(ctx context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	switch r.State() {
	case Ready:
		return nil
	case Initializing:
		return errors.WithStack(ErrNotReusable)
	}
	r.state.Store(int32(Initializing))

	started := time.Now()
	logger.ContextKV(ctx, xlog.INFO, "status", "initializing", "registry", r.name, "groups", len(r.groups))

	// remote groups must be populated before they are merged
	for _, g := range r.groups {
		if l, ok := g.(tools.Loader); ok {
			if err := l.Load(ctx); err != nil {
				logger.ContextKV(ctx, xlog.ERROR,
					"status", "load_failed",
					"group", g.Name(),
					"err", err.Error(),
				)
				return errors.WithMessagef(err, "failed to load %s tools", g.Name())
			}
		}
	}

	byName := make(map[string]tools.ITool)
	for _, g := range r.groups {
		for _, tool := range g.Tools() {
			name := PublishedName(g.Name(), tool.Name())
			if _, ok := byName[name]; ok {
				return errors.Mark(errors.Newf("duplicate tool %s in group %s", name, g.Name()), ErrDuplicateTool)
			}
			byName[name] = tools.Alias(tool, name)
		}
	}

	names := make([]string, 0, len(byName))
	tagSet := make(map[string]struct{})
	for name, tool := range byName {
		names = append(names, name)
		for _, tag := range tools.TagsOf(tool) {
			tagSet[tag] = struct{}{}
		}
	}
	sort.Strings(names)

	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	r.byName = byName
	r.names = names
	r.tags = tags
	r.state.Store(int32(Ready))

	metricskey.PerfRegistryInitialize.MeasureSince(started, r.name)
	logger.ContextKV(ctx, xlog.INFO,
		"status", "ready",
		"registry", r.name,
		"tools", len(names),
		"tags", strings.Join(tags, ","),
	)
	return nil
}

// PublishedName returns the name of the tool in the registry
func PublishedName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

// Lookup returns the published tool
func (r *Registry) Lookup(name string) (tools.ITool, error) {
	if r.State() != Ready {
		return nil, errors.WithStack(ErrNotReady)
	}
	tool, ok := r.byName[name]
	if !ok {
		return nil, errors.Mark(errors.Newf("tool %q not found", name), ErrToolNotFound)
	}
	return tool, nil
}

// Tools returns the published tools sorted by name
func (r *Registry) Tools() ([]tools.ITool, error) {
	if r.State() != Ready {
		return nil, errors.WithStack(ErrNotReady)
	}
	list := make([]tools.ITool, len(r.names))
	for i, name := range r.names {
		list[i] = r.byName[name]
	}
	return list, nil
}

// AllTags returns the sorted union of the tags of all published tools,
// prompts are published as tools and their tags are included.
func (r *Registry) AllTags() ([]string, error) {
	if r.State() != Ready {
		return nil, errors.WithStack(ErrNotReady)
	}
	return slices.Clone(r.tags), nil
}
