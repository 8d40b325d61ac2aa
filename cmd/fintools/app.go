package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/callbacks"
	"github.com/effective-security/fintools/config"
	"github.com/effective-security/fintools/encoding"
	"github.com/effective-security/fintools/pkg/filings"
	"github.com/effective-security/fintools/pkg/secapi"
	"github.com/effective-security/fintools/registry"
	"github.com/effective-security/fintools/store"
	"github.com/effective-security/fintools/tools"
	"github.com/effective-security/fintools/tools/alphavantage"
	"github.com/effective-security/fintools/tools/scope"
	"github.com/effective-security/fintools/tools/sec"
	"github.com/effective-security/xlog"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/redis/go-redis/v9"
)

type app struct {
	cfg        *config.Config
	registry   *registry.Registry
	scratchpad *callbacks.Scratchpad
	proxy      *alphavantage.MCPProxy
	redis      *redis.Client
}

func newApp(cfg *config.Config, f *flags, errOut io.Writer) (*app, error) {
	a := &app{cfg: cfg}

	cache, err := a.newCache()
	if err != nil {
		return nil, err
	}

	api := secapi.NewClient(cfg.SEC.BaseURL, cfg.SEC.APIKey).
		WithHTTPClient(&http.Client{Timeout: seconds(cfg.SEC.TimeoutSec)}).
		WithRateLimit(cfg.SEC.RequestsPerSecond)

	fetcher := filings.NewHTTPFetcher(cfg.SEC.UserAgent, cfg.SEC.DownloadHost, seconds(cfg.SEC.TimeoutSec))

	provider := filings.NewService(api, cache, fetcher, filings.Config{
		FormType:        cfg.SEC.FormType,
		DefaultSections: filings.ParseSections(cfg.SEC.DefaultSections),
	})

	a.proxy, err = alphavantage.NewMCPProxy(cfg.AlphaVantage.URL, cfg.AlphaVantage.APIKey, seconds(cfg.AlphaVantage.TimeoutSec))
	if err != nil {
		return nil, err
	}

	mode := callbacks.ModeDefault
	var printer tools.Callback = callbacks.NewNoop()
	if f.verbose {
		mode = callbacks.ModeVerbose
		printer = callbacks.NewPrinter(errOut, callbacks.ModeVerbose)
	}
	a.scratchpad = callbacks.NewScratchpad(mode)

	a.registry = registry.New([]tools.Group{
		alphavantage.NewGroup(a.proxy),
		scope.NewGroup(),
		sec.NewGroup(provider),
	},
		registry.WithName(cfg.Server.Name),
		registry.WithVersion(Version),
		registry.WithCallback(callbacks.NewFanout(
			callbacks.NewPackageLogger(logger),
			a.scratchpad,
			printer,
		)),
	)
	return a, nil
}

func seconds(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}

// newCache returns Redis cache if configured, or in-memory cache
func (a *app) newCache() (store.Cache, error) {
	if a.cfg.Redis.URL == "" {
		return store.NewMemoryStore(), nil
	}
	opts, err := redis.ParseURL(a.cfg.Redis.URL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid Redis URL")
	}
	a.redis = redis.NewClient(opts)
	return store.NewRedisStore(a.redis, a.cfg.Redis.Prefix), nil
}

func (a *app) Close() {
	if a.proxy != nil {
		_ = a.proxy.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}

// toolInfo is the -list entry
type toolInfo struct {
	Name string   `json:"name" yaml:"name" toml:"name"`
	Kind string   `json:"kind" yaml:"kind" toml:"kind"`
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
}

type toolsList struct {
	Tools []toolInfo `json:"tools" yaml:"tools" toml:"tools"`
	Tags  []string   `json:"tags" yaml:"tags" toml:"tags"`
}

func (a *app) printTools(out io.Writer, mode encoding.Mode) error {
	list, err := a.registry.Tools()
	if err != nil {
		return err
	}
	tags, err := a.registry.AllTags()
	if err != nil {
		return err
	}

	if mode == encoding.ModePlainText {
		for _, tool := range list {
			fmt.Fprintf(out, "%s\t%s\t%s\n", tool.Name(), tools.KindOf(tool), strings.Join(tools.TagsOf(tool), ","))
		}
		fmt.Fprintf(out, "\ntags: %s\n", strings.Join(tags, ", "))
		return nil
	}

	res := toolsList{Tags: tags}
	for _, tool := range list {
		res.Tools = append(res.Tools, toolInfo{
			Name: tool.Name(),
			Kind: string(tools.KindOf(tool)),
			Tags: tools.TagsOf(tool),
		})
	}
	enc, err := encoding.PredefinedEncoder(mode)
	if err != nil {
		return err
	}
	bs, err := enc.Marshal(res)
	if err != nil {
		return errors.WithMessagef(err, "unable to encode as %s", mode)
	}
	_, err = out.Write(bs)
	return err
}

func (a *app) callTool(ctx context.Context, out io.Writer, mode encoding.Mode, name, input string) error {
	ctx = callbacks.WithRunID(ctx, uuid.NewString())
	a.scratchpad.StartRun(ctx)

	res, err := a.registry.Call(ctx, name, input)

	_, transcript := a.scratchpad.EndRun(ctx)
	if err != nil {
		return err
	}

	bs, err := encoding.Reencode(mode, res)
	if err != nil {
		return err
	}
	_, _ = out.Write(bs)
	if !bytes.HasSuffix(bs, []byte("\n")) {
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)
	_, _ = out.Write(transcript)
	return nil
}

func (a *app) serve(ctx context.Context) error {
	srv, err := a.registry.Server()
	if err != nil {
		return err
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return srv
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(a.cfg.Server.Endpoint, handler)

	httpServer := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.KV(xlog.INFO,
		"status", "serving",
		"addr", a.cfg.Server.Addr,
		"endpoint", a.cfg.Server.Endpoint,
		"version", Version,
	)

	err = httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return errors.Wrap(err, "failed to serve")
}
