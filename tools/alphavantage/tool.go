package alphavantage

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/fintools/pkg/metricskey"
	"github.com/effective-security/fintools/pkg/schema"
	"github.com/effective-security/fintools/tools"
	"github.com/invopop/jsonschema"
)

// mirrorTool is the local alias of the remote tool,
// the calls are forwarded to the remote tool by its original name.
type mirrorTool struct {
	proxy  Proxy
	remote *RemoteTool
	alias  Alias
	params *jsonschema.Schema
}

// ensure mirrorTool implements the interfaces
var (
	_ tools.ITool     = (*mirrorTool)(nil)
	_ tools.Tagged    = (*mirrorTool)(nil)
	_ tools.Annotated = (*mirrorTool)(nil)
)

func newMirrorTool(proxy Proxy, remote *RemoteTool, alias Alias) (*mirrorTool, error) {
	params, err := schema.FromAny(remote.InputSchema)
	if err != nil {
		return nil, errors.WithMessagef(err, "invalid input schema of Alpha Vantage tool %s", remote.Name)
	}
	if params.Type == "" {
		params.Type = "object"
	}
	return &mirrorTool{
		proxy:  proxy,
		remote: remote,
		alias:  alias,
		params: params,
	}, nil
}

func (t *mirrorTool) Name() string {
	return t.alias.Name
}

func (t *mirrorTool) Description() string {
	return t.remote.Description
}

func (t *mirrorTool) Parameters() any {
	return t.params
}

func (t *mirrorTool) Tags() []string {
	return t.alias.Tags
}

func (t *mirrorTool) Annotations() *tools.Annotations {
	return t.alias.Annotations
}

// RemoteName returns the name of the tool on the remote server
func (t *mirrorTool) RemoteName() string {
	return t.remote.Name
}

func (t *mirrorTool) Call(ctx context.Context, input string) (string, error) {
	var args map[string]any
	if err := tools.Unmarshal(input, &args); err != nil {
		return "", err
	}

	started := time.Now()
	defer metricskey.PerfUpstreamCall.MeasureSince(started, t.remote.Name)

	res, err := t.proxy.CallTool(ctx, t.remote.Name, args)
	if err != nil {
		metricskey.StatsUpstreamCallsFailed.IncrCounter(1, t.remote.Name)
		return "", err
	}
	return res, nil
}
