package sec

import (
	"context"
	"reflect"

	"github.com/effective-security/fintools/pkg/filings"
	"github.com/effective-security/fintools/pkg/schema"
	"github.com/effective-security/fintools/tools"
	"github.com/effective-security/fintools/utils"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/fintools/tools", "sec")

// GroupName is the name of the tool group, used as the prefix in the registry
const GroupName = "sec"

// Tool names
const (
	ToolMapTickerToCIK       = "map_ticker_to_cik"
	ToolLatestFilingMetadata = "get_latest_10k_metadata"
	ToolLatestFilingText     = "get_latest_10k_text"
)

// NewGroup returns the group of SEC tools backed by the provider
func NewGroup(provider filings.Provider) tools.Group {
	return tools.NewGroup(GroupName,
		NewMapTickerTool(provider),
		NewLatestFilingMetadataTool(provider),
		NewLatestFilingTextTool(provider),
	)
}

// base implements the descriptive part of tools.ITool
type base struct {
	name        string
	description string
	tags        []string
	annotations *tools.Annotations
	params      any
	provider    filings.Provider
}

func newBase(provider filings.Provider, name, description string, input any, ann *tools.Annotations, tags ...string) base {
	sc, err := schema.New(reflect.TypeOf(input))
	if err != nil {
		// reflection of a static struct does not fail
		panic(err)
	}
	return base{
		name:        name,
		description: description,
		tags:        tags,
		annotations: ann,
		params:      sc.Parameters,
		provider:    provider,
	}
}

func (t *base) Name() string {
	return t.name
}

func (t *base) Description() string {
	return t.description
}

func (t *base) Parameters() any {
	return t.params
}

func (t *base) Tags() []string {
	return t.tags
}

func (t *base) Annotations() *tools.Annotations {
	return t.annotations
}

// call decodes the input, runs the tool and encodes the result.
// Failures are returned as error object.
func call[I any, O any](ctx context.Context, t tools.Tool[I, O], input string) (string, error) {
	var req I
	if err := tools.Unmarshal(input, &req); err != nil {
		return failed(ctx, t.Name(), input, err), nil
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return failed(ctx, t.Name(), input, err), nil
	}
	return utils.ToJSON(out), nil
}

func failed(ctx context.Context, name, input string, err error) string {
	logger.ContextKV(ctx, xlog.ERROR,
		"tool", name,
		"input", input,
		"err", err.Error(),
	)
	return utils.ErrorJSON(err.Error())
}
