package registry

import (
	"context"
	"time"

	"github.com/effective-security/fintools/pkg/metricskey"
	"github.com/effective-security/fintools/tools"
	"github.com/effective-security/xlog"
)

// Invoker calls the tool with the input
type Invoker func(ctx context.Context, tool tools.ITool, input string) (string, error)

// Interceptor wraps the invocation of the tool,
// it must call next to proceed with the call.
type Interceptor func(ctx context.Context, tool tools.ITool, input string, next Invoker) (string, error)

// MetricsInterceptor measures the calls by tool name and kind
func MetricsInterceptor(ctx context.Context, tool tools.ITool, input string, next Invoker) (string, error) {
	name := tool.Name()
	kind := string(tools.KindOf(tool))

	started := time.Now()
	res, err := next(ctx, tool, input)
	metricskey.PerfToolCall.MeasureSince(started, name)

	if err != nil {
		metricskey.StatsToolCallsFailed.IncrCounter(1, name, kind)
	} else {
		metricskey.StatsToolCallsSucceeded.IncrCounter(1, name, kind)
	}
	return res, err
}

// CallbackInterceptor returns the interceptor reporting the calls to the callback
func CallbackInterceptor(callback tools.Callback) Interceptor {
	return func(ctx context.Context, tool tools.ITool, input string, next Invoker) (string, error) {
		callback.OnToolStart(ctx, tool, input)
		res, err := next(ctx, tool, input)
		if err != nil {
			callback.OnToolError(ctx, tool, input, err)
			return res, err
		}
		callback.OnToolEnd(ctx, tool, input, res)
		return res, nil
	}
}

func invoke(ctx context.Context, tool tools.ITool, input string) (string, error) {
	return tool.Call(ctx, input)
}

// chain returns the invoker with the interceptors applied,
// the first interceptor is the outermost.
func chain(interceptors []Interceptor, last Invoker) Invoker {
	next := last
	for i := len(interceptors) - 1; i >= 0; i-- {
		icpt := interceptors[i]
		inner := next
		next = func(ctx context.Context, tool tools.ITool, input string) (string, error) {
			return icpt(ctx, tool, input, inner)
		}
	}
	return next
}

func (r *Registry) invoker() Invoker {
	list := []Interceptor{MetricsInterceptor}
	if r.callback != nil {
		list = append(list, CallbackInterceptor(r.callback))
	}
	list = append(list, r.interceptors...)
	return chain(list, invoke)
}

// Call invokes the published tool by name
func (r *Registry) Call(ctx context.Context, name, input string) (string, error) {
	tool, err := r.Lookup(name)
	if err != nil {
		if r.State() == Ready {
			metricskey.StatsToolCallsNotFound.IncrCounter(1, name)
			if r.callback != nil {
				r.callback.OnToolNotFound(ctx, name)
			}
			logger.ContextKV(ctx, xlog.WARNING,
				"status", "tool_not_found",
				"tool", name,
			)
		}
		return "", err
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"status", "call",
		"tool", name,
		"kind", tools.KindOf(tool),
	)
	return r.invoker()(ctx, tool, input)
}
