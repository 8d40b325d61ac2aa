package callbacks

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/effective-security/fintools/tools"
)

var TimeNowFn = time.Now

type runIDKey struct{}

// WithRunID returns a context that attributes tool events to the run
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunID returns the run ID of the context, or empty string
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

type RunStats struct {
	RunID string

	Duration            time.Duration
	ToolsCalls          uint32
	ToolsCallsSucceeded uint32
	ToolsCallsFailed    uint32
	ToolNotFound        uint32
	PromptCalls         uint32
	BytesIn             uint64
	BytesOut            uint64
}

// Scratchpad records the tool events of a run,
// the run is identified by the run ID of the context.
type Scratchpad struct {
	runs map[string]*run
	mode Mode
	lock sync.Mutex
}

func NewScratchpad(mode Mode) *Scratchpad {
	return &Scratchpad{
		runs: make(map[string]*run),
		mode: mode,
	}
}

// StartRun starts recording the run of the context
func (l *Scratchpad) StartRun(ctx context.Context) {
	runID := RunID(ctx)
	if runID == "" {
		return
	}

	r := &run{
		stats: RunStats{
			RunID: runID,
		},
		started: time.Now(),
	}

	l.lock.Lock()
	l.runs[runID] = r
	l.lock.Unlock()

	r.print("*** Run Started ***")
}

// EndRun stops recording the run of the context,
// and returns its stats and the transcript.
func (l *Scratchpad) EndRun(ctx context.Context) (*RunStats, []byte) {
	run := l.getRun(ctx)
	if run == nil {
		return nil, nil
	}

	stats := run.snapshot()
	stats.Duration = time.Since(run.started)

	run.print(fmt.Sprintf("Tool calls: %d, Failed: %d, Not Found: %d, Prompts: %d",
		stats.ToolsCalls,
		stats.ToolsCallsFailed,
		stats.ToolNotFound,
		stats.PromptCalls,
	))
	run.print(fmt.Sprintf("Bytes In: %d, Bytes Out: %d",
		stats.BytesIn,
		stats.BytesOut,
	))
	run.print(fmt.Sprintf("*** Run Ended. Duration: %s ***", stats.Duration))

	l.lock.Lock()
	delete(l.runs, stats.RunID)
	l.lock.Unlock()

	return &stats, run.bytes()
}

func (l *Scratchpad) getRun(ctx context.Context) *run {
	runID := RunID(ctx)
	if runID == "" {
		return nil
	}

	l.lock.Lock()
	defer l.lock.Unlock()
	return l.runs[runID]
}

func (l *Scratchpad) OnToolStart(ctx context.Context, tool tools.ITool, input string) {
	run := l.getRun(ctx)
	if run == nil {
		return
	}
	atomic.AddUint32(&run.stats.ToolsCalls, 1)
	atomic.AddUint64(&run.stats.BytesIn, uint64(len(input)))
	if tools.KindOf(tool) == tools.KindPrompt {
		atomic.AddUint32(&run.stats.PromptCalls, 1)
	}
	run.print(tool.Name(), "*** Tool Start ***")
	run.print(tool.Name(), "Input:", input)
}

func (l *Scratchpad) OnToolEnd(ctx context.Context, tool tools.ITool, input string, output string) {
	run := l.getRun(ctx)
	if run == nil {
		return
	}
	atomic.AddUint32(&run.stats.ToolsCallsSucceeded, 1)
	atomic.AddUint64(&run.stats.BytesOut, uint64(len(output)))
	if l.mode == ModeVerbose {
		run.print(tool.Name(), "Output:", output)
	}
	run.print(tool.Name(), "*** Tool End ***")
}

func (l *Scratchpad) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {
	run := l.getRun(ctx)
	if run == nil {
		return
	}
	atomic.AddUint32(&run.stats.ToolsCallsFailed, 1)
	run.print(tool.Name(), "*** Tool Error ***", err.Error())
}

func (l *Scratchpad) OnToolNotFound(ctx context.Context, name string) {
	run := l.getRun(ctx)
	if run == nil {
		return
	}
	atomic.AddUint32(&run.stats.ToolNotFound, 1)
	run.print("*** Tool Not Found ***", name)
}

type run struct {
	w       bytes.Buffer
	started time.Time
	lock    sync.Mutex
	stats   RunStats
}

func (r *run) snapshot() RunStats {
	return RunStats{
		RunID:               r.stats.RunID,
		ToolsCalls:          atomic.LoadUint32(&r.stats.ToolsCalls),
		ToolsCallsSucceeded: atomic.LoadUint32(&r.stats.ToolsCallsSucceeded),
		ToolsCallsFailed:    atomic.LoadUint32(&r.stats.ToolsCallsFailed),
		ToolNotFound:        atomic.LoadUint32(&r.stats.ToolNotFound),
		PromptCalls:         atomic.LoadUint32(&r.stats.PromptCalls),
		BytesIn:             atomic.LoadUint64(&r.stats.BytesIn),
		BytesOut:            atomic.LoadUint64(&r.stats.BytesOut),
	}
}

func (r *run) bytes() []byte {
	r.lock.Lock()
	defer r.lock.Unlock()
	return bytes.Clone(r.w.Bytes())
}

// print writes the entries to the run's output.
// The entries are written in the following format:
// [timestamp runID] entry entry\n
func (r *run) print(entries ...string) {
	r.lock.Lock()
	defer r.lock.Unlock()

	now := TimeNowFn()
	ts := now.Format("2006-01-02 15:04:05")

	_, _ = r.w.WriteString(ts)
	_, _ = r.w.WriteString(" ")
	_, _ = r.w.WriteString(r.stats.RunID)
	_, _ = r.w.WriteString(" ")

	for i, entry := range entries {
		if i > 0 {
			_, _ = r.w.WriteString(" ")
		}
		_, _ = r.w.WriteString(entry)
	}
	_, _ = r.w.WriteString("\n")
}
