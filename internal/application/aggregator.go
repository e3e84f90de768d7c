package application

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/bnema/pmc-telemetry/internal/domain"
	"github.com/bnema/pmc-telemetry/internal/ports"
)

// Aggregator accumulates console telemetry for the current solution and the
// whole host instance, and emits one combined event per session boundary.
//
// Flushes never fail from the caller's point of view: derivation or emit
// failures lose that boundary's telemetry and leave state ready for the next
// cycle.
type Aggregator struct {
	mu            sync.Mutex
	emitter       ports.Emitter
	logger        *slog.Logger
	prefix        string
	solution      *SessionAccumulator
	instance      *SessionAccumulator
	solutionCount int
}

type Option func(*Aggregator)

// WithLogger reports swallowed flush failures at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithPrefix overrides the property namespace of emitted events.
func WithPrefix(prefix string) Option {
	return func(a *Aggregator) {
		a.prefix = prefix
	}
}

func NewAggregator(emitter ports.Emitter, opts ...Option) *Aggregator {
	a := &Aggregator{
		emitter:  emitter,
		logger:   slog.New(slog.DiscardHandler),
		prefix:   domain.DefaultPrefix,
		solution: newSessionAccumulator(),
		instance: newSessionAccumulator(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// AddEvent stores record in both the solution and instance scopes.
func (a *Aggregator) AddEvent(record domain.EventRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.solution.append(record)
	a.instance.append(record)
}

// OnSolutionOpened is called once a solution finishes loading. Console usage
// recorded before the first solution is flushed on its own so it is not
// merged into that solution's metrics.
func (a *Aggregator) OnSolutionOpened(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.solutionCount == 0 && a.solution.contains(executedCommands) {
		a.logger.DebugContext(ctx, "flushing console usage recorded before first solution")
		a.flushSolution(ctx)
	}

	a.solutionCount++
}

// EmitSolutionSession is called when a solution closes.
func (a *Aggregator) EmitSolutionSession(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.flushSolution(ctx)
}

// EmitInstanceSession is called when the host instance shuts down. The
// instance scope is terminal afterwards and later calls do nothing.
func (a *Aggregator) EmitInstanceSession(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.instance.state == ScopeTerminal {
		a.logger.DebugContext(ctx, "instance session already emitted")
		return
	}
	defer func() { a.instance.state = ScopeTerminal }()
	defer a.recoverFlush(ctx, domain.InstanceCloseEvent)

	a.instance.resetPending()
	a.enqueueInstanceConsole()

	if err := a.combineAndEmit(ctx, a.instance.output(), domain.InstanceCloseEvent); err != nil {
		a.dropped(ctx, domain.InstanceCloseEvent, err)
	}
}

// SolutionCount is the number of solutions opened during this instance.
func (a *Aggregator) SolutionCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.solutionCount
}

func (a *Aggregator) SolutionEvents() []domain.EventRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.solution.Events()
}

func (a *Aggregator) InstanceEvents() []domain.EventRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.instance.Events()
}

// Terminated reports whether the instance session has been emitted.
func (a *Aggregator) Terminated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.instance.state == ScopeTerminal
}

// flushSolution must be called with a.mu held.
func (a *Aggregator) flushSolution(ctx context.Context) {
	defer a.solution.reset()
	defer a.recoverFlush(ctx, domain.SolutionCloseEvent)

	a.solution.resetPending()
	if !a.enqueueSolutionConsole() {
		a.logger.DebugContext(ctx, "solution session suppressed: console opened without commands or solution")
		return
	}

	if err := a.combineAndEmit(ctx, a.solution.output(), domain.SolutionCloseEvent); err != nil {
		a.dropped(ctx, domain.SolutionCloseEvent, err)
	}
}

// enqueueSolutionConsole derives the console properties of the solution
// scope. It reports false when the session carries too little signal to be
// emitted at all.
func (a *Aggregator) enqueueSolutionConsole() bool {
	summary, ok := a.solution.first(domain.ConsoleExecuteCommandEvent)
	if !ok {
		// Console never loaded during this solution.
		a.putSolution(domain.FieldExecutedCommandCount, int64(0))
		a.putSolution(domain.FieldNonConsoleExecutedCommandCount, int64(0))
		a.putSolution(domain.FieldLoadedFromConsole, false)
		a.putSolution(domain.FieldLoadedFromUI, false)
		a.putSolution(domain.FieldFirstTimeLoadedFromConsole, false)
		a.putSolution(domain.FieldFirstTimeLoadedFromUI, false)
	} else {
		if executed, isInt := summary.Int(domain.FieldExecutedCommandCount); isInt && executed == 0 && a.solutionCount == 0 {
			return false
		}

		for _, field := range domain.ConsoleSummaryFields {
			value, _ := summary.Get(field)
			a.putSolution(field, value)
		}
	}

	a.putSolution(domain.FieldWindowLoadCount, a.solution.sumInt(domain.FieldWindowLoadCount))
	return true
}

func (a *Aggregator) enqueueInstanceConsole() {
	a.putInstance(domain.FieldReopenAtStart, a.instance.contains(func(r domain.EventRecord) bool {
		return r.HasValue(domain.FieldReopenAtStart)
	}))
	a.putInstance(domain.FieldWindowLoadCount, a.instance.sumInt(domain.FieldWindowLoadCount))
	a.putInstance(domain.FieldExecutedCommandCount, a.instance.sumInt(domain.FieldExecutedCommandCount))
	a.putInstance(domain.FieldNonConsoleExecutedCommandCount, a.instance.sumInt(domain.FieldNonConsoleExecutedCommandCount))
	a.putInstance(domain.FieldSolutionCount, int64(a.solutionCount))
	// solution-loaded excludes console loads that happened before any solution.
	a.putInstance(domain.FieldConsoleLoadedSolutionCount, a.instance.count(func(r domain.EventRecord) bool {
		return isTrue(r, domain.FieldSolutionLoaded) && isTrue(r, domain.FieldLoadedFromConsole)
	}))
	a.putInstance(domain.FieldUILoadedSolutionCount, a.instance.count(func(r domain.EventRecord) bool {
		return isTrue(r, domain.FieldLoadedFromUI)
	}))
}

func (a *Aggregator) putSolution(field string, value any) {
	a.solution.put(a.prefix+field, value)
}

func (a *Aggregator) putInstance(field string, value any) {
	a.instance.put(a.prefix+field, value)
}

// combineAndEmit hands output to the emitter as one event named name. It
// does nothing for an empty output and never modifies it.
func (a *Aggregator) combineAndEmit(ctx context.Context, output map[string]any, name string) error {
	if len(output) == 0 {
		return nil
	}
	if a.emitter == nil {
		return nil
	}

	event := domain.CombinedEvent{Name: name, Properties: maps.Clone(output)}
	if err := a.emitter.Emit(ctx, event); err != nil {
		return fmt.Errorf("emit %s: %w", name, err)
	}

	return nil
}

func (a *Aggregator) recoverFlush(ctx context.Context, name string) {
	if r := recover(); r != nil {
		a.dropped(ctx, name, fmt.Errorf("panic: %v", r))
	}
}

func (a *Aggregator) dropped(ctx context.Context, name string, err error) {
	a.logger.DebugContext(ctx, "telemetry dropped", slog.String("event", name), slog.Any("error", err))
}

func executedCommands(r domain.EventRecord) bool {
	count, ok := r.Int(domain.FieldExecutedCommandCount)
	return ok && count > 0
}

func isTrue(r domain.EventRecord, key string) bool {
	value, ok := r.Bool(key)
	return ok && value
}
