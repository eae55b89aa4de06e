package search

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ktushar14/zmdp/core"
)

// strategy is the per-variant trial hook. doTrial runs one root-to-leaf
// trial and reports whether the strategy considers planning finished
// (label-based termination); numeric root convergence is checked by the
// Core between trials either way.
type strategy interface {
	doTrial(root *Node) (done bool, err error)
}

// Core is the shared trial driver: it owns the node graph, the bounds
// facade, trial/backup counters, cumulative planning time, and the
// bounds-log schedule, and delegates the descent itself to one of the
// four strategies.
//
// A Core is single-threaded by contract: all node mutation happens on
// the caller's goroutine, and the only interruption point is the
// wall-clock poll between trials. Independent Cores never share state.
type Core struct {
	problem core.Problem
	bounds  ValueBounds
	graph   *Graph
	strat   strategy
	kind    StrategyKind
	opts    Options

	// trackLowerBound is derived from the strategy: LRTDP, FRTDP and
	// HDP+L maintain both bounds, RTDP and plain HDP back up uppers only.
	trackLowerBound bool

	root        *Node
	initialized bool

	numTrials  int
	numBackups int

	// elapsed accumulates planning time across PlanFixedTime calls so the
	// bounds-log schedule and resumed planning agree on one clock.
	elapsed time.Duration

	log *boundsLogger
}

// New assembles a Core for the given problem, bounds facade, and
// strategy kind. Functional options refine DefaultOptions. PlanInit must
// run before any planning call.
func New(problem core.Problem, bounds ValueBounds, kind StrategyKind, opts ...Option) (*Core, error) {
	if problem == nil {
		return nil, ErrNilProblem
	}
	if bounds == nil {
		return nil, ErrNilBounds
	}
	if err := core.ValidateDiscount(problem.Discount()); err != nil {
		return nil, err
	}

	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Core{
		problem: problem,
		bounds:  bounds,
		opts:    cfg,
		kind:    kind,
	}

	switch kind {
	case RTDP:
		c.strat = newRTDP(c)
	case LRTDP:
		c.trackLowerBound = true
		c.strat = newLRTDP(c)
	case HDP:
		c.trackLowerBound = cfg.HDPLowerBound
		c.strat = newHDP(c)
	case FRTDP:
		c.trackLowerBound = true
		c.strat = newFRTDP(c)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, kind)
	}

	if c.trackLowerBound && !bounds.TracksLowerBound() {
		return nil, fmt.Errorf("%w: %s", ErrLowerBoundRequired, kind)
	}

	c.graph = newGraph(problem, bounds)
	if cfg.BoundsLog != nil {
		c.log = newBoundsLogger(cfg.BoundsLog, cfg.MinOrder, cfg.MaxOrder, cfg.TicksPerOrder)
	}

	return c, nil
}

// PlanInit initializes both bound estimators at the configured target
// precision and interns the root node. It must be called exactly once,
// before PlanFixedTime or ChooseAction.
func (c *Core) PlanInit() error {
	if err := c.bounds.Initialize(c.opts.TargetPrecision); err != nil {
		return fmt.Errorf("search: bounds initialization: %w", err)
	}

	root, err := c.graph.GetNode(c.problem.InitialState())
	if err != nil {
		return err
	}
	c.root = root
	c.initialized = true

	return nil
}

// PlanFixedTime runs trials until the root converges or maxSeconds of
// wall-clock time elapses, and reports whether convergence was reached.
// A negative budget lets the strategy choose: LRTDP and HDP run until
// the root is solved, FRTDP until the root gap is within ε, and RTDP
// runs a single trial.
//
// Budget exhaustion is not an error; planning may be resumed with
// another call and the cumulative clock (and bounds-log schedule)
// carries over.
func (c *Core) PlanFixedTime(maxSeconds float64) (bool, error) {
	if !c.initialized {
		return false, ErrNotInitialized
	}

	var deadline time.Time
	start := time.Now()
	switch {
	case maxSeconds >= 0:
		deadline = start.Add(time.Duration(maxSeconds * float64(time.Second)))
	case c.kind == RTDP:
		// RTDP has no termination of its own; with no budget either, one
		// trial per call keeps the caller in control.
		deadline = start
	}

	for !c.RootConverged() {
		done, err := c.strat.doTrial(c.root)
		c.numTrials++
		if err != nil {
			return false, err
		}

		c.maybeEmitBoundsLog(c.elapsed + time.Since(start))

		if done {
			break
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			break
		}
	}

	c.elapsed += time.Since(start)

	return c.RootConverged(), nil
}

// RootConverged reports whether planning has met its target: the root
// bound gap is within ε when a lower bound is tracked, otherwise the
// root carries the solved label.
func (c *Core) RootConverged() bool {
	if c.root == nil {
		return false
	}
	if c.trackLowerBound {
		return c.root.ubVal-c.root.lbVal <= c.opts.TargetPrecision
	}

	return c.root.isSolved
}

// ChooseAction returns the policy action at s: the smallest index
// maximizing the lower-bound Q-value when lower bounds are tracked
// (best anytime guarantee), or the upper-bound Q-value otherwise.
// A fringe node is expanded and backed up first.
func (c *Core) ChooseAction(s core.State) (int, error) {
	if !c.initialized {
		return 0, ErrNotInitialized
	}

	n, err := c.graph.GetNode(s)
	if err != nil {
		return 0, err
	}
	if c.problem.IsTerminalState(s) {
		return 0, fmt.Errorf("search: no action applicable in terminal state %q", s.Key())
	}
	if err = c.ensureExpanded(n); err != nil {
		return 0, err
	}

	if c.trackLowerBound {
		return c.maxLBAction(n), nil
	}

	return c.maxUBAction(n), nil
}

// ValueAt returns the current bound interval at s, interning the state
// if it has not been discovered yet.
func (c *Core) ValueAt(s core.State) (core.ValueInterval, error) {
	if !c.initialized {
		return core.ValueInterval{}, ErrNotInitialized
	}

	n, err := c.graph.GetNode(s)
	if err != nil {
		return core.ValueInterval{}, err
	}

	return n.Bounds(), nil
}

// Root returns the root node (nil before PlanInit).
func (c *Core) Root() *Node { return c.root }

// Graph returns the underlying node graph.
func (c *Core) Graph() *Graph { return c.graph }

// NumTrials returns the number of completed trials.
func (c *Core) NumTrials() int { return c.numTrials }

// NumBackups returns the number of Bellman backups performed.
func (c *Core) NumBackups() int { return c.numBackups }

// maybeEmitBoundsLog writes "elapsed lower upper" lines for every
// schedule tick the cumulative clock has crossed since the last call.
func (c *Core) maybeEmitBoundsLog(elapsed time.Duration) {
	if c.log == nil {
		return
	}
	c.log.maybeEmit(elapsed.Seconds(), c.root.lbVal, c.root.ubVal)
}

// boundsLogger emits (time, lower, upper) tuples on a logarithmic
// schedule: ticksPerOrder log-uniform ticks per decade of elapsed
// seconds, spanning 10^minOrder through 10^maxOrder.
type boundsLogger struct {
	w             io.Writer
	minOrder      int
	maxOrder      int
	ticksPerOrder int
	tick          int // index of the next unemitted tick
}

func newBoundsLogger(w io.Writer, minOrder, maxOrder, ticksPerOrder int) *boundsLogger {
	if ticksPerOrder < 1 {
		ticksPerOrder = 1
	}
	return &boundsLogger{
		w:             w,
		minOrder:      minOrder,
		maxOrder:      maxOrder,
		ticksPerOrder: ticksPerOrder,
	}
}

// tickSeconds returns the elapsed-seconds threshold of tick i:
// 10^(minOrder + i/ticksPerOrder).
func (l *boundsLogger) tickSeconds(i int) float64 {
	return math.Pow(10, float64(l.minOrder)+float64(i)/float64(l.ticksPerOrder))
}

// maybeEmit writes one line with the current bounds if elapsed has
// crossed the next tick, then skips every other tick already passed so
// a slow trial does not flood the log with stale duplicates.
func (l *boundsLogger) maybeEmit(elapsed, lower, upper float64) {
	lastTick := (l.maxOrder - l.minOrder) * l.ticksPerOrder
	if l.tick > lastTick || elapsed < l.tickSeconds(l.tick) {
		return
	}

	fmt.Fprintf(l.w, "%g %g %g\n", elapsed, lower, upper)
	for l.tick <= lastTick && elapsed >= l.tickSeconds(l.tick) {
		l.tick++
	}
}
