// Package search types and configuration options for the trial-based
// search engine.
package search

import (
	"errors"
	"io"
	"math"

	"github.com/ktushar14/zmdp/core"
)

// idxInfinity is the sentinel for "no Tarjan index assigned". Node.idx
// and Node.low rest at this value between HDP trials.
const idxInfinity = math.MaxInt

// boundSlack is the numerical tolerance applied to the admissibility
// monotonicity checks: a backup may move a bound the wrong way by at
// most this much before the move is clamped (or, with debug checks,
// reported as ErrBoundViolation).
const boundSlack = 1e-9

// Sentinel errors returned by the search engine.
var (
	// ErrNilProblem indicates that a nil Problem was passed to New.
	ErrNilProblem = errors.New("search: problem is nil")

	// ErrNilBounds indicates that a nil ValueBounds facade was passed to New.
	ErrNilBounds = errors.New("search: value bounds facade is nil")

	// ErrUnknownStrategy indicates a StrategyKind outside the enumerated set.
	ErrUnknownStrategy = errors.New("search: unknown strategy kind")

	// ErrNotInitialized indicates PlanFixedTime or ChooseAction was called
	// before PlanInit.
	ErrNotInitialized = errors.New("search: PlanInit has not been called")

	// ErrReExpand indicates Expand was called on an interior node.
	// This never happens in a correct engine; treat it as a bug.
	ErrReExpand = errors.New("search: node is already expanded")

	// ErrBoundViolation indicates a backup tried to raise an upper bound or
	// lower a lower bound beyond numerical slack, i.e. the seed bounds were
	// not admissible. Reported only when debug checks are enabled; in
	// release mode the offending move is silently clamped.
	ErrBoundViolation = errors.New("search: bound moved against its monotonicity contract")

	// ErrBadPrecision indicates a non-positive target precision.
	ErrBadPrecision = errors.New("search: target precision must be positive")

	// ErrBadDepth indicates a non-positive trial depth cap.
	ErrBadDepth = errors.New("search: trial depth cap must be positive")

	// ErrLowerBoundRequired indicates a strategy that tracks lower bounds
	// (FRTDP, HDP+L) was wired to a facade without a lower bound.
	ErrLowerBoundRequired = errors.New("search: strategy requires a lower bound")
)

// StrategyKind enumerates the trial strategies sharing the engine.
type StrategyKind int

const (
	// RTDP samples outcomes stochastically and relies on the wall-clock
	// budget for termination (no labeling, no convergence guarantee).
	RTDP StrategyKind = iota

	// LRTDP is RTDP plus Bonet & Geffner's checkSolved labeling sweep;
	// terminates when the root is labeled solved.
	LRTDP

	// HDP is Bonet & Geffner's depth-first strategy with on-the-fly
	// Tarjan SCC labeling over the greedy-action subgraph.
	HDP

	// FRTDP is Smith & Simmons' focused RTDP: deterministic descent on
	// the probability-weighted bound gap, maintaining both bounds.
	FRTDP
)

// String returns the canonical lowercase name of the strategy.
func (k StrategyKind) String() string {
	switch k {
	case RTDP:
		return "rtdp"
	case LRTDP:
		return "lrtdp"
	case HDP:
		return "hdp"
	case FRTDP:
		return "frtdp"
	default:
		return "unknown"
	}
}

// Node is one vertex of the lazily grown reachable-state graph: a unique
// discovered state annotated with value bounds, Q-entries, and labels.
//
// A node with no Q-entries is a fringe node (discovered, not expanded).
// Terminal nodes are created solved with lbVal = ubVal = 0 and stay
// fringe forever.
type Node struct {
	state core.State

	// Bound sandwich: lbVal ≤ V*(state) ≤ ubVal at all times.
	lbVal float64
	ubVal float64

	// q holds one QEntry per action; empty while the node is fringe.
	q []QEntry

	// isSolved, once set, is never cleared.
	isSolved bool

	// idx and low are Tarjan SCC bookkeeping used only by HDP; both rest
	// at idxInfinity outside a trial.
	idx int
	low int

	// prio is the remaining-uncertainty estimate FRTDP last set on this
	// node: γ times the largest obsProb-weighted child priority (bound gap
	// for fringe children) under the greedy action.
	prio float64
}

// State returns the state handle this node was interned under.
func (n *Node) State() core.State { return n.state }

// Bounds returns the node's current value interval.
func (n *Node) Bounds() core.ValueInterval {
	return core.ValueInterval{Lower: n.lbVal, Upper: n.ubVal}
}

// IsFringe reports whether the node has not been expanded yet.
func (n *Node) IsFringe() bool { return len(n.q) == 0 }

// IsSolved reports whether the node carries the solved label.
func (n *Node) IsSolved() bool { return n.isSolved }

// NumActions returns the number of Q-entries (zero while fringe).
func (n *Node) NumActions() int { return len(n.q) }

// Q returns the Q-entry for action a. Valid only on interior nodes.
func (n *Node) Q(a int) *QEntry { return &n.q[a] }

// QEntry is the per-(node, action) record: the expected one-step reward,
// the cached outcome edges, and the Q-value bounds maintained by backups.
type QEntry struct {
	immediateReward float64

	// outcomes is dense by outcome id; a nil slot is a zero-probability
	// outcome and contributes nothing to backups or descent.
	outcomes []*Edge

	lbVal float64
	ubVal float64
}

// ImmediateReward returns R(s, a) for this entry.
func (q *QEntry) ImmediateReward() float64 { return q.immediateReward }

// NumOutcomes returns the dense outcome-slot count, including nil slots.
func (q *QEntry) NumOutcomes() int { return len(q.outcomes) }

// Outcome returns the edge in slot o, or nil for a zero-probability slot.
func (q *QEntry) Outcome(o int) *Edge { return q.outcomes[o] }

// Bounds returns the Q-value interval cached by the last backup.
func (q *QEntry) Bounds() core.ValueInterval {
	return core.ValueInterval{Lower: q.lbVal, Upper: q.ubVal}
}

// Edge is one outcome branch: the observation probability and a shared
// reference to the successor node. Successor nodes are owned by the node
// table, never by the edge.
type Edge struct {
	obsProb float64
	next    *Node
}

// ObsProb returns the probability mass of this outcome.
func (e *Edge) ObsProb() float64 { return e.obsProb }

// Next returns the successor node.
func (e *Edge) Next() *Node { return e.next }

// ValueBounds is the facade the engine consults for initial node bounds
// and notifies after each scalar backup. PointBounds and ConvexBounds
// both satisfy it.
type ValueBounds interface {
	// Initialize is called once from PlanInit, before any query.
	Initialize(targetPrecision float64) error

	// InitialValues seeds the bounds of a newly interned non-terminal node.
	InitialValues(s core.State) (core.ValueInterval, error)

	// TracksLowerBound reports whether a meaningful lower bound is
	// maintained. When false the engine backs up upper bounds only.
	TracksLowerBound() bool

	// UpdateNode is invoked after every scalar backup of n, allowing
	// representations with shared structure (alpha vectors, sawtooth
	// support points) to fold the new values into their global sets.
	UpdateNode(n *Node) error
}

// Options configures a search Core. Use the With... functional options;
// zero values are filled from DefaultOptions.
type Options struct {
	// TargetPrecision is ε, the root bound gap at which planning stops.
	TargetPrecision float64

	// Seed seeds RTDP's outcome sampling. Runs with equal seeds are
	// bit-reproducible.
	Seed int64

	// MaxTrialDepth caps the length of one RTDP/LRTDP descent.
	MaxTrialDepth int

	// DebugChecks upgrades admissibility clamps to hard ErrBoundViolation
	// failures.
	DebugChecks bool

	// HDPLowerBound turns HDP into HDP+L: backups also maintain lower
	// bounds and the output policy follows them.
	HDPLowerBound bool

	// FRTDPQualityFactor is the fraction of the root excess width below
	// which a trial stops descending (occupancy-weighted).
	FRTDPQualityFactor float64

	// FRTDPInitialDepth is FRTDP's starting adaptive depth bound D.
	FRTDPInitialDepth float64

	// FRTDPDepthGrowth multiplies D after every depth-terminated trial.
	FRTDPDepthGrowth float64

	// BoundsLog, when non-nil, receives "elapsed lower upper" lines on the
	// logarithmic schedule below.
	BoundsLog io.Writer

	// MinOrder and MaxOrder bracket the schedule: ticks are log-uniform
	// between 10^MinOrder and 10^MaxOrder seconds, TicksPerOrder per decade.
	MinOrder      int
	MaxOrder      int
	TicksPerOrder int
}

// Option is a functional option for configuring the search Core.
type Option func(*Options)

// DefaultOptions returns the engine defaults: ε = 1e-3, seed 0, depth
// cap 1000, release-mode clamping, FRTDP quality factor 1e-2 with
// initial depth 10 growing ×1.1, bounds logging disabled with the
// solveMDP schedule (orders 0..3, 10 ticks per order) preset.
func DefaultOptions() Options {
	return Options{
		TargetPrecision:    1e-3,
		Seed:               0,
		MaxTrialDepth:      1000,
		DebugChecks:        false,
		HDPLowerBound:      false,
		FRTDPQualityFactor: 1e-2,
		FRTDPInitialDepth:  10,
		FRTDPDepthGrowth:   1.1,
		BoundsLog:          nil,
		MinOrder:           0,
		MaxOrder:           3,
		TicksPerOrder:      10,
	}
}

// WithTargetPrecision sets ε, the target root bound gap.
// Must be positive; non-positive values panic with ErrBadPrecision.
func WithTargetPrecision(eps float64) Option {
	return func(o *Options) {
		if eps <= 0 || math.IsNaN(eps) {
			panic(ErrBadPrecision.Error())
		}
		o.TargetPrecision = eps
	}
}

// WithSeed seeds RTDP's pseudo-random outcome sampling.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithMaxTrialDepth caps the length of one stochastic descent.
// Must be positive; non-positive values panic with ErrBadDepth.
func WithMaxTrialDepth(depth int) Option {
	return func(o *Options) {
		if depth <= 0 {
			panic(ErrBadDepth.Error())
		}
		o.MaxTrialDepth = depth
	}
}

// WithDebugChecks makes admissibility violations fatal instead of
// silently clamped.
func WithDebugChecks() Option {
	return func(o *Options) {
		o.DebugChecks = true
	}
}

// WithHDPLowerBound enables the HDP+L variant: lower bounds are tracked
// alongside the usual upper bound and the output policy follows them.
func WithHDPLowerBound() Option {
	return func(o *Options) {
		o.HDPLowerBound = true
	}
}

// WithFRTDPQualityFactor sets the occupancy-weighted excess-width
// fraction below which an FRTDP trial stops descending. Must be in (0, 1).
func WithFRTDPQualityFactor(f float64) Option {
	return func(o *Options) {
		if f <= 0 || f >= 1 || math.IsNaN(f) {
			panic("search: FRTDP quality factor must lie in (0, 1)")
		}
		o.FRTDPQualityFactor = f
	}
}

// WithFRTDPInitialDepth sets FRTDP's starting adaptive depth bound.
func WithFRTDPInitialDepth(d float64) Option {
	return func(o *Options) {
		if d <= 0 {
			panic(ErrBadDepth.Error())
		}
		o.FRTDPInitialDepth = d
	}
}

// WithFRTDPDepthGrowth sets the multiplier applied to FRTDP's depth
// bound after a depth-terminated trial. Must be > 1.
func WithFRTDPDepthGrowth(g float64) Option {
	return func(o *Options) {
		if g <= 1 || math.IsNaN(g) {
			panic("search: FRTDP depth growth must exceed 1")
		}
		o.FRTDPDepthGrowth = g
	}
}

// WithBoundsLog directs "elapsed lower upper" emission to w on the
// logarithmic schedule spanned by minOrder..maxOrder with ticksPerOrder
// ticks per decade.
func WithBoundsLog(w io.Writer, minOrder, maxOrder, ticksPerOrder int) Option {
	return func(o *Options) {
		o.BoundsLog = w
		o.MinOrder = minOrder
		o.MaxOrder = maxOrder
		o.TicksPerOrder = ticksPerOrder
	}
}
