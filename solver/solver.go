package solver

import (
	"fmt"
	"io"

	"github.com/ktushar14/zmdp/bounds"
	"github.com/ktushar14/zmdp/core"
	"github.com/ktushar14/zmdp/search"
)

// Solver is the assembled planner: a problem, a value representation,
// and a trial strategy wired into one search core. It exposes the
// planInit / planFixedTime / chooseAction / getValueAt surface of the
// engine under the configuration table of this package.
type Solver struct {
	cfg  Config
	core *search.Core
}

// Option refines solver assembly beyond the Config record.
type Option func(*assembly)

// assembly collects construction-time extras before wiring.
type assembly struct {
	upperBound core.AbstractBound
	boundsLog  io.Writer
}

// WithUpperBound substitutes an informed admissible upper bound for the
// problem's own. Required when Config.UseHeuristic is set.
func WithUpperBound(b core.AbstractBound) Option {
	return func(a *assembly) {
		a.upperBound = b
	}
}

// WithBoundsLog streams "elapsed lower upper" lines to w on the
// schedule configured by MinOrder/MaxOrder/TicksPerOrder.
func WithBoundsLog(w io.Writer) Option {
	return func(a *assembly) {
		a.boundsLog = w
	}
}

// New validates the configuration against the problem and wires the
// bounds facade and strategy into a search core. Planning starts with
// PlanInit.
func New(problem core.Problem, cfg Config, opts ...Option) (*Solver, error) {
	if problem == nil {
		return nil, ErrNilProblem
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var asm assembly
	for _, opt := range opts {
		opt(&asm)
	}
	if cfg.UseHeuristic && asm.upperBound == nil {
		return nil, ErrHeuristicMissing
	}

	// 1) Value representation.
	var facade search.ValueBounds
	switch cfg.ValueRepr {
	case ValuePoint:
		upper := asm.upperBound
		if upper == nil {
			upper = problem.NewUpperBound()
		}
		pb, err := bounds.NewPointBounds(problem.NewLowerBound(), upper)
		if err != nil {
			return nil, err
		}
		facade = pb
	case ValueConvex:
		seeder, ok := problem.(bounds.ConvexSeeder)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrConvexRequiresBelief, problem)
		}
		facade = bounds.NewConvexBounds(seeder)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownValueRepr, cfg.ValueRepr)
	}

	// 2) Strategy.
	var kind search.StrategyKind
	switch cfg.Strategy {
	case StrategyRTDP:
		kind = search.RTDP
	case StrategyLRTDP:
		kind = search.LRTDP
	case StrategyHDP:
		kind = search.HDP
	case StrategyFRTDP:
		kind = search.FRTDP
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, cfg.Strategy)
	}

	// 3) Engine options from the config record.
	searchOpts := []search.Option{
		search.WithTargetPrecision(cfg.TargetPrecision),
		search.WithSeed(cfg.Seed),
	}
	if cfg.MaxTrialDepth > 0 {
		searchOpts = append(searchOpts, search.WithMaxTrialDepth(cfg.MaxTrialDepth))
	}
	if cfg.HDPLowerBound {
		searchOpts = append(searchOpts, search.WithHDPLowerBound())
	}
	if cfg.DebugChecks {
		searchOpts = append(searchOpts, search.WithDebugChecks())
	}
	if asm.boundsLog != nil {
		searchOpts = append(searchOpts,
			search.WithBoundsLog(asm.boundsLog, cfg.MinOrder, cfg.MaxOrder, cfg.TicksPerOrder))
	}

	c, err := search.New(problem, facade, kind, searchOpts...)
	if err != nil {
		return nil, err
	}

	return &Solver{cfg: cfg, core: c}, nil
}

// PlanInit initializes the bounds and interns the root node.
func (s *Solver) PlanInit() error { return s.core.PlanInit() }

// Plan runs PlanFixedTime with the configured wall budget.
func (s *Solver) Plan() (bool, error) { return s.core.PlanFixedTime(s.cfg.MaxWallSeconds) }

// PlanFixedTime plans for at most maxSeconds of wall-clock time and
// reports whether the target precision was reached. Budget exhaustion
// is not an error; call again to resume.
func (s *Solver) PlanFixedTime(maxSeconds float64) (bool, error) {
	return s.core.PlanFixedTime(maxSeconds)
}

// ChooseAction returns the policy action at s.
func (s *Solver) ChooseAction(state core.State) (int, error) {
	return s.core.ChooseAction(state)
}

// ValueAt returns the current [lower, upper] interval at s.
func (s *Solver) ValueAt(state core.State) (core.ValueInterval, error) {
	return s.core.ValueAt(state)
}

// Converged reports whether the root has met the target precision.
func (s *Solver) Converged() bool { return s.core.RootConverged() }

// NumTrials returns the number of completed trials.
func (s *Solver) NumTrials() int { return s.core.NumTrials() }

// NumBackups returns the number of Bellman backups performed.
func (s *Solver) NumBackups() int { return s.core.NumBackups() }

// NumStates returns the number of distinct states discovered.
func (s *Solver) NumStates() int { return s.core.Graph().NumStates() }
