package bounds

import (
	"github.com/ktushar14/zmdp/core"
)

// constantBound reports the same value for every state. The usual
// trivial upper bound for pure-cost problems is NewConstantBound(0).
type constantBound struct {
	value float64
}

// NewConstantBound returns an estimator that reports v everywhere.
// Admissibility is the caller's claim: v must bound V* in the intended
// direction for every reachable state.
func NewConstantBound(v float64) core.AbstractBound {
	return &constantBound{value: v}
}

func (b *constantBound) Initialize(float64) error { return nil }

func (b *constantBound) Value(core.State) float64 { return b.value }

// worstCaseBound is the discounted worst case for cost problems: every
// step costs at most maxCostPerStep forever, so
// V*(s) ≥ −maxCostPerStep / (1 − γ). Terminal states are exact at zero.
type worstCaseBound struct {
	problem        core.Problem
	maxCostPerStep float64
	floor          float64
}

// NewWorstCaseBound returns the −maxCostPerStep/(1−γ) lower bound for
// the given problem. Requires γ < 1; undiscounted problems use
// NewHorizonBound instead.
func NewWorstCaseBound(problem core.Problem, maxCostPerStep float64) core.AbstractBound {
	return &worstCaseBound{problem: problem, maxCostPerStep: maxCostPerStep}
}

func (b *worstCaseBound) Initialize(float64) error {
	b.floor = -b.maxCostPerStep / (1 - b.problem.Discount())

	return nil
}

func (b *worstCaseBound) Value(s core.State) float64 {
	if b.problem.IsTerminalState(s) {
		return 0
	}

	return b.floor
}

// horizonBound is the finite-horizon worst case for undiscounted
// problems: no proper policy needs more than horizon steps, each
// costing at most maxCostPerStep, so V*(s) ≥ −maxCostPerStep·horizon.
type horizonBound struct {
	problem core.Problem
	floor   float64
}

// NewHorizonBound returns the −maxCostPerStep·horizon lower bound.
// The horizon must dominate the length of the worst relevant policy;
// too small a horizon breaks admissibility.
func NewHorizonBound(problem core.Problem, maxCostPerStep float64, horizon int) core.AbstractBound {
	return &horizonBound{problem: problem, floor: -maxCostPerStep * float64(horizon)}
}

func (b *horizonBound) Initialize(float64) error { return nil }

func (b *horizonBound) Value(s core.State) float64 {
	if b.problem.IsTerminalState(s) {
		return 0
	}

	return b.floor
}
