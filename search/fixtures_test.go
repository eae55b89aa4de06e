// File: search/fixtures_test.go
//
// Small hand-built MDPs and bound doubles shared by the engine tests.
// Each fixture is a complete core.Problem; bounds are supplied as
// constant estimators so seed admissibility is explicit per test.
package search

import (
	"strconv"

	"github.com/ktushar14/zmdp/core"
)

// intState is the fixtures' state handle: a plain integer id.
type intState int

func (s intState) Key() string { return strconv.Itoa(int(s)) }

// constBound reports one value everywhere except terminal states,
// which are exact at zero.
type constBound struct {
	problem core.Problem
	value   float64
}

func (b *constBound) Initialize(float64) error { return nil }

func (b *constBound) Value(s core.State) float64 {
	if b.problem != nil && b.problem.IsTerminalState(s) {
		return 0
	}

	return b.value
}

// pointFacade is the test double for the scalar bounds facade.
type pointFacade struct {
	lower core.AbstractBound
	upper core.AbstractBound
}

func (p *pointFacade) Initialize(eps float64) error {
	if err := p.lower.Initialize(eps); err != nil {
		return err
	}

	return p.upper.Initialize(eps)
}

func (p *pointFacade) InitialValues(s core.State) (core.ValueInterval, error) {
	return core.ValueInterval{Lower: p.lower.Value(s), Upper: p.upper.Value(s)}, nil
}

func (p *pointFacade) TracksLowerBound() bool { return true }

func (p *pointFacade) UpdateNode(*Node) error { return nil }

// action describes one action of a tableProblem state: the expected
// immediate reward plus the populated outcomes. numSlots is the dense
// slot count (0 means len(outcomes)); ids not listed are
// zero-probability slots.
type action struct {
	reward   float64
	outcomes []tableOutcome
	numSlots int
}

type tableOutcome struct {
	id   int
	prob float64
	next intState
}

// tableProblem is a finite MDP given extensionally: per-state action
// tables, a terminal set, a discount, and an initial state.
type tableProblem struct {
	discount float64
	initial  intState
	terminal map[intState]bool
	table    map[intState][]action

	lower float64
	upper float64
}

func (p *tableProblem) Discount() float64 { return p.discount }

func (p *tableProblem) InitialState() core.State { return p.initial }

func (p *tableProblem) IsTerminalState(s core.State) bool {
	return p.terminal[s.(intState)]
}

func (p *tableProblem) NumActions(s core.State) int {
	return len(p.table[s.(intState)])
}

func (p *tableProblem) Outcomes(s core.State, a int) (core.ActionOutcomes, error) {
	acts := p.table[s.(intState)]
	if a < 0 || a >= len(acts) {
		return core.ActionOutcomes{}, core.ErrActionRange
	}
	act := acts[a]

	slots := act.numSlots
	if slots == 0 {
		slots = len(act.outcomes)
	}
	ao := core.ActionOutcomes{
		ImmediateReward: act.reward,
		NumOutcomes:     slots,
	}
	for _, o := range act.outcomes {
		ao.Outcomes = append(ao.Outcomes, core.Outcome{ID: o.id, Prob: o.prob, Next: o.next})
	}

	return ao, nil
}

func (p *tableProblem) NewLowerBound() core.AbstractBound {
	return &constBound{problem: p, value: p.lower}
}

func (p *tableProblem) NewUpperBound() core.AbstractBound {
	return &constBound{problem: p, value: p.upper}
}

func (p *tableProblem) facade() *pointFacade {
	return &pointFacade{lower: p.NewLowerBound(), upper: p.NewUpperBound()}
}

// twoStateChain is scenario fixture: 0 →(−1)→ 1, state 1 terminal,
// undiscounted. V*(0) = −1.
func twoStateChain() *tableProblem {
	return &tableProblem{
		discount: 1,
		initial:  0,
		terminal: map[intState]bool{1: true},
		table: map[intState][]action{
			0: {{reward: -1, outcomes: []tableOutcome{{id: 0, prob: 1, next: 1}}}},
		},
		lower: -10,
		upper: 0,
	}
}

// twoActionChoice: action 0 reaches the terminal for −1, action 1
// self-loops for −1 under γ = 0.9 (worth −10). V*(0) = −1, policy 0.
func twoActionChoice() *tableProblem {
	return &tableProblem{
		discount: 0.9,
		initial:  0,
		terminal: map[intState]bool{1: true},
		table: map[intState][]action{
			0: {
				{reward: -1, outcomes: []tableOutcome{{id: 0, prob: 1, next: 1}}},
				{reward: -1, outcomes: []tableOutcome{{id: 0, prob: 1, next: 0}}},
			},
		},
		lower: -20,
		upper: 0,
	}
}

// stochasticBranch: one action, half to the terminal, half back to 0,
// expected step reward −0.5, undiscounted. V*(0) = −1 exactly.
func stochasticBranch() *tableProblem {
	return &tableProblem{
		discount: 1,
		initial:  0,
		terminal: map[intState]bool{1: true},
		table: map[intState][]action{
			0: {{reward: -0.5, outcomes: []tableOutcome{
				{id: 0, prob: 0.5, next: 1},
				{id: 1, prob: 0.5, next: 0},
			}}},
		},
		lower: -100,
		upper: 0,
	}
}

// diagGrid builds an n×n grid where the single action moves one step
// down the diagonal at cost 1; the far corner is terminal.
// States are numbered by diagonal index: 0, 1, ..., n−1.
// V*(start) = −(n−1).
func diagGrid(n int) *tableProblem {
	p := &tableProblem{
		discount: 1,
		initial:  0,
		terminal: map[intState]bool{intState(n - 1): true},
		table:    make(map[intState][]action),
		lower:    -2 * float64(n),
		upper:    0,
	}
	for i := 0; i < n-1; i++ {
		p.table[intState(i)] = []action{
			{reward: -1, outcomes: []tableOutcome{{id: 0, prob: 1, next: intState(i + 1)}}},
		}
	}

	return p
}

// bogusStart models the reference racetrack convention under γ = 1: a
// bogus initial state whose single zero-cost action distributes
// uniformly over two start cells, each one costly step from the goal.
// The free first move must not distort V*(root) = −1.
func bogusStart() *tableProblem {
	return &tableProblem{
		discount: 1,
		initial:  0,
		terminal: map[intState]bool{3: true},
		table: map[intState][]action{
			0: {{reward: 0, outcomes: []tableOutcome{
				{id: 0, prob: 0.5, next: 1},
				{id: 1, prob: 0.5, next: 2},
			}}},
			1: {{reward: -1, outcomes: []tableOutcome{{id: 0, prob: 1, next: 3}}}},
			2: {{reward: -1, outcomes: []tableOutcome{{id: 0, prob: 1, next: 3}}}},
		},
		lower: -10,
		upper: 0,
	}
}

// sparseOutcomes has a three-slot outcome vector whose middle slot
// carries zero probability and stays empty after expansion.
func sparseOutcomes() *tableProblem {
	return &tableProblem{
		discount: 1,
		initial:  0,
		terminal: map[intState]bool{1: true, 2: true},
		table: map[intState][]action{
			0: {{reward: -1, numSlots: 3, outcomes: []tableOutcome{
				{id: 0, prob: 0.5, next: 1},
				{id: 2, prob: 0.5, next: 2},
			}}},
		},
		lower: -10,
		upper: 0,
	}
}

// cyclicChoice has a genuine cycle 0 → 1 → 0 beside an exit, so HDP's
// SCC machinery sees a component larger than one node.
// Action tables: state 0 {exit: −2 to terminal; step: −1 to 1},
// state 1 {back: −1 to 0; exit: −1 to terminal}. γ = 0.95.
func cyclicChoice() *tableProblem {
	return &tableProblem{
		discount: 0.95,
		initial:  0,
		terminal: map[intState]bool{9: true},
		table: map[intState][]action{
			0: {
				{reward: -2, outcomes: []tableOutcome{{id: 0, prob: 1, next: 9}}},
				{reward: -1, outcomes: []tableOutcome{{id: 0, prob: 1, next: 1}}},
			},
			1: {
				{reward: -1, outcomes: []tableOutcome{{id: 0, prob: 1, next: 0}}},
				{reward: -1, outcomes: []tableOutcome{{id: 0, prob: 1, next: 9}}},
			},
		},
		lower: -100,
		upper: 0,
	}
}

// badMass violates the probability-mass contract on expansion.
func badMass() *tableProblem {
	return &tableProblem{
		discount: 1,
		initial:  0,
		terminal: map[intState]bool{1: true},
		table: map[intState][]action{
			0: {{reward: -1, outcomes: []tableOutcome{
				{id: 0, prob: 0.5, next: 1},
				{id: 1, prob: 0.4, next: 0},
			}}},
		},
		lower: -10,
		upper: 0,
	}
}
