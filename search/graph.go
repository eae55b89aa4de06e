package search

import (
	"fmt"
	"sort"

	"github.com/ktushar14/zmdp/core"
)

// Graph is the lazily grown reachable-state graph: an interning table
// from state key to node, plus the Problem and bounds facade consulted
// when new nodes appear.
//
// The table exclusively owns every node; edges hold plain back
// references whose liveness matches the table's. Nodes are created on
// first discovery and live until the planner is dropped. The reachable
// graph may contain cycles; interning guarantees one node per state so
// shared and cyclic structure costs nothing extra.
type Graph struct {
	problem core.Problem
	bounds  ValueBounds

	// nodes interns by core.State.Key().
	nodes map[string]*Node

	numStatesCreated int
	numExpansions    int
}

// newGraph builds an empty graph over problem and bounds.
func newGraph(problem core.Problem, bounds ValueBounds) *Graph {
	return &Graph{
		problem: problem,
		bounds:  bounds,
		nodes:   make(map[string]*Node),
	}
}

// NumStates returns the number of distinct states discovered so far.
func (g *Graph) NumStates() int { return g.numStatesCreated }

// NumExpansions returns the number of fringe nodes expanded so far.
func (g *Graph) NumExpansions() int { return g.numExpansions }

// Nodes returns every discovered node in ascending key order. Intended
// for diagnostics and invariant checks, not hot paths.
func (g *Graph) Nodes() []*Node {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*Node, len(keys))
	for i, k := range keys {
		out[i] = g.nodes[k]
	}

	return out
}

// GetNode returns the interned node for s, creating it on first sight.
//
// A new terminal node short-circuits to lbVal = ubVal = 0 with no
// Q-entries and isSolved = true. A new non-terminal node is seeded from
// the bounds facade and starts fringe and unsolved. Tarjan bookkeeping
// rests at the idxInfinity sentinel either way.
func (g *Graph) GetNode(s core.State) (*Node, error) {
	key := s.Key()
	if n, ok := g.nodes[key]; ok {
		return n, nil
	}

	n := &Node{
		state: s,
		idx:   idxInfinity,
		low:   idxInfinity,
	}

	if g.problem.IsTerminalState(s) {
		// Terminal: exact value zero, nothing to expand, nothing to prove.
		n.lbVal, n.ubVal = 0, 0
		n.isSolved = true
	} else {
		iv, err := g.bounds.InitialValues(s)
		if err != nil {
			return nil, fmt.Errorf("search: initial bounds for state %q: %w", key, err)
		}
		n.lbVal, n.ubVal = iv.Lower, iv.Upper
	}

	g.nodes[key] = n
	g.numStatesCreated++

	return n, nil
}

// Expand materializes all Q-entries of a fringe node: one entry per
// action, each with its immediate reward and dense outcome-edge slots,
// resolving successors through GetNode (creating children on demand).
//
// Expand validates every outcome distribution, never recurses into
// descendants, and leaves zero-probability slots nil. Calling it on an
// interior node returns ErrReExpand — that path indicates an engine bug.
func (g *Graph) Expand(n *Node) error {
	if !n.IsFringe() {
		return fmt.Errorf("%w: state %q", ErrReExpand, n.state.Key())
	}

	numActions := g.problem.NumActions(n.state)
	if numActions <= 0 {
		return fmt.Errorf("%w: non-terminal state %q reports %d actions", core.ErrActionRange, n.state.Key(), numActions)
	}
	q := make([]QEntry, numActions)
	for a := 0; a < numActions; a++ {
		ao, err := g.problem.Outcomes(n.state, a)
		if err != nil {
			return fmt.Errorf("search: outcomes of state %q action %d: %w", n.state.Key(), a, err)
		}
		if err = core.ValidateOutcomes(ao); err != nil {
			return fmt.Errorf("search: state %q action %d: %w", n.state.Key(), a, err)
		}

		entry := QEntry{
			immediateReward: ao.ImmediateReward,
			outcomes:        make([]*Edge, ao.NumOutcomes),
			// Seed Q bounds from the node's own interval so a node that is
			// read before its first backup still reports admissible values.
			lbVal: n.lbVal,
			ubVal: n.ubVal,
		}
		for _, o := range ao.Outcomes {
			if o.Prob == 0 {
				continue // empty slot: skipped by descent, contributes 0 to backups
			}
			child, err := g.GetNode(o.Next)
			if err != nil {
				return err
			}
			entry.outcomes[o.ID] = &Edge{obsProb: o.Prob, next: child}
		}
		q[a] = entry
	}

	n.q = q
	g.numExpansions++

	return nil
}
