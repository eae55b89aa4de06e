package search

import (
	"math/rand"
)

// lrtdp implements Bonet & Geffner's labeled RTDP: the RTDP descent
// followed by a checkSolved sweep that walks the trial's visited stack
// from the leaf back to the root, proving ε-convergence of greedy
// subtrees and labeling them solved.
//
// Solved nodes are treated as terminal by later trials, so on a finite
// proper MDP with admissible bounds the root is labeled in finitely
// many trials and planning stops.
type lrtdp struct {
	c   *Core
	rng *rand.Rand
}

func newLRTDP(c *Core) *lrtdp {
	return &lrtdp{
		c:   c,
		rng: rand.New(rand.NewSource(c.opts.Seed)),
	}
}

// doTrial runs one stochastic descent, then attempts to label the
// visited nodes from the deepest up. Labeling stops at the first node
// that cannot be proved solved. Planning is done once the root is
// labeled.
func (l *lrtdp) doTrial(root *Node) (bool, error) {
	c := l.c

	// 1) Descent, recording every visited node.
	visited := make([]*Node, 0, 64)
	n := root
	for depth := 0; depth < c.opts.MaxTrialDepth; depth++ {
		if n.isSolved {
			break
		}
		visited = append(visited, n)

		if n.IsFringe() {
			if err := c.graph.Expand(n); err != nil {
				return false, err
			}
		}
		if err := c.update(n); err != nil {
			return false, err
		}

		a := c.maxUBAction(n)
		next := l.sampleOutcome(n.Q(a))
		if next == nil {
			break
		}
		n = next
	}

	// 2) Label sweep: leaf to root, stop at the first failure.
	for i := len(visited) - 1; i >= 0; i-- {
		solved, err := l.checkSolved(visited[i])
		if err != nil {
			return false, err
		}
		if !solved {
			break
		}
	}

	return root.isSolved, nil
}

func (l *lrtdp) sampleOutcome(q *QEntry) *Node {
	draw := l.rng.Float64()

	var cum float64
	var last *Node
	for _, e := range q.outcomes {
		if e == nil {
			continue
		}
		last = e.next
		cum += e.obsProb
		if draw < cum {
			return e.next
		}
	}

	return last
}

// checkSolved attempts to prove that every unsolved node reachable from
// s under greedy upper-bound actions has residual ≤ ε and, since LRTDP
// tracks lower bounds, a bound gap ≤ ε, so that a solved root also
// passes the driver's numeric convergence test. On success all
// touched nodes are labeled solved; on failure they are backed up
// instead, so failed sweeps still make numeric progress.
func (l *lrtdp) checkSolved(s *Node) (bool, error) {
	c := l.c
	eps := c.opts.TargetPrecision

	rv := true
	open := make([]*Node, 0, 32)
	closed := make([]*Node, 0, 32)
	seen := make(map[*Node]bool, 32)

	if !s.isSolved {
		open = append(open, s)
		seen[s] = true
	}

	for len(open) > 0 {
		n := open[len(open)-1]
		open = open[:len(open)-1]
		closed = append(closed, n)

		if n.IsFringe() {
			// A fringe node inside the greedy envelope has an unexplored
			// value; the envelope cannot be certified through it yet.
			if err := c.graph.Expand(n); err != nil {
				return false, err
			}
			c.cacheQ(n)
			rv = false
			continue
		}

		// Refresh Q caches and test the residual (and the bound gap) before
		// trusting the greedy action.
		c.cacheQ(n)
		if c.residual(n) > eps || (c.trackLowerBound && n.ubVal-n.lbVal > eps) {
			rv = false
			continue
		}

		a := c.maxUBAction(n)
		qa := n.Q(a)
		for o := 0; o < qa.NumOutcomes(); o++ {
			e := qa.Outcome(o)
			if e == nil {
				continue
			}
			child := e.next
			if !child.isSolved && !seen[child] {
				seen[child] = true
				open = append(open, child)
			}
		}
	}

	if rv {
		for _, n := range closed {
			n.isSolved = true
		}
		return true, nil
	}

	// Back up the closed set in reverse visitation order so deeper nodes
	// feed fresher values to their ancestors.
	for i := len(closed) - 1; i >= 0; i-- {
		if err := c.update(closed[i]); err != nil {
			return false, err
		}
	}

	return false, nil
}
