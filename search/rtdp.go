package search

import (
	"math/rand"
)

// rtdp implements Barto, Bradtke & Singh's real-time dynamic
// programming: stochastic greedy trials with a Bellman backup at every
// visited node.
//
// RTDP keeps no labels, tracks no lower bound, and offers no
// termination guarantee of its own; planning stops only through the
// driver's wall-clock budget. The depth
// cap is explicit configuration (WithMaxTrialDepth) since a trial on a
// cyclic graph can otherwise wander indefinitely.
type rtdp struct {
	c   *Core
	rng *rand.Rand
}

func newRTDP(c *Core) *rtdp {
	return &rtdp{
		c:   c,
		rng: rand.New(rand.NewSource(c.opts.Seed)),
	}
}

// doTrial descends from the root, at each node backing up, taking the
// greedy upper-bound action, and sampling the next outcome by obsProb.
// The descent stops at a solved or terminal node or at the depth cap.
func (r *rtdp) doTrial(root *Node) (bool, error) {
	c := r.c

	n := root
	for depth := 0; depth < c.opts.MaxTrialDepth; depth++ {
		if n.isSolved {
			break
		}
		if n.IsFringe() {
			if err := c.graph.Expand(n); err != nil {
				return false, err
			}
		}
		if err := c.update(n); err != nil {
			return false, err
		}

		a := c.maxUBAction(n)
		next := r.sampleOutcome(n.Q(a))
		if next == nil {
			break
		}
		n = next
	}

	return false, nil
}

// sampleOutcome draws a successor of the Q-entry proportionally to
// obsProb, walking slots in ascending outcome id so equal seeds replay
// identical trajectories. Nil (zero-probability) slots are skipped.
func (r *rtdp) sampleOutcome(q *QEntry) *Node {
	draw := r.rng.Float64()

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

	// Rounding can leave cum marginally below 1; the draw then lands on
	// the final populated slot.
	return last
}
