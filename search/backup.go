package search

import (
	"fmt"
	"math"
)

// cacheQ recomputes the Q-value bounds of every action of n from the
// current bounds of its children:
//
//	Q[a].ub = R(s,a) + γ · Σ_o obsProb(o) · child(o).ub
//	Q[a].lb = R(s,a) + γ · Σ_o obsProb(o) · child(o).lb   (when tracked)
//
// Nil outcome slots carry zero probability and contribute nothing.
// Counts as one Bellman backup.
func (c *Core) cacheQ(n *Node) {
	gamma := c.problem.Discount()
	for a := range n.q {
		qa := &n.q[a]
		var ubVal, lbVal float64
		for _, e := range qa.outcomes {
			if e == nil {
				continue
			}
			ubVal += e.obsProb * e.next.ubVal
			if c.trackLowerBound {
				lbVal += e.obsProb * e.next.lbVal
			}
		}
		qa.ubVal = qa.immediateReward + gamma*ubVal
		if c.trackLowerBound {
			qa.lbVal = qa.immediateReward + gamma*lbVal
		}
	}

	c.numBackups++
}

// maxUBAction returns the smallest action index maximizing the cached
// upper-bound Q-value. Deterministic tie-breaking keeps runs
// bit-reproducible. Valid only on interior nodes with fresh Q caches.
func (c *Core) maxUBAction(n *Node) int {
	best := 0
	for a := 1; a < len(n.q); a++ {
		if n.q[a].ubVal > n.q[best].ubVal {
			best = a
		}
	}

	return best
}

// maxLBAction returns the smallest action index maximizing the cached
// lower-bound Q-value.
func (c *Core) maxLBAction(n *Node) int {
	best := 0
	for a := 1; a < len(n.q); a++ {
		if n.q[a].lbVal > n.q[best].lbVal {
			best = a
		}
	}

	return best
}

// residual returns |n.ubVal − max_a Q[a].ubVal|, assuming cacheQ has
// just run: the amount the node's cached upper bound would move under a
// fresh backup.
func (c *Core) residual(n *Node) float64 {
	return math.Abs(n.ubVal - n.q[c.maxUBAction(n)].ubVal)
}

// update performs one full Bellman backup at n: recompute the Q caches,
// then pull the node bounds to the per-direction maxima. The bounds
// facade is notified afterwards so shared-structure representations can
// fold in the new values.
//
// Admissible seeds make the upper bound non-increasing and the lower
// bound non-decreasing across backups. A move against that direction by
// more than boundSlack means the seed bounds were inadmissible: with
// debug checks enabled it is returned as ErrBoundViolation, otherwise
// the bound is silently clamped at its previous value.
func (c *Core) update(n *Node) error {
	c.cacheQ(n)

	if err := c.setUB(n, n.q[c.maxUBAction(n)].ubVal); err != nil {
		return err
	}
	if c.trackLowerBound {
		if err := c.setLB(n, n.q[c.maxLBAction(n)].lbVal); err != nil {
			return err
		}
	}

	return c.bounds.UpdateNode(n)
}

// setUB installs a freshly backed-up upper bound, enforcing the
// non-increasing contract (clamp in release mode, ErrBoundViolation
// under debug checks).
func (c *Core) setUB(n *Node, v float64) error {
	if v > n.ubVal+boundSlack {
		if c.opts.DebugChecks {
			return fmt.Errorf("%w: state %q upper %g -> %g", ErrBoundViolation, n.state.Key(), n.ubVal, v)
		}
		v = n.ubVal // clamp
	}
	n.ubVal = v

	return nil
}

// setLB installs a freshly backed-up lower bound, enforcing the
// non-decreasing contract.
func (c *Core) setLB(n *Node, v float64) error {
	if v < n.lbVal-boundSlack {
		if c.opts.DebugChecks {
			return fmt.Errorf("%w: state %q lower %g -> %g", ErrBoundViolation, n.state.Key(), n.lbVal, v)
		}
		v = n.lbVal // clamp
	}
	n.lbVal = v

	return nil
}

// ensureExpanded expands a fringe node and gives it its first backup.
// Interior nodes pass through untouched. Terminal nodes are never
// expanded (they are created solved and the trial loops treat solved as
// a base case before reaching here).
func (c *Core) ensureExpanded(n *Node) error {
	if !n.IsFringe() {
		return nil
	}
	if err := c.graph.Expand(n); err != nil {
		return err
	}

	return c.update(n)
}
