package search

// frtdp implements Smith & Simmons' focused RTDP (AAAI 2006): a
// deterministic descent that at each node follows the single outcome
// with the largest probability-weighted bound gap, maintains both bounds,
// and backs up the whole trajectory on the way out.
//
// Termination of a single trial is governed by three guards:
//
//   - a solved or terminal node,
//   - the occupancy weight test: the trial stops once
//     W · excess(n) ≤ qualityFactor · excess(root), where W is the
//     product of γ·obsProb along the trajectory and excess is the bound
//     gap beyond ε — deeper work would be too diluted to matter at the
//     root,
//   - the adaptive depth bound D, grown geometrically whenever a trial
//     is cut off by depth, so early trials stay shallow and cheap while
//     later trials reach as far as the remaining uncertainty requires.
//
// The trajectory is kept on an explicit slice rather than the call
// stack: trials can be thousands of steps deep.
type frtdp struct {
	c *Core

	// maxDepth is the adaptive bound D.
	maxDepth float64
}

func newFRTDP(c *Core) *frtdp {
	return &frtdp{
		c:        c,
		maxDepth: c.opts.FRTDPInitialDepth,
	}
}

// doTrial runs one focused trial. FRTDP terminates planning through the
// driver's numeric root test, never through labels.
func (f *frtdp) doTrial(root *Node) (bool, error) {
	c := f.c
	eps := c.opts.TargetPrecision
	gamma := c.problem.Discount()

	rootExcess := (root.ubVal - root.lbVal) - eps
	if rootExcess <= 0 {
		return true, nil
	}

	trajectory := make([]*Node, 0, 64)
	weight := 1.0
	depthTerminated := false

	n := root
	for {
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
		trajectory = append(trajectory, n)

		// Occupancy test: stop when further refinement here is too diluted
		// to move the root by a useful fraction of its excess width.
		excess := (n.ubVal - n.lbVal) - eps
		if weight*excess <= c.opts.FRTDPQualityFactor*rootExcess {
			break
		}
		if float64(len(trajectory)) >= f.maxDepth {
			depthTerminated = true
			break
		}

		// Follow the outcome with the largest weighted bound gap under the
		// greedy action; ascending id order breaks ties.
		qa := n.Q(c.maxUBAction(n))
		var best *Edge
		bestGap := -1.0
		for o := 0; o < qa.NumOutcomes(); o++ {
			e := qa.Outcome(o)
			if e == nil {
				continue
			}
			gap := e.obsProb * (e.next.ubVal - e.next.lbVal)
			if gap > bestGap {
				bestGap = gap
				best = e
			}
		}
		if best == nil {
			break
		}

		weight *= gamma * best.obsProb
		n = best.next
	}

	// Unwind: back up every ancestor and propagate the priority estimate
	// (discounted, probability-weighted child gap) so the trajectory's
	// remaining uncertainty is visible from above.
	for i := len(trajectory) - 1; i >= 0; i-- {
		an := trajectory[i]
		if err := c.update(an); err != nil {
			return false, err
		}
		an.prio = f.priority(an)
	}

	if depthTerminated {
		f.maxDepth *= c.opts.FRTDPDepthGrowth
	}

	return false, nil
}

// priority estimates how much uncertainty remains below n: the
// discounted maximum over greedy-action outcomes of obsProb times the
// child's own priority (bound gap for fringe children).
func (f *frtdp) priority(n *Node) float64 {
	c := f.c

	qa := n.Q(c.maxUBAction(n))
	var best float64
	for o := 0; o < qa.NumOutcomes(); o++ {
		e := qa.Outcome(o)
		if e == nil {
			continue
		}
		childPrio := e.next.prio
		if e.next.IsFringe() || childPrio == 0 {
			childPrio = e.next.ubVal - e.next.lbVal
		}
		if p := e.obsProb * childPrio; p > best {
			best = p
		}
	}

	return c.problem.Discount() * best
}
