package search

// hdp implements Bonet & Geffner's HDP strategy: a deterministic
// depth-first trial over all positive-probability outcomes of the
// greedy action, with on-the-fly Tarjan SCC detection so that entire
// ε-converged components are labeled solved in one sweep.
//
// The recursion of the paper is expressed on an explicit frame stack:
// trial trajectories can be thousands of nodes deep and the Tarjan
// bookkeeping ports to frames directly. Two auxiliary structures back
// the algorithm: nodeStack (the Tarjan stack, with O(1) membership) and
// visited (every node given an index this trial, for idx reset).
//
// With the HDP+L option the same backups also maintain lower bounds and
// the driver's policy follows them, which improves anytime behavior
// before the bounds meet.
type hdp struct {
	c *Core

	index     int
	nodeStack markedStack
	visited   []*Node
}

func newHDP(c *Core) *hdp {
	return &hdp{c: c}
}

// hdpFrame is one suspended trialRecurse activation: the node, its
// greedy action at entry, the outcome cursor, and the dirty flag
// accumulated from descendants.
type hdpFrame struct {
	n     *Node
	a     int
	next  int
	dirty bool
}

// doTrial runs one depth-first trial from the root, then resets the
// Tarjan bookkeeping of every visited node and clears both stacks.
// Planning is done once the root is labeled solved.
func (h *hdp) doTrial(root *Node) (bool, error) {
	if root.isSolved {
		return true, nil
	}

	h.index = 0
	err := h.trial(root)

	// Reset idx/low to the sentinel for every node touched this trial.
	for _, n := range h.visited {
		n.idx = idxInfinity
		n.low = idxInfinity
	}
	h.visited = h.visited[:0]
	h.nodeStack.clear()

	return root.isSolved, err
}

// enter performs the pre-descent processing of a node. When the node
// becomes an open Tarjan vertex it returns opened=true; otherwise the
// node acted as a leaf and dirty reports whether its bound moved.
func (h *hdp) enter(n *Node) (opened, dirty bool, err error) {
	c := h.c

	// Base case: solved nodes terminate the descent untouched.
	if n.isSolved {
		return false, false, nil
	}

	if n.IsFringe() {
		if err = c.graph.Expand(n); err != nil {
			return false, false, err
		}
	}

	// Refresh Q caches; lower bounds ride every cache refresh in HDP+L.
	c.cacheQ(n)
	if c.trackLowerBound {
		if err = c.setLB(n, n.q[c.maxLBAction(n)].lbVal); err != nil {
			return false, false, err
		}
	}

	// Residual gate: a node whose upper bound still moves by more than ε
	// absorbs the move and reports dirty without opening.
	a := c.maxUBAction(n)
	if c.residual(n) > c.opts.TargetPrecision {
		if err = c.setUB(n, n.q[a].ubVal); err != nil {
			return false, false, err
		}

		return false, true, nil
	}

	// Mark the node active: assign the Tarjan index and push on both stacks.
	n.idx = h.index
	n.low = h.index
	h.index++
	h.visited = append(h.visited, n)
	h.nodeStack.push(n)

	return true, false, nil
}

// trial is the iterative trialRecurse: frames carry the outcome cursor,
// child results flow to the parent when a frame closes.
func (h *hdp) trial(root *Node) error {
	c := h.c

	opened, _, err := h.enter(root)
	if err != nil || !opened {
		return err
	}

	frames := []hdpFrame{{n: root, a: c.maxUBAction(root)}}
	for len(frames) > 0 {
		f := &frames[len(frames)-1]
		qa := f.n.Q(f.a)

		// Walk remaining outcomes of the greedy action in ascending id.
		descended := false
		for f.next < qa.NumOutcomes() {
			e := qa.Outcome(f.next)
			f.next++
			if e == nil {
				continue
			}
			child := e.next

			if child.idx == idxInfinity {
				opened, childDirty, err := h.enter(child)
				if err != nil {
					return err
				}
				if opened {
					frames = append(frames, hdpFrame{n: child, a: c.maxUBAction(child)})
					descended = true
					break
				}
				if childDirty {
					f.dirty = true
				}
				if child.low < f.n.low {
					f.n.low = child.low
				}
			} else if h.nodeStack.contains(child) {
				if child.low < f.n.low {
					f.n.low = child.low
				}
			}
		}
		if descended {
			continue
		}

		// All outcomes examined: close this frame.
		frames = frames[:len(frames)-1]

		frameDirty := f.dirty
		if frameDirty {
			if err := c.update(f.n); err != nil {
				return err
			}
		} else if f.n.idx == f.n.low {
			// f.n roots an ε-converged SCC: label everything above it on
			// the Tarjan stack, f.n included.
			for {
				sn := h.nodeStack.pop()
				sn.isSolved = true
				if sn == f.n {
					break
				}
			}
		}

		if len(frames) > 0 {
			p := &frames[len(frames)-1]
			if frameDirty {
				p.dirty = true
			}
			if f.n.low < p.n.low {
				p.n.low = f.n.low
			}
		}
	}

	return nil
}

// markedStack is a node stack with O(1) membership, as Tarjan requires.
type markedStack struct {
	items  []*Node
	member map[*Node]bool
}

func (s *markedStack) push(n *Node) {
	if s.member == nil {
		s.member = make(map[*Node]bool)
	}
	s.items = append(s.items, n)
	s.member[n] = true
}

func (s *markedStack) pop() *Node {
	n := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	delete(s.member, n)

	return n
}

func (s *markedStack) contains(n *Node) bool { return s.member[n] }

func (s *markedStack) clear() {
	s.items = s.items[:0]
	for n := range s.member {
		delete(s.member, n)
	}
}
