package bounds

import (
	"fmt"

	"github.com/ktushar14/zmdp/core"
	"github.com/ktushar14/zmdp/search"
)

// sawtoothSlack guards insertions and pruning against floating-point
// chatter: a vector or point must improve the set by more than this to
// be kept.
const sawtoothSlack = 1e-12

// supportPoint is one (belief, value) pair of the sawtooth upper bound.
type supportPoint struct {
	belief []float64
	value  float64
}

// ConvexBounds is the belief-MDP value representation:
//
//   - lower bound: a set of alpha vectors. Each vector is admissible
//     everywhere, so max_α α·b is an admissible lower bound at every
//     belief — values generalize across the simplex for free.
//   - upper bound: a sawtooth — per-corner values v(e_s) plus support
//     points (b, v); the value at any belief is the minimum over convex
//     interpolations through one support point and the corners.
//
// The scalar contract the engine sees is identical to PointBounds; the
// vector insertions ride UpdateNode, which the engine calls after every
// scalar backup. Both sets are pruned of dominated members every
// prunePeriod insertions.
type ConvexBounds struct {
	problem ConvexSeeder

	alphas  [][]float64
	corners []float64
	points  []supportPoint

	prunePeriod int
	inserts     int
	initialized bool
}

var _ search.ValueBounds = (*ConvexBounds)(nil)

// ConvexOption configures a ConvexBounds.
type ConvexOption func(*ConvexBounds)

// WithPrunePeriod sets how many insertions pass between pruning sweeps
// of the alpha-vector and support-point sets. Must be positive.
func WithPrunePeriod(period int) ConvexOption {
	return func(c *ConvexBounds) {
		if period <= 0 {
			panic("bounds: prune period must be positive")
		}
		c.prunePeriod = period
	}
}

// NewConvexBounds builds the facade over a belief-MDP that can seed and
// back up its vector sets.
func NewConvexBounds(problem ConvexSeeder, opts ...ConvexOption) *ConvexBounds {
	c := &ConvexBounds{
		problem:     problem,
		prunePeriod: 100,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Initialize seeds the alpha set with the problem's blind-policy vector
// and the sawtooth corners with its relaxation values.
func (c *ConvexBounds) Initialize(targetPrecision float64) error {
	alpha, err := c.problem.SeedAlphaVector(targetPrecision)
	if err != nil {
		return fmt.Errorf("bounds: seeding alpha vector: %w", err)
	}
	corners, err := c.problem.SeedCornerValues(targetPrecision)
	if err != nil {
		return fmt.Errorf("bounds: seeding corner values: %w", err)
	}
	if len(alpha) != c.problem.NumStates() || len(corners) != c.problem.NumStates() {
		return fmt.Errorf("%w: seeds have lengths %d/%d, problem has %d states",
			ErrDimension, len(alpha), len(corners), c.problem.NumStates())
	}

	c.alphas = [][]float64{alpha}
	c.corners = corners
	c.points = nil
	c.initialized = true

	return nil
}

// InitialValues returns the sawtooth/alpha interval at the belief of s.
func (c *ConvexBounds) InitialValues(s core.State) (core.ValueInterval, error) {
	b, err := c.beliefOf(s)
	if err != nil {
		return core.ValueInterval{}, err
	}

	return core.ValueInterval{
		Lower: c.lowerValue(b),
		Upper: c.upperValue(b),
	}, nil
}

// TracksLowerBound reports true: the alpha set is always maintained.
func (c *ConvexBounds) TracksLowerBound() bool { return true }

// UpdateNode folds a freshly backed-up node into both vector sets: the
// node's upper value becomes a sawtooth support point, and the problem's
// point-based backup at the node's belief contributes an alpha vector.
// Insertions that do not tighten the sets are dropped.
func (c *ConvexBounds) UpdateNode(n *search.Node) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	belief, ok := n.State().(core.Belief)
	if !ok {
		return fmt.Errorf("%w: state %q", ErrNotBelief, n.State().Key())
	}
	b := belief.Vector()
	if len(b) != len(c.corners) {
		return fmt.Errorf("%w: belief has %d entries, problem has %d states",
			ErrDimension, len(b), len(c.corners))
	}
	iv := n.Bounds()

	// Sawtooth support point: keep only if it cuts below the current
	// interpolation at its own belief.
	if iv.Upper < c.upperValue(b)-sawtoothSlack {
		c.points = append(c.points, supportPoint{
			belief: append([]float64(nil), b...),
			value:  iv.Upper,
		})
		c.inserts++
	}

	// Alpha vector from the point-based backup at this belief.
	alpha, err := c.problem.BackupAlphaVector(belief, c.alphas)
	if err != nil {
		return fmt.Errorf("bounds: alpha backup at %q: %w", n.State().Key(), err)
	}
	if len(alpha) != len(c.corners) {
		return fmt.Errorf("%w: backed-up alpha has %d entries", ErrDimension, len(alpha))
	}
	if dot(alpha, b) > c.lowerValue(b)+sawtoothSlack {
		c.alphas = append(c.alphas, alpha)
		c.inserts++
	}

	if c.inserts >= c.prunePeriod {
		c.prune()
		c.inserts = 0
	}

	return nil
}

// ValueAt returns the current interval at s from the vector sets.
func (c *ConvexBounds) ValueAt(s core.State) (core.ValueInterval, error) {
	return c.InitialValues(s)
}

// NumAlphaVectors returns the current size of the lower-bound set.
func (c *ConvexBounds) NumAlphaVectors() int { return len(c.alphas) }

// NumSupportPoints returns the current size of the sawtooth point set.
func (c *ConvexBounds) NumSupportPoints() int { return len(c.points) }

func (c *ConvexBounds) beliefOf(s core.State) ([]float64, error) {
	if !c.initialized {
		return nil, ErrNotInitialized
	}
	belief, ok := s.(core.Belief)
	if !ok {
		return nil, fmt.Errorf("%w: state %q", ErrNotBelief, s.Key())
	}
	b := belief.Vector()
	if len(b) != len(c.corners) {
		return nil, fmt.Errorf("%w: belief has %d entries, problem has %d states",
			ErrDimension, len(b), len(c.corners))
	}

	return b, nil
}

// lowerValue is max_α α·b over the alpha set.
func (c *ConvexBounds) lowerValue(b []float64) float64 {
	best := dot(c.alphas[0], b)
	for _, alpha := range c.alphas[1:] {
		if v := dot(alpha, b); v > best {
			best = v
		}
	}

	return best
}

// upperValue is the sawtooth interpolation: start from the corner mix
// Σ b_s·v(e_s), then lower it through every support point that cuts
// below its own corner mix, scaled by the largest multiple of the
// point's belief that fits inside b.
func (c *ConvexBounds) upperValue(b []float64) float64 {
	base := dot(b, c.corners)

	best := base
	for i := range c.points {
		p := &c.points[i]
		cornerMix := dot(p.belief, c.corners)
		if p.value >= cornerMix-sawtoothSlack {
			continue // point sits on or above the corner plane: no cut
		}

		// ratio = min over s with p.belief[s] > 0 of b[s]/p.belief[s].
		ratio := 1.0
		first := true
		for s, ps := range p.belief {
			if ps <= 0 {
				continue
			}
			r := b[s] / ps
			if first || r < ratio {
				ratio = r
				first = false
			}
		}
		if first {
			continue
		}

		if v := base + ratio*(p.value-cornerMix); v < best {
			best = v
		}
	}

	return best
}

// prune drops pointwise-dominated alpha vectors and support points that
// no longer bind anywhere (their own belief is already covered at least
// as tightly by the rest of the sawtooth).
func (c *ConvexBounds) prune() {
	// Alpha vectors: pairwise pointwise dominance; among equals the
	// first survives.
	src := c.alphas
	kept := make([][]float64, 0, len(src))
	for i, a := range src {
		dominated := false
		for j, other := range src {
			if i == j {
				continue
			}
			if !pointwiseDominates(other, a) {
				continue
			}
			if !pointwiseDominates(a, other) || j < i {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, a)
		}
	}
	c.alphas = kept

	// Support points: evaluate each against the sawtooth formed by the
	// others; a point that is not strictly below it is dead weight.
	keptPoints := make([]supportPoint, 0, len(c.points))
	for i := range c.points {
		p := c.points[i]
		saved := c.points
		c.points = append(append([]supportPoint(nil), saved[:i]...), saved[i+1:]...)
		binds := p.value < c.upperValue(p.belief)-sawtoothSlack
		c.points = saved
		if binds {
			keptPoints = append(keptPoints, p)
		}
	}
	c.points = keptPoints
}

// pointwiseDominates reports whether x ≥ y componentwise.
func pointwiseDominates(x, y []float64) bool {
	for i := range x {
		if x[i] < y[i]-sawtoothSlack {
			return false
		}
	}

	return true
}
