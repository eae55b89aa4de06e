package bounds

import (
	"github.com/ktushar14/zmdp/core"
	"github.com/ktushar14/zmdp/search"
)

// PointBounds is the scalar value representation for MDPs: one
// admissible lower and one admissible upper estimator, consulted when
// the search graph interns a new node. Backups are purely per-node, so
// UpdateNode has nothing to fold in.
type PointBounds struct {
	lower core.AbstractBound
	upper core.AbstractBound
}

// assert the search facade contract at compile time.
var _ search.ValueBounds = (*PointBounds)(nil)

// NewPointBounds wraps the two estimators. Both are required; the usual
// wiring is NewPointBounds(problem.NewLowerBound(), problem.NewUpperBound()),
// with a domain-specific informed bound substituted for the upper when
// a heuristic is in play.
func NewPointBounds(lower, upper core.AbstractBound) (*PointBounds, error) {
	if lower == nil || upper == nil {
		return nil, ErrNilBound
	}

	return &PointBounds{lower: lower, upper: upper}, nil
}

// Initialize forwards the target precision to both estimators.
func (p *PointBounds) Initialize(targetPrecision float64) error {
	if err := p.lower.Initialize(targetPrecision); err != nil {
		return err
	}

	return p.upper.Initialize(targetPrecision)
}

// InitialValues returns the seed interval [lower(s), upper(s)].
func (p *PointBounds) InitialValues(s core.State) (core.ValueInterval, error) {
	return core.ValueInterval{
		Lower: p.lower.Value(s),
		Upper: p.upper.Value(s),
	}, nil
}

// TracksLowerBound reports true: point bounds always carry both
// directions (whether the strategy backs the lower one up is its call).
func (p *PointBounds) TracksLowerBound() bool { return true }

// UpdateNode is a no-op: scalar bounds have no shared structure.
func (p *PointBounds) UpdateNode(*search.Node) error { return nil }

// ValueAt returns the seed interval at s, independent of any node state.
func (p *PointBounds) ValueAt(s core.State) core.ValueInterval {
	return core.ValueInterval{Lower: p.lower.Value(s), Upper: p.upper.Value(s)}
}
