// Package bounds types: sentinel errors and the seeding contract the
// convex representation needs from a belief-MDP.
package bounds

import (
	"errors"

	"github.com/ktushar14/zmdp/core"
)

// Sentinel errors for the bounds facades.
var (
	// ErrNilBound indicates PointBounds was constructed without both a
	// lower and an upper estimator.
	ErrNilBound = errors.New("bounds: lower and upper bound estimators are required")

	// ErrNotBelief indicates ConvexBounds met a state that does not
	// expose a belief vector.
	ErrNotBelief = errors.New("bounds: state does not carry a belief vector")

	// ErrDimension indicates a belief vector whose length disagrees with
	// the problem's underlying state count.
	ErrDimension = errors.New("bounds: belief vector length mismatch")

	// ErrNotInitialized indicates ConvexBounds was queried or updated
	// before Initialize.
	ErrNotInitialized = errors.New("bounds: facade has not been initialized")
)

// ConvexSeeder is the contract ConvexBounds requires beyond
// core.BeliefProblem: the domain owns the transition/observation
// structure, so it supplies the per-underlying-state seed values and
// performs the point-based alpha-vector backup; the facade owns the
// vector sets and all scalar queries.
type ConvexSeeder interface {
	core.BeliefProblem

	// SeedAlphaVector returns one admissible lower-bound value per
	// underlying state (e.g. the blind-policy fixed point), the initial
	// alpha vector.
	SeedAlphaVector(targetPrecision float64) ([]float64, error)

	// SeedCornerValues returns one admissible upper-bound value per
	// underlying state (e.g. the MDP relaxation), the sawtooth corners.
	SeedCornerValues(targetPrecision float64) ([]float64, error)

	// BackupAlphaVector performs a point-based backup of the given alpha
	// set at belief b and returns the resulting vector. The result must
	// be an admissible lower bound everywhere (each returned component is
	// a value achievable by some policy from the matching corner).
	BackupAlphaVector(b core.Belief, alphas [][]float64) ([]float64, error)
}

// dot returns the inner product of equal-length vectors.
func dot(x, y []float64) float64 {
	var sum float64
	for i := range x {
		sum += x[i] * y[i]
	}

	return sum
}
