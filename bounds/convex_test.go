// File: bounds/convex_test.go
//
// White-box tests of the sawtooth interpolation, the alpha-vector max,
// and pruning. The full facade-through-engine path is covered in
// bounds_integration_test.go.
package bounds

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ktushar14/zmdp/core"
)

// testBelief is a minimal core.Belief for direct set manipulation.
type testBelief struct {
	v []float64
}

func (b testBelief) Key() string       { return fmt.Sprint(b.v) }
func (b testBelief) Vector() []float64 { return b.v }

// rigged builds a ConvexBounds with hand-set corner values and alpha
// vectors, bypassing Initialize.
func rigged(corners []float64, alphas [][]float64) *ConvexBounds {
	return &ConvexBounds{
		corners:     corners,
		alphas:      alphas,
		prunePeriod: 100,
		initialized: true,
	}
}

//----------------------------------------------------------------------------//
// Sawtooth upper bound
//----------------------------------------------------------------------------//

// TestUpperValue_CornersOnly verifies the bound is the corner mix when
// no support points exist.
func TestUpperValue_CornersOnly(t *testing.T) {
	c := rigged([]float64{0, -2}, [][]float64{{-10, -10}})

	require.InDelta(t, -1.0, c.upperValue([]float64{0.5, 0.5}), 1e-12)
	require.InDelta(t, 0.0, c.upperValue([]float64{1, 0}), 1e-12)
	require.InDelta(t, -2.0, c.upperValue([]float64{0, 1}), 1e-12)
}

// TestUpperValue_SupportPointCuts verifies interpolation through a
// support point lowers the bound at and around its belief.
func TestUpperValue_SupportPointCuts(t *testing.T) {
	c := rigged([]float64{0, -2}, [][]float64{{-10, -10}})
	c.points = append(c.points, supportPoint{belief: []float64{0.5, 0.5}, value: -3})

	// At the point itself: exactly its value.
	require.InDelta(t, -3.0, c.upperValue([]float64{0.5, 0.5}), 1e-12)

	// Part-way toward a corner: a partial cut. ratio = min(.25/.5, .75/.5)
	// = 0.5, so −1.5 + 0.5·(−3 − (−1)) = −2.5.
	require.InDelta(t, -2.5, c.upperValue([]float64{0.25, 0.75}), 1e-12)

	// At a corner the point has no leverage.
	require.InDelta(t, 0.0, c.upperValue([]float64{1, 0}), 1e-12)
}

// TestUpperValue_UselessPointIgnored verifies a point above its own
// corner mix never raises the bound.
func TestUpperValue_UselessPointIgnored(t *testing.T) {
	c := rigged([]float64{0, -2}, [][]float64{{-10, -10}})
	c.points = append(c.points, supportPoint{belief: []float64{0.5, 0.5}, value: 5})

	require.InDelta(t, -1.0, c.upperValue([]float64{0.5, 0.5}), 1e-12)
}

//----------------------------------------------------------------------------//
// Alpha-vector lower bound
//----------------------------------------------------------------------------//

// TestLowerValue_MaxOverVectors verifies the pointwise max across the
// alpha set.
func TestLowerValue_MaxOverVectors(t *testing.T) {
	c := rigged([]float64{0, 0}, [][]float64{{-4, 0}, {0, -4}})

	require.InDelta(t, -2.0, c.lowerValue([]float64{0.5, 0.5}), 1e-12)
	require.InDelta(t, 0.0, c.lowerValue([]float64{1, 0}), 1e-12)
	require.InDelta(t, 0.0, c.lowerValue([]float64{0, 1}), 1e-12)
	require.InDelta(t, -1.0, c.lowerValue([]float64{0.75, 0.25}), 1e-12)
}

//----------------------------------------------------------------------------//
// Pruning
//----------------------------------------------------------------------------//

// TestPrune_DropsDominatedAlpha verifies a pointwise-dominated vector
// is removed while incomparable vectors survive.
func TestPrune_DropsDominatedAlpha(t *testing.T) {
	c := rigged([]float64{0, 0}, [][]float64{
		{-4, 0},
		{-5, -1}, // dominated by {-4, 0}
		{0, -4},  // incomparable
	})

	c.prune()
	require.Len(t, c.alphas, 2)
	require.Contains(t, c.alphas, []float64{-4, 0})
	require.Contains(t, c.alphas, []float64{0, -4})
}

// TestPrune_DropsSlackSupportPoint verifies a point the rest of the
// sawtooth already covers is removed and a binding point is kept.
func TestPrune_DropsSlackSupportPoint(t *testing.T) {
	c := rigged([]float64{0, 0}, [][]float64{{-10, -10}})
	c.points = []supportPoint{
		{belief: []float64{0.5, 0.5}, value: -4},
		{belief: []float64{0.5, 0.5}, value: -1}, // covered by the −4 point
	}

	c.prune()
	require.Len(t, c.points, 1)
	require.Equal(t, -4.0, c.points[0].value)
}

//----------------------------------------------------------------------------//
// Guards
//----------------------------------------------------------------------------//

// TestInitialValues_Guards verifies the not-initialized, non-belief,
// and dimension errors.
func TestInitialValues_Guards(t *testing.T) {
	c := &ConvexBounds{prunePeriod: 100}
	_, err := c.InitialValues(testBelief{v: []float64{1, 0}})
	require.ErrorIs(t, err, ErrNotInitialized)

	c = rigged([]float64{0, 0}, [][]float64{{0, 0}})
	_, err = c.InitialValues(plainKey("x"))
	require.ErrorIs(t, err, ErrNotBelief)

	_, err = c.InitialValues(testBelief{v: []float64{1, 0, 0}})
	require.ErrorIs(t, err, ErrDimension)
}

// plainKey is a state without a belief vector.
type plainKey string

func (k plainKey) Key() string { return string(k) }

var _ core.State = plainKey("")
