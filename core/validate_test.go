// File: core/validate_test.go
package core_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ktushar14/zmdp/core"
)

// key is a trivial state handle for validation tests.
type key string

func (k key) Key() string { return string(k) }

// TestValidateDiscount verifies the legal range (0, 1].
func TestValidateDiscount(t *testing.T) {
	require.NoError(t, core.ValidateDiscount(0.95))
	require.NoError(t, core.ValidateDiscount(1))
	require.ErrorIs(t, core.ValidateDiscount(0), core.ErrBadDiscount)
	require.ErrorIs(t, core.ValidateDiscount(-0.5), core.ErrBadDiscount)
	require.ErrorIs(t, core.ValidateDiscount(1.01), core.ErrBadDiscount)
	require.ErrorIs(t, core.ValidateDiscount(math.NaN()), core.ErrBadDiscount)
}

// TestValidateOutcomes_Accepts verifies well-formed bundles, including
// sparse ones whose omitted slots carry zero probability.
func TestValidateOutcomes_Accepts(t *testing.T) {
	ao := core.ActionOutcomes{
		ImmediateReward: -1,
		NumOutcomes:     3,
		Outcomes: []core.Outcome{
			{ID: 0, Prob: 0.25, Next: key("a")},
			{ID: 2, Prob: 0.75, Next: key("b")},
		},
	}
	require.NoError(t, core.ValidateOutcomes(ao))
}

// TestValidateOutcomes_Rejects enumerates each contract violation.
func TestValidateOutcomes_Rejects(t *testing.T) {
	cases := []struct {
		name string
		ao   core.ActionOutcomes
		err  error
	}{
		{
			"NaNReward",
			core.ActionOutcomes{ImmediateReward: math.NaN(), NumOutcomes: 1,
				Outcomes: []core.Outcome{{ID: 0, Prob: 1, Next: key("a")}}},
			core.ErrNaNReward,
		},
		{
			"MassShort",
			core.ActionOutcomes{NumOutcomes: 2,
				Outcomes: []core.Outcome{{ID: 0, Prob: 0.5, Next: key("a")}, {ID: 1, Prob: 0.4, Next: key("b")}}},
			core.ErrBadDistribution,
		},
		{
			"NegativeProb",
			core.ActionOutcomes{NumOutcomes: 2,
				Outcomes: []core.Outcome{{ID: 0, Prob: 1.5, Next: key("a")}, {ID: 1, Prob: -0.5, Next: key("b")}}},
			core.ErrBadDistribution,
		},
		{
			"IDOutOfRange",
			core.ActionOutcomes{NumOutcomes: 1,
				Outcomes: []core.Outcome{{ID: 1, Prob: 1, Next: key("a")}}},
			core.ErrBadDistribution,
		},
		{
			"DuplicateID",
			core.ActionOutcomes{NumOutcomes: 2,
				Outcomes: []core.Outcome{{ID: 0, Prob: 0.5, Next: key("a")}, {ID: 0, Prob: 0.5, Next: key("b")}}},
			core.ErrBadDistribution,
		},
		{
			"NilSuccessor",
			core.ActionOutcomes{NumOutcomes: 1,
				Outcomes: []core.Outcome{{ID: 0, Prob: 1, Next: nil}}},
			core.ErrBadDistribution,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, core.ValidateOutcomes(tc.ao), tc.err)
		})
	}
}

// TestValidateOutcomes_MassTolerance verifies the 1e-10 tolerance on
// probability mass.
func TestValidateOutcomes_MassTolerance(t *testing.T) {
	ao := core.ActionOutcomes{NumOutcomes: 1,
		Outcomes: []core.Outcome{{ID: 0, Prob: 1 + 5e-11, Next: key("a")}}}
	require.NoError(t, core.ValidateOutcomes(ao))

	ao.Outcomes[0].Prob = 1 + 5e-10
	require.ErrorIs(t, core.ValidateOutcomes(ao), core.ErrBadDistribution)
}

// TestValueInterval_Width exercises the width accessor.
func TestValueInterval_Width(t *testing.T) {
	iv := core.ValueInterval{Lower: -3, Upper: -1}
	require.Equal(t, 2.0, iv.Width())
}
