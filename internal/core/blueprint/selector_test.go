package blueprint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func weightedRegistry(t *testing.T, weights map[string]float64, order []string) *Registry {
	t.Helper()
	reg := NewRegistry(nil)
	for _, name := range order {
		bp, err := New(Definition{Name: name, Weight: weights[name]})
		require.NoError(t, err)
		require.NoError(t, reg.Register(bp))
	}
	return reg
}

func TestPickValueIntervals(t *testing.T) {
	// Normalized intervals: a [0, 0.25), b [0.25, 0.75), c [0.75, 1).
	reg := weightedRegistry(t,
		map[string]float64{"a": 1, "b": 2, "c": 1},
		[]string{"a", "b", "c"})

	cases := []struct {
		r    float64
		want string
	}{
		{0.0, "a"},
		{0.24, "a"},
		{0.25, "b"},
		{0.5, "b"},
		{0.74, "b"},
		{0.75, "c"},
		{0.999, "c"},
	}
	for _, tc := range cases {
		bp, err := PickValue(reg, tc.r)
		require.NoError(t, err)
		require.Equal(t, tc.want, bp.Name(), "r=%v", tc.r)
	}
}

func TestPickValueSkipsZeroWeight(t *testing.T) {
	reg := weightedRegistry(t,
		map[string]float64{"never": 0, "always": 1},
		[]string{"never", "always"})

	for _, r := range []float64{0, 0.3, 0.7, 0.999} {
		bp, err := PickValue(reg, r)
		require.NoError(t, err)
		require.Equal(t, "always", bp.Name())
	}
}

func TestFallbackSkipsTrailingZeroWeight(t *testing.T) {
	// When accumulation error leaves r past every interval boundary, the
	// settle-on-last fallback must land on a weighted blueprint, not a
	// zero-weight entry that happens to be registered last.
	reg := weightedRegistry(t,
		map[string]float64{"a": 1, "b": 2, "never": 0},
		[]string{"a", "b", "never"})

	require.Equal(t, "b", lastWeighted(reg.All()).Name())

	for r := 0.0; r <= 1.0; r += 1.0 / 4096 {
		bp, err := PickValue(reg, r)
		require.NoError(t, err)
		require.NotEqual(t, "never", bp.Name(), "r=%v", r)
	}
	bp, err := PickValue(reg, 1) // clamped just under the final boundary
	require.NoError(t, err)
	require.NotEqual(t, "never", bp.Name())
}

func TestPickValueErrors(t *testing.T) {
	_, err := PickValue(NewRegistry(nil), 0.5)
	require.ErrorIs(t, err, ErrNoBlueprints)

	reg := weightedRegistry(t,
		map[string]float64{"a": 0, "b": 0},
		[]string{"a", "b"})
	_, err = PickValue(reg, 0.5)
	require.ErrorIs(t, err, ErrZeroWeights)
}

func TestPickForcedName(t *testing.T) {
	reg := weightedRegistry(t,
		map[string]float64{"a": 1, "b": 1},
		[]string{"a", "b"})

	bp, err := Pick(reg, 0, "b")
	require.NoError(t, err)
	require.Equal(t, "b", bp.Name())

	_, err = Pick(reg, 0, "missing")
	require.ErrorIs(t, err, ErrUnknownBlueprint)
}

func TestPickSeededDeterminism(t *testing.T) {
	reg := weightedRegistry(t,
		map[string]float64{"a": 1, "b": 1, "c": 1},
		[]string{"a", "b", "c"})

	first, err := Pick(reg, 77, "")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		bp, err := Pick(reg, 77, "")
		require.NoError(t, err)
		require.Equal(t, first.Name(), bp.Name())
	}
}

func TestPickRenormalizesAfterWeightChange(t *testing.T) {
	reg := weightedRegistry(t,
		map[string]float64{"a": 1, "b": 1},
		[]string{"a", "b"})

	// r = 0.6 lands in b's half.
	bp, err := PickValue(reg, 0.6)
	require.NoError(t, err)
	require.Equal(t, "b", bp.Name())

	// Re-weighting a to dominate moves the same r into a's interval.
	require.NoError(t, reg.Replace(Definition{Name: "a", Weight: 10}))
	bp, err = PickValue(reg, 0.6)
	require.NoError(t, err)
	require.Equal(t, "a", bp.Name())
}
