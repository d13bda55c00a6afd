package blueprint

import (
	"fmt"

	"github.com/xeekworx/planetgen/internal/core/random"
)

// pickSalt separates the category draw from every property draw that shares
// the same primary seed.
const pickSalt int64 = 7477

// Pick selects a blueprint from the registry. A non-empty name forces that
// blueprint directly; otherwise the primary seed drives one weighted draw
// over the catalog as it exists right now, so weight changes apply to every
// later pick.
func Pick(reg *Registry, seed int64, name string) (*Blueprint, error) {
	if name != "" {
		return reg.Get(name)
	}
	return PickValue(reg, random.Unit(seed+pickSalt))
}

// PickValue selects by an already-drawn uniform value r in [0, 1).
// Probability weights are normalized into contiguous intervals in
// registration order; the blueprint whose interval contains r wins.
func PickValue(reg *Registry, r float64) (*Blueprint, error) {
	all := reg.All()
	if len(all) == 0 {
		return nil, ErrNoBlueprints
	}

	var total float64
	for _, bp := range all {
		total += bp.Weight()
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: %d blueprints", ErrZeroWeights, len(all))
	}

	if r < 0 {
		r = 0
	}
	if r >= 1 {
		r = 1 - 1e-12
	}

	cumulative := 0.0
	for _, bp := range all {
		cumulative += bp.Weight() / total
		if r < cumulative {
			return bp, nil
		}
	}
	// Floating accumulation can land r a hair past the final boundary. The
	// owner of that boundary is the last blueprint with actual weight; a
	// trailing zero-weight entry has an empty interval and must never win.
	return lastWeighted(all), nil
}

func lastWeighted(all []*Blueprint) *Blueprint {
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Weight() > 0 {
			return all[i]
		}
	}
	return all[len(all)-1]
}
