package property

import (
	"fmt"
	"math"

	"github.com/xeekworx/planetgen/internal/core/random"
)

// ResolveFloat derives a float value from the seed pair and the property's
// range. When AsInteger is set, the uniform draw happens first and the
// result is truncated toward zero afterwards, so integer properties stay
// uniformly distributed over the range.
func ResolveFloat(seed Seed, p *Property) float64 {
	v := random.Float(seed.Effective(p), p.Float.Min, p.Float.Max)
	if p.Float.ClampUnit {
		v = clampUnit(v)
	}
	if p.Float.AsInteger {
		v = math.Trunc(v)
	}
	return v
}

// ResolveColor derives a color by drawing each HSB channel independently
// within base ± range/2, clamped to [0, 1]. The three draws come from one
// stream seeded by the property's effective seed, so they are independent
// of each other but jointly reproducible.
func ResolveColor(seed Seed, p *Property) Color {
	base := p.Color.Base.ToHSB()
	s := random.NewStream(seed.Effective(p))

	channel := func(center, spread float64) float64 {
		half := spread / 2
		return clampUnit(s.Float(center-half, center+half))
	}

	out := HSB{
		H: channel(base.H, p.Color.HueRange),
		S: channel(base.S, p.Color.SaturationRange),
		B: channel(base.B, p.Color.BrightnessRange),
	}
	return out.ToColor(p.Color.Base.A)
}

// ResolveMaterial derives a candidate index by drawing a uniform position in
// the property's selection list and mapping it back to the candidate space.
func ResolveMaterial(seed Seed, p *Property) (int, error) {
	list, err := SelectionList(p.Material.CandidateCount, p.Material.Mask)
	if err != nil {
		return 0, fmt.Errorf("property %q: %w", p.Key, err)
	}
	pos := random.Index(seed.Effective(p), len(list))
	return list[pos], nil
}

// SelectionList expands a candidate count and mask into the ordered list of
// selectable candidate indices. The mask encoding:
//
//	mask == -1  every candidate is selectable
//	mask  >  0  candidate i is selectable when bit i of mask is set
//	mask < -1   candidate i is selectable unless bit i of (-mask - 1) is set
//	mask ==  0  nothing is selectable, which is a configuration error
func SelectionList(count int, mask int64) ([]int, error) {
	if count <= 0 {
		return nil, ErrNoCandidates
	}
	list := make([]int, 0, count)
	switch {
	case mask == -1:
		for i := 0; i < count; i++ {
			list = append(list, i)
		}
	case mask > 0:
		for i := 0; i < count && i < 63; i++ {
			if mask&(1<<i) != 0 {
				list = append(list, i)
			}
		}
	case mask < -1:
		excluded := -mask - 1
		for i := 0; i < count; i++ {
			if i < 63 && excluded&(1<<i) != 0 {
				continue
			}
			list = append(list, i)
		}
	}
	if len(list) == 0 {
		return nil, ErrEmptySelection
	}
	return list, nil
}
