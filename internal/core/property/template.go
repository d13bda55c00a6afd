package property

import "github.com/cespare/xxhash/v2"

// offsetMask keeps derived seed offsets small enough that summing them with
// a caller seed never overflows int64 in practice.
const offsetMask = 0xFFFFF

// KeyOffset derives a stable seed offset from a property key name. It is a
// pure function of the key, so objects built in different processes agree on
// the offset without any shared registry.
func KeyOffset(key string) int64 {
	return int64(xxhash.Sum64String(key) & offsetMask)
}

// FloatTemplate is the blueprint-side range a float property combines with a
// seed. A nil SeedOffset falls back to KeyOffset of the property key.
type FloatTemplate struct {
	Min        float64 `json:"min" yaml:"min"`
	Max        float64 `json:"max" yaml:"max"`
	SeedOffset *int64  `json:"seedOffset,omitempty" yaml:"seedOffset,omitempty"`
	Variation  bool    `json:"variation,omitempty" yaml:"variation,omitempty"`
	ClampUnit  bool    `json:"clampUnit,omitempty" yaml:"clampUnit,omitempty"`
	AsInteger  bool    `json:"asInteger,omitempty" yaml:"asInteger,omitempty"`
	Drives     string  `json:"drives,omitempty" yaml:"drives,omitempty"`
}

// ColorTemplate is the blueprint-side constraint for a color property:
// a base color plus a total spread per HSB channel.
type ColorTemplate struct {
	Base            Color   `json:"base" yaml:"base"`
	HueRange        float64 `json:"hueRange" yaml:"hueRange"`
	SaturationRange float64 `json:"saturationRange" yaml:"saturationRange"`
	BrightnessRange float64 `json:"brightnessRange" yaml:"brightnessRange"`
	SeedOffset      *int64  `json:"seedOffset,omitempty" yaml:"seedOffset,omitempty"`
	Variation       bool    `json:"variation,omitempty" yaml:"variation,omitempty"`
	Drives          string  `json:"drives,omitempty" yaml:"drives,omitempty"`
}

// MaterialTemplate is the blueprint-side constraint for a categorical
// property. List names a host-registered candidate list; Mask selects a
// subset of it (see SelectionList for the encoding).
type MaterialTemplate struct {
	List       string `json:"list" yaml:"list"`
	Mask       int64  `json:"mask" yaml:"mask"`
	SeedOffset *int64 `json:"seedOffset,omitempty" yaml:"seedOffset,omitempty"`
	Drives     string `json:"drives,omitempty" yaml:"drives,omitempty"`
}

func resolveOffset(key string, explicit *int64) int64 {
	if explicit != nil {
		return *explicit
	}
	return KeyOffset(key)
}
