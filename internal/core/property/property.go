package property

// Kind discriminates the payload of a Property. Behavior differences between
// the three kinds are handled by switching on Kind, never by dispatch.
type Kind uint8

const (
	KindFloat Kind = iota
	KindColor
	KindMaterial
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindColor:
		return "color"
	case KindMaterial:
		return "material"
	default:
		return "unknown"
	}
}

// Seed is the pair of integers a generated object carries. Primary feeds
// every property; Variation is layered additively on top for properties
// flagged as variation-sensitive.
type Seed struct {
	Primary   int64
	Variation int64
}

// Effective computes the seed a property derives from.
func (s Seed) Effective(p *Property) int64 {
	seed := s.Primary + p.SeedOffset
	if p.Variation {
		seed += s.Variation
	}
	return seed
}

// Property is one resolvable parameter of a generated object. Exactly one of
// the payload structs is meaningful, selected by Kind; the others stay at
// their zero value.
type Property struct {
	Key        string
	Kind       Kind
	SeedOffset int64
	Variation  bool
	Overridden bool

	// Drives names the generation-resource purpose this property feeds.
	// Empty means the property does not trigger regeneration.
	Drives string

	Float    FloatState
	Color    ColorState
	Material MaterialState
}

// FloatState is the payload of a KindFloat property.
type FloatState struct {
	Min, Max  float64
	Value     float64
	ClampUnit bool
	AsInteger bool
}

// ColorState is the payload of a KindColor property. Ranges are the total
// spread around the base channel, in HSB space.
type ColorState struct {
	Base            Color
	HueRange        float64
	SaturationRange float64
	BrightnessRange float64
	Value           Color
}

// MaterialState is the payload of a KindMaterial property. Index addresses
// a fixed ordered candidate list owned by the host configuration.
type MaterialState struct {
	CandidateCount int
	Mask           int64
	Index          int
}
