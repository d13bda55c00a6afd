package property

import (
	"fmt"

	"github.com/xeekworx/planetgen/pkg/ordered"
)

// ChangeFunc observes resolved-value changes on properties that drive an
// external generation resource. It receives the property after the new
// value is stored.
type ChangeFunc func(p *Property)

// Table owns every declared property of one generated object, keyed by name
// and iterable in declaration order. It enforces the override contract: the
// seed path (Set*) always clears the override flag, the manual path
// (Override*) always sets it and stores the value verbatim.
type Table struct {
	props    *ordered.Map[string, *Property]
	onChange ChangeFunc
}

func NewTable() *Table {
	return &Table{
		props: ordered.NewMap[string, *Property](),
	}
}

// OnChange registers the observer called whenever a property tagged with
// Drives changes value. At most one observer is held.
func (t *Table) OnChange(fn ChangeFunc) {
	t.onChange = fn
}

// AddFloat declares a float property from a blueprint template.
func (t *Table) AddFloat(key string, tpl FloatTemplate) (*Property, error) {
	p := &Property{
		Key:        key,
		Kind:       KindFloat,
		SeedOffset: resolveOffset(key, tpl.SeedOffset),
		Variation:  tpl.Variation,
		Drives:     tpl.Drives,
		Float: FloatState{
			Min:       tpl.Min,
			Max:       tpl.Max,
			ClampUnit: tpl.ClampUnit,
			AsInteger: tpl.AsInteger,
		},
	}
	return p, t.add(p)
}

// AddColor declares a color property from a blueprint template.
func (t *Table) AddColor(key string, tpl ColorTemplate) (*Property, error) {
	p := &Property{
		Key:        key,
		Kind:       KindColor,
		SeedOffset: resolveOffset(key, tpl.SeedOffset),
		Variation:  tpl.Variation,
		Drives:     tpl.Drives,
		Color: ColorState{
			Base:            tpl.Base,
			HueRange:        tpl.HueRange,
			SaturationRange: tpl.SaturationRange,
			BrightnessRange: tpl.BrightnessRange,
			Value:           tpl.Base,
		},
	}
	return p, t.add(p)
}

// AddMaterial declares a categorical property. candidateCount is the length
// of the host-registered candidate list the template's mask selects from.
func (t *Table) AddMaterial(key string, tpl MaterialTemplate, candidateCount int) (*Property, error) {
	p := &Property{
		Key:        key,
		Kind:       KindMaterial,
		SeedOffset: resolveOffset(key, tpl.SeedOffset),
		Drives:     tpl.Drives,
		Material: MaterialState{
			CandidateCount: candidateCount,
			Mask:           tpl.Mask,
		},
	}
	return p, t.add(p)
}

func (t *Table) add(p *Property) error {
	if t.props.Has(p.Key) {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, p.Key)
	}
	t.props.Set(p.Key, p)
	return nil
}

// Get returns the property declared under key.
func (t *Table) Get(key string) (*Property, bool) {
	return t.props.Get(key)
}

// Len returns the number of declared properties.
func (t *Table) Len() int {
	return t.props.Len()
}

// Keys returns property keys in declaration order.
func (t *Table) Keys() []string {
	return t.props.Keys()
}

// Each calls fn for every property in declaration order until fn returns
// false.
func (t *Table) Each(fn func(p *Property) bool) {
	for _, p := range t.props.Iter() {
		if !fn(p) {
			return
		}
	}
}

func (t *Table) lookup(key string, kind Kind) (*Property, error) {
	p, ok := t.props.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if p.Kind != kind {
		return nil, fmt.Errorf("%w: %s is %s, not %s", ErrKindMismatch, key, p.Kind, kind)
	}
	return p, nil
}

// SetFloat resolves key from the seed path, clearing any override.
func (t *Table) SetFloat(seed Seed, key string) error {
	p, err := t.lookup(key, KindFloat)
	if err != nil {
		return err
	}
	t.storeFloat(p, ResolveFloat(seed, p), false)
	return nil
}

// OverrideFloat stores value verbatim and marks key overridden.
func (t *Table) OverrideFloat(key string, value float64) error {
	p, err := t.lookup(key, KindFloat)
	if err != nil {
		return err
	}
	t.storeFloat(p, value, true)
	return nil
}

// SetColor resolves key from the seed path, clearing any override.
func (t *Table) SetColor(seed Seed, key string) error {
	p, err := t.lookup(key, KindColor)
	if err != nil {
		return err
	}
	t.storeColor(p, ResolveColor(seed, p), false)
	return nil
}

// OverrideColor stores value verbatim and marks key overridden.
func (t *Table) OverrideColor(key string, value Color) error {
	p, err := t.lookup(key, KindColor)
	if err != nil {
		return err
	}
	t.storeColor(p, value, true)
	return nil
}

// SetMaterial resolves key from the seed path, clearing any override.
func (t *Table) SetMaterial(seed Seed, key string) error {
	p, err := t.lookup(key, KindMaterial)
	if err != nil {
		return err
	}
	idx, err := ResolveMaterial(seed, p)
	if err != nil {
		return err
	}
	t.storeMaterial(p, idx, false)
	return nil
}

// OverrideMaterial stores index verbatim and marks key overridden. The index
// must address the candidate list, though it may be outside the mask's
// selection: overrides win over constraints.
func (t *Table) OverrideMaterial(key string, index int) error {
	p, err := t.lookup(key, KindMaterial)
	if err != nil {
		return err
	}
	if index < 0 || index >= p.Material.CandidateCount {
		return fmt.Errorf("%w: %s index %d of %d", ErrIndexOutOfRange, key, index, p.Material.CandidateCount)
	}
	t.storeMaterial(p, index, true)
	return nil
}

// SetDefaults runs the seed path over every property. Overridden properties
// are skipped unless force is set, in which case every override is cleared
// and rederived.
func (t *Table) SetDefaults(seed Seed, force bool) error {
	for key, p := range t.props.Iter() {
		if p.Overridden && !force {
			continue
		}
		var err error
		switch p.Kind {
		case KindFloat:
			err = t.SetFloat(seed, key)
		case KindColor:
			err = t.SetColor(seed, key)
		case KindMaterial:
			err = t.SetMaterial(seed, key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) storeFloat(p *Property, value float64, overridden bool) {
	changed := p.Float.Value != value
	p.Float.Value = value
	p.Overridden = overridden
	t.notify(p, changed)
}

func (t *Table) storeColor(p *Property, value Color, overridden bool) {
	changed := p.Color.Value != value
	p.Color.Value = value
	p.Overridden = overridden
	t.notify(p, changed)
}

func (t *Table) storeMaterial(p *Property, index int, overridden bool) {
	changed := p.Material.Index != index
	p.Material.Index = index
	p.Overridden = overridden
	t.notify(p, changed)
}

func (t *Table) notify(p *Property, changed bool) {
	if changed && p.Drives != "" && t.onChange != nil {
		t.onChange(p)
	}
}
