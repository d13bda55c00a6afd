package blueprint

import (
	"fmt"

	"github.com/xeekworx/planetgen/internal/core/property"
	"github.com/xeekworx/planetgen/pkg/ordered"
)

// Blueprint is a named, immutable template: the value ranges every property
// of one object category combines with a seed, plus the weights that govern
// how often the category is picked and whether it carries a ring.
type Blueprint struct {
	name       string
	weight     float64
	ringWeight float64

	floats    *ordered.Map[string, property.FloatTemplate]
	colors    *ordered.Map[string, property.ColorTemplate]
	materials *ordered.Map[string, property.MaterialTemplate]
}

// Definition is the mutable form a Blueprint is built from. Entry slices
// keep declaration order, which fixes both property iteration order and the
// weighted-selection interval order.
type Definition struct {
	Name       string  `json:"name" yaml:"name"`
	Weight     float64 `json:"weight" yaml:"weight"`
	RingWeight float64 `json:"ringWeight,omitempty" yaml:"ringWeight,omitempty"`

	Floats    []FloatEntry    `json:"floats,omitempty" yaml:"floats,omitempty"`
	Colors    []ColorEntry    `json:"colors,omitempty" yaml:"colors,omitempty"`
	Materials []MaterialEntry `json:"materials,omitempty" yaml:"materials,omitempty"`
}

type FloatEntry struct {
	Key                    string `json:"key" yaml:"key"`
	property.FloatTemplate `yaml:",inline"`
}

type ColorEntry struct {
	Key                    string `json:"key" yaml:"key"`
	property.ColorTemplate `yaml:",inline"`
}

type MaterialEntry struct {
	Key                       string `json:"key" yaml:"key"`
	property.MaterialTemplate `yaml:",inline"`
}

// New validates a definition and freezes it into a Blueprint.
func New(def Definition) (*Blueprint, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("%w: blueprint name is empty", ErrInvalidConfig)
	}
	if def.Weight < 0 || def.RingWeight < 0 {
		return nil, fmt.Errorf("%w: %s has a negative weight", ErrInvalidConfig, def.Name)
	}

	bp := &Blueprint{
		name:       def.Name,
		weight:     def.Weight,
		ringWeight: def.RingWeight,
		floats:     ordered.NewMap[string, property.FloatTemplate](),
		colors:     ordered.NewMap[string, property.ColorTemplate](),
		materials:  ordered.NewMap[string, property.MaterialTemplate](),
	}

	for _, e := range def.Floats {
		if e.Key == "" {
			return nil, fmt.Errorf("%w: %s has a float entry without a key", ErrInvalidConfig, def.Name)
		}
		if e.Max < e.Min {
			return nil, fmt.Errorf("%w: %s.%s has max < min", ErrInvalidConfig, def.Name, e.Key)
		}
		if bp.hasKey(e.Key) {
			return nil, fmt.Errorf("%w: %s declares %s twice", ErrInvalidConfig, def.Name, e.Key)
		}
		bp.floats.Set(e.Key, e.FloatTemplate)
	}
	for _, e := range def.Colors {
		if e.Key == "" {
			return nil, fmt.Errorf("%w: %s has a color entry without a key", ErrInvalidConfig, def.Name)
		}
		if bp.hasKey(e.Key) {
			return nil, fmt.Errorf("%w: %s declares %s twice", ErrInvalidConfig, def.Name, e.Key)
		}
		bp.colors.Set(e.Key, e.ColorTemplate)
	}
	for _, e := range def.Materials {
		if e.Key == "" {
			return nil, fmt.Errorf("%w: %s has a material entry without a key", ErrInvalidConfig, def.Name)
		}
		if e.List == "" {
			return nil, fmt.Errorf("%w: %s.%s names no candidate list", ErrInvalidConfig, def.Name, e.Key)
		}
		if bp.hasKey(e.Key) {
			return nil, fmt.Errorf("%w: %s declares %s twice", ErrInvalidConfig, def.Name, e.Key)
		}
		bp.materials.Set(e.Key, e.MaterialTemplate)
	}
	return bp, nil
}

func (b *Blueprint) hasKey(key string) bool {
	return b.floats.Has(key) || b.colors.Has(key) || b.materials.Has(key)
}

func (b *Blueprint) Name() string        { return b.name }
func (b *Blueprint) Weight() float64     { return b.weight }
func (b *Blueprint) RingWeight() float64 { return b.ringWeight }

// FloatTemplate returns the range for a float key.
func (b *Blueprint) FloatTemplate(key string) (property.FloatTemplate, bool) {
	return b.floats.Get(key)
}

// ColorTemplate returns the constraint for a color key.
func (b *Blueprint) ColorTemplate(key string) (property.ColorTemplate, bool) {
	return b.colors.Get(key)
}

// MaterialTemplate returns the constraint for a material key.
func (b *Blueprint) MaterialTemplate(key string) (property.MaterialTemplate, bool) {
	return b.materials.Get(key)
}

// EachFloat visits float templates in declaration order.
func (b *Blueprint) EachFloat(fn func(key string, tpl property.FloatTemplate) bool) {
	for k, v := range b.floats.Iter() {
		if !fn(k, v) {
			return
		}
	}
}

// EachColor visits color templates in declaration order.
func (b *Blueprint) EachColor(fn func(key string, tpl property.ColorTemplate) bool) {
	for k, v := range b.colors.Iter() {
		if !fn(k, v) {
			return
		}
	}
}

// EachMaterial visits material templates in declaration order.
func (b *Blueprint) EachMaterial(fn func(key string, tpl property.MaterialTemplate) bool) {
	for k, v := range b.materials.Iter() {
		if !fn(k, v) {
			return
		}
	}
}

// PropertyCount returns how many properties the blueprint declares.
func (b *Blueprint) PropertyCount() int {
	return b.floats.Len() + b.colors.Len() + b.materials.Len()
}
