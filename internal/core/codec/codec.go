package codec

import (
	"fmt"
	"math"

	"github.com/xeekworx/planetgen/internal/core/blueprint"
	"github.com/xeekworx/planetgen/internal/core/property"
)

// FloatTolerance is how close a stored float must be to its recomputed
// seeded value to count as "not overridden" on import. Integer-displayed
// floats and material names must match exactly.
const FloatTolerance = 1e-4

// Export snapshots a resolved property table into a document. Every value
// is written regardless of its override flag; the ring sub-document, if
// any, is attached by the caller.
func Export(category, typ string, seed property.Seed, bp *blueprint.Blueprint,
	reg *blueprint.Registry, table *property.Table) (*Document, error) {

	doc := &Document{
		Category:      category,
		Type:          typ,
		Seed:          seed.Primary,
		VariationSeed: seed.Variation,
		BlueprintName: bp.Name(),
	}
	// By name, not pointer: an object resolved before a Registry.Replace
	// still holds the old *Blueprint but keeps its catalog position.
	for i, registered := range reg.All() {
		if registered.Name() == bp.Name() {
			doc.BlueprintIndex = i
			break
		}
	}

	var exportErr error
	table.Each(func(p *property.Property) bool {
		switch p.Kind {
		case property.KindFloat:
			if doc.Floats == nil {
				doc.Floats = make(map[string]float64)
			}
			doc.Floats[p.Key] = p.Float.Value
		case property.KindColor:
			if doc.Colors == nil {
				doc.Colors = make(map[string]property.Color)
			}
			doc.Colors[p.Key] = p.Color.Value
		case property.KindMaterial:
			tpl, ok := bp.MaterialTemplate(p.Key)
			if !ok {
				exportErr = fmt.Errorf("blueprint %s does not declare material %s", bp.Name(), p.Key)
				return false
			}
			name, err := reg.CandidateName(tpl.List, p.Material.Index)
			if err != nil {
				exportErr = fmt.Errorf("export material %s: %w", p.Key, err)
				return false
			}
			if doc.Materials == nil {
				doc.Materials = make(map[string]string)
			}
			doc.Materials[p.Key] = name
		}
		return true
	})
	if exportErr != nil {
		return nil, exportErr
	}
	return doc, nil
}

// Result is a fully reconciled import: a fresh property table resolved
// against the current blueprint ranges, with overrides applied where the
// stored value disagrees with the seeded one. Nothing in the caller's
// state has been touched when Import returns, so swapping the result in
// is the transactional commit point.
type Result struct {
	Seed      property.Seed
	Blueprint *blueprint.Blueprint
	Table     *property.Table
	Ring      *Result
}

// Import validates an entire document against the registry before building
// anything the caller can observe. The reconciliation rule per property:
// recompute the seeded value under the current blueprint ranges; when the
// stored literal matches (within FloatTolerance for floats, exactly for
// integer-displayed floats and material names) the property stays on the
// seed path so later range tuning can regenerate it, otherwise the stored
// literal becomes an override.
func Import(doc *Document, wantType string, reg *blueprint.Registry) (*Result, error) {
	if err := validate(doc, wantType); err != nil {
		return nil, err
	}
	bp, err := reg.Get(doc.BlueprintName)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", doc.Type, err)
	}

	// A present ring document must import cleanly before the outer object
	// is built, so a bad ring aborts the whole import.
	var ring *Result
	if doc.Ring != nil {
		ring, err = Import(doc.Ring, RingType, reg)
		if err != nil {
			return nil, fmt.Errorf("nested ring: %w", err)
		}
	}

	seed := property.Seed{Primary: doc.Seed, Variation: doc.VariationSeed}
	table, err := BuildTable(bp, reg)
	if err != nil {
		return nil, err
	}

	for key := range doc.Floats {
		if _, ok := bp.FloatTemplate(key); !ok {
			return nil, fmt.Errorf("%w: float %s", ErrUnknownDocKey, key)
		}
	}
	for key := range doc.Colors {
		if _, ok := bp.ColorTemplate(key); !ok {
			return nil, fmt.Errorf("%w: color %s", ErrUnknownDocKey, key)
		}
	}
	// Material names must all resolve before any value is applied.
	materialIndex := make(map[string]int, len(doc.Materials))
	for key, name := range doc.Materials {
		tpl, ok := bp.MaterialTemplate(key)
		if !ok {
			return nil, fmt.Errorf("%w: material %s", ErrUnknownDocKey, key)
		}
		idx, err := reg.CandidateIndex(tpl.List, name)
		if err != nil {
			return nil, fmt.Errorf("import material %s: %w", key, err)
		}
		materialIndex[key] = idx
	}

	// Seed-resolve everything, then reconcile stored values on top.
	if err = table.SetDefaults(seed, true); err != nil {
		return nil, err
	}

	for key, stored := range doc.Floats {
		p, _ := table.Get(key)
		if !floatMatches(p, stored) {
			if err = table.OverrideFloat(key, stored); err != nil {
				return nil, err
			}
		}
	}
	for key, stored := range doc.Colors {
		p, _ := table.Get(key)
		if !p.Color.Value.NearlyEqual(stored, FloatTolerance) {
			if err = table.OverrideColor(key, stored); err != nil {
				return nil, err
			}
		}
	}
	for key, idx := range materialIndex {
		p, _ := table.Get(key)
		if p.Material.Index != idx {
			if err = table.OverrideMaterial(key, idx); err != nil {
				return nil, err
			}
		}
	}

	return &Result{Seed: seed, Blueprint: bp, Table: table, Ring: ring}, nil
}

// BuildTable declares a fresh property table from a blueprint's templates.
func BuildTable(bp *blueprint.Blueprint, reg *blueprint.Registry) (*property.Table, error) {
	table := property.NewTable()
	var buildErr error
	bp.EachFloat(func(key string, tpl property.FloatTemplate) bool {
		_, buildErr = table.AddFloat(key, tpl)
		return buildErr == nil
	})
	if buildErr != nil {
		return nil, buildErr
	}
	bp.EachColor(func(key string, tpl property.ColorTemplate) bool {
		_, buildErr = table.AddColor(key, tpl)
		return buildErr == nil
	})
	if buildErr != nil {
		return nil, buildErr
	}
	bp.EachMaterial(func(key string, tpl property.MaterialTemplate) bool {
		var names []string
		names, buildErr = reg.Candidates(tpl.List)
		if buildErr != nil {
			buildErr = fmt.Errorf("material %s: %w", key, buildErr)
			return false
		}
		_, buildErr = table.AddMaterial(key, tpl, len(names))
		return buildErr == nil
	})
	if buildErr != nil {
		return nil, buildErr
	}
	return table, nil
}

func validate(doc *Document, wantType string) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrMalformed)
	}
	switch {
	case doc.Category == "":
		return fmt.Errorf("%w: category", ErrMissingField)
	case doc.Type == "":
		return fmt.Errorf("%w: type", ErrMissingField)
	case doc.BlueprintName == "":
		return fmt.Errorf("%w: blueprintName", ErrMissingField)
	}
	if doc.Type != wantType {
		return fmt.Errorf("%w: document is %q, target is %q", ErrTypeMismatch, doc.Type, wantType)
	}
	return nil
}

func floatMatches(p *property.Property, stored float64) bool {
	if p.Float.AsInteger {
		return p.Float.Value == stored
	}
	return math.Abs(p.Float.Value-stored) <= FloatTolerance
}
