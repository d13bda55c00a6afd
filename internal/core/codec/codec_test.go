package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xeekworx/planetgen/internal/core/blueprint"
	"github.com/xeekworx/planetgen/internal/core/property"
)

func testRegistry(t *testing.T) *blueprint.Registry {
	t.Helper()
	reg := blueprint.NewRegistry(nil)
	require.NoError(t, reg.RegisterCandidates("surfaces", []string{"rocky", "icy", "molten", "oceanic"}))

	bp, err := blueprint.New(blueprint.Definition{
		Name:       "terrestrial",
		Weight:     1,
		RingWeight: 0.5,
		Floats: []blueprint.FloatEntry{
			{Key: "radius", FloatTemplate: property.FloatTemplate{Min: 0.5, Max: 2}},
			{Key: "moons", FloatTemplate: property.FloatTemplate{Min: 0, Max: 5, AsInteger: true}},
		},
		Colors: []blueprint.ColorEntry{
			{Key: "surfaceTint", ColorTemplate: property.ColorTemplate{
				Base:            property.Color{R: 0.4, G: 0.6, B: 0.3, A: 1},
				HueRange:        0.1,
				SaturationRange: 0.2,
				BrightnessRange: 0.2,
			}},
		},
		Materials: []blueprint.MaterialEntry{
			{Key: "surfaceMaterial", MaterialTemplate: property.MaterialTemplate{List: "surfaces", Mask: -1}},
		},
	})
	require.NoError(t, err)
	require.NoError(t, reg.Register(bp))

	ringBp, err := blueprint.New(blueprint.Definition{
		Name:   "dustring",
		Weight: 1,
		Floats: []blueprint.FloatEntry{
			{Key: "innerRadius", FloatTemplate: property.FloatTemplate{Min: 1.2, Max: 1.6}},
			{Key: "outerRadius", FloatTemplate: property.FloatTemplate{Min: 1.8, Max: 3}},
		},
	})
	require.NoError(t, err)
	require.NoError(t, reg.Register(ringBp))
	return reg
}

func resolvedTable(t *testing.T, reg *blueprint.Registry, name string, seed property.Seed) (*blueprint.Blueprint, *property.Table) {
	t.Helper()
	bp, err := reg.Get(name)
	require.NoError(t, err)
	table, err := BuildTable(bp, reg)
	require.NoError(t, err)
	require.NoError(t, table.SetDefaults(seed, true))
	return bp, table
}

func TestExportCarriesEveryValue(t *testing.T) {
	reg := testRegistry(t)
	seed := property.Seed{Primary: 42, Variation: 7}
	bp, table := resolvedTable(t, reg, "terrestrial", seed)

	doc, err := Export("procgen", "planet", seed, bp, reg, table)
	require.NoError(t, err)

	require.Equal(t, "procgen", doc.Category)
	require.Equal(t, "planet", doc.Type)
	require.Equal(t, int64(42), doc.Seed)
	require.Equal(t, int64(7), doc.VariationSeed)
	require.Equal(t, "terrestrial", doc.BlueprintName)
	require.Equal(t, 0, doc.BlueprintIndex)
	require.Len(t, doc.Floats, 2)
	require.Len(t, doc.Colors, 1)
	require.Contains(t, []string{"rocky", "icy", "molten", "oceanic"}, doc.Materials["surfaceMaterial"])
}

func TestExportBlueprintIndexAfterReplace(t *testing.T) {
	reg := testRegistry(t)
	seed := property.Seed{Primary: 3}
	bp, table := resolvedTable(t, reg, "dustring", seed)

	doc, err := Export("procgen", "ring", seed, bp, reg, table)
	require.NoError(t, err)
	require.Equal(t, 1, doc.BlueprintIndex)

	// Replace swaps the registered *Blueprint; an export from an object
	// still holding the old pointer keeps the catalog position.
	require.NoError(t, reg.Replace(blueprint.Definition{
		Name:   "dustring",
		Weight: 1,
		Floats: []blueprint.FloatEntry{
			{Key: "innerRadius", FloatTemplate: property.FloatTemplate{Min: 1.2, Max: 1.6}},
			{Key: "outerRadius", FloatTemplate: property.FloatTemplate{Min: 1.8, Max: 3}},
		},
	}))
	doc, err = Export("procgen", "ring", seed, bp, reg, table)
	require.NoError(t, err)
	require.Equal(t, 1, doc.BlueprintIndex)
}

func TestRoundTripPreservesValues(t *testing.T) {
	reg := testRegistry(t)
	seed := property.Seed{Primary: 42, Variation: 7}
	bp, table := resolvedTable(t, reg, "terrestrial", seed)

	doc, err := Export("procgen", "planet", seed, bp, reg, table)
	require.NoError(t, err)

	res, err := Import(doc, "planet", reg)
	require.NoError(t, err)
	require.Equal(t, seed, res.Seed)
	require.Equal(t, "terrestrial", res.Blueprint.Name())

	// Nothing was overridden, so the reconciled table stays on the seed
	// path with identical values.
	res.Table.Each(func(p *property.Property) bool {
		require.False(t, p.Overridden, "key %s", p.Key)
		orig, _ := table.Get(p.Key)
		switch p.Kind {
		case property.KindFloat:
			require.InDelta(t, orig.Float.Value, p.Float.Value, FloatTolerance)
		case property.KindColor:
			require.True(t, orig.Color.Value.NearlyEqual(p.Color.Value, FloatTolerance))
		case property.KindMaterial:
			require.Equal(t, orig.Material.Index, p.Material.Index)
		}
		return true
	})
}

func TestRoundTripPreservesOverrides(t *testing.T) {
	reg := testRegistry(t)
	seed := property.Seed{Primary: 42}
	bp, table := resolvedTable(t, reg, "terrestrial", seed)

	require.NoError(t, table.OverrideFloat("radius", 77.5))
	require.NoError(t, table.OverrideMaterial("surfaceMaterial", 2)) // molten

	doc, err := Export("procgen", "planet", seed, bp, reg, table)
	require.NoError(t, err)

	res, err := Import(doc, "planet", reg)
	require.NoError(t, err)

	p, _ := res.Table.Get("radius")
	require.True(t, p.Overridden)
	require.Equal(t, 77.5, p.Float.Value)

	mp, _ := res.Table.Get("surfaceMaterial")
	require.Equal(t, 2, mp.Material.Index)
}

func TestRangeChangeAfterImport(t *testing.T) {
	reg := testRegistry(t)
	seed := property.Seed{Primary: 42}
	bp, table := resolvedTable(t, reg, "terrestrial", seed)

	doc, err := Export("procgen", "planet", seed, bp, reg, table)
	require.NoError(t, err)

	res, err := Import(doc, "planet", reg)
	require.NoError(t, err)
	p, _ := res.Table.Get("radius")
	require.False(t, p.Overridden)

	require.NoError(t, reg.Replace(blueprint.Definition{
		Name:   "terrestrial",
		Weight: 1,
		Floats: []blueprint.FloatEntry{
			{Key: "radius", FloatTemplate: property.FloatTemplate{Min: 100, Max: 200}},
			{Key: "moons", FloatTemplate: property.FloatTemplate{Min: 0, Max: 5, AsInteger: true}},
		},
		Colors: []blueprint.ColorEntry{
			{Key: "surfaceTint", ColorTemplate: property.ColorTemplate{
				Base:            property.Color{R: 0.4, G: 0.6, B: 0.3, A: 1},
				HueRange:        0.1,
				SaturationRange: 0.2,
				BrightnessRange: 0.2,
			}},
		},
		Materials: []blueprint.MaterialEntry{
			{Key: "surfaceMaterial", MaterialTemplate: property.MaterialTemplate{List: "surfaces", Mask: -1}},
		},
	}))

	// Importing the old document against the retuned blueprint: the
	// stored literal no longer matches the recomputed seeded value, so it
	// is preserved verbatim as an override instead of silently shifting.
	res2, err := Import(doc, "planet", reg)
	require.NoError(t, err)
	p2, _ := res2.Table.Get("radius")
	require.True(t, p2.Overridden)
	require.Equal(t, p.Float.Value, p2.Float.Value)

	// A property that stayed on the seed path regenerates into the new
	// range when the table is rebuilt from the retuned blueprint.
	newBp, err := reg.Get("terrestrial")
	require.NoError(t, err)
	fresh, err := BuildTable(newBp, reg)
	require.NoError(t, err)
	require.NoError(t, fresh.SetDefaults(seed, true))
	fp, _ := fresh.Get("radius")
	require.GreaterOrEqual(t, fp.Float.Value, 100.0)
	require.Less(t, fp.Float.Value, 200.0)
}

func TestImportMatchesMaterialByName(t *testing.T) {
	reg := testRegistry(t)
	seed := property.Seed{Primary: 42}
	bp, table := resolvedTable(t, reg, "terrestrial", seed)
	require.NoError(t, table.OverrideMaterial("surfaceMaterial", 1)) // icy

	doc, err := Export("procgen", "planet", seed, bp, reg, table)
	require.NoError(t, err)
	require.Equal(t, "icy", doc.Materials["surfaceMaterial"])

	// Reorder the candidate list; the name must still resolve.
	require.NoError(t, reg.RegisterCandidates("surfaces", []string{"molten", "icy", "rocky", "oceanic"}))
	res, err := Import(doc, "planet", reg)
	require.NoError(t, err)
	p, _ := res.Table.Get("surfaceMaterial")
	require.Equal(t, 1, p.Material.Index) // icy's new position
}

func TestImportValidationErrors(t *testing.T) {
	reg := testRegistry(t)
	seed := property.Seed{Primary: 1}
	bp, table := resolvedTable(t, reg, "terrestrial", seed)
	doc, err := Export("procgen", "planet", seed, bp, reg, table)
	require.NoError(t, err)

	_, err = Import(doc, "starbase", reg)
	require.ErrorIs(t, err, ErrTypeMismatch)

	missing := *doc
	missing.BlueprintName = ""
	_, err = Import(&missing, "planet", reg)
	require.ErrorIs(t, err, ErrMissingField)

	unknown := *doc
	unknown.BlueprintName = "nebula"
	_, err = Import(&unknown, "planet", reg)
	require.ErrorIs(t, err, blueprint.ErrUnknownBlueprint)

	badKey := *doc
	badKey.Floats = map[string]float64{"gravityWells": 3}
	_, err = Import(&badKey, "planet", reg)
	require.ErrorIs(t, err, ErrUnknownDocKey)

	badName := *doc
	badName.Materials = map[string]string{"surfaceMaterial": "plasma"}
	_, err = Import(&badName, "planet", reg)
	require.ErrorIs(t, err, blueprint.ErrUnknownCandidate)
}

func TestImportNestedRing(t *testing.T) {
	reg := testRegistry(t)
	seed := property.Seed{Primary: 9}
	bp, table := resolvedTable(t, reg, "terrestrial", seed)

	ringSeed := property.Seed{Primary: 10}
	ringBp, ringTable := resolvedTable(t, reg, "dustring", ringSeed)
	ringDoc, err := Export("procgen", "ring", ringSeed, ringBp, reg, ringTable)
	require.NoError(t, err)

	doc, err := Export("procgen", "planet", seed, bp, reg, table)
	require.NoError(t, err)
	doc.Ring = ringDoc

	res, err := Import(doc, "planet", reg)
	require.NoError(t, err)
	require.NotNil(t, res.Ring)
	require.Equal(t, "dustring", res.Ring.Blueprint.Name())
	require.Nil(t, res.Ring.Ring)

	// A broken nested ring aborts the whole import.
	doc.Ring.BlueprintName = "missing"
	_, err = Import(doc, "planet", reg)
	require.ErrorIs(t, err, blueprint.ErrUnknownBlueprint)
}

func TestImportRejectsMistypedRing(t *testing.T) {
	reg := testRegistry(t)
	seed := property.Seed{Primary: 9}
	bp, table := resolvedTable(t, reg, "terrestrial", seed)

	doc, err := Export("procgen", "planet", seed, bp, reg, table)
	require.NoError(t, err)

	ringSeed := property.Seed{Primary: 10}
	ringBp, ringTable := resolvedTable(t, reg, "dustring", ringSeed)
	doc.Ring, err = Export("procgen", "asteroid belt", ringSeed, ringBp, reg, ringTable)
	require.NoError(t, err)

	// The nested document must carry the ring type, whatever it claims
	// about itself.
	_, err = Import(doc, "planet", reg)
	require.ErrorIs(t, err, ErrTypeMismatch)

	doc.Ring.Type = RingType
	_, err = Import(doc, "planet", reg)
	require.NoError(t, err)
}
