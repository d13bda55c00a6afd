package planet

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/xeekworx/planetgen/internal/core/blueprint"
	"github.com/xeekworx/planetgen/internal/core/codec"
	"github.com/xeekworx/planetgen/internal/core/lod"
	"github.com/xeekworx/planetgen/internal/core/mesh"
	"github.com/xeekworx/planetgen/internal/core/property"
	"github.com/xeekworx/planetgen/internal/core/slot"
)

// Planet is one assembled object: seeds, the chosen blueprint, the resolved
// property table, the slots bound for every driving property, and the two
// LOD drivers (continuous mesh, progressive texture). An optional Ring
// hangs off it with its own seeds and table, sharing the planet's consumer
// identity in the allocator.
//
// All methods run on the host's update goroutine.
type Planet struct {
	engine     *Engine
	consumer   uuid.UUID
	seed       property.Seed
	blueprint  *blueprint.Blueprint
	table      *property.Table
	purposes   []string
	generation uint64
	stale      bool
	destroyed  bool

	meshDriver    *lod.Driver
	textureDriver *lod.Driver

	ring *Ring
}

func (p *Planet) Seed() property.Seed             { return p.seed }
func (p *Planet) Blueprint() *blueprint.Blueprint { return p.blueprint }
func (p *Planet) Table() *property.Table          { return p.table }
func (p *Planet) Ring() *Ring                     { return p.ring }
func (p *Planet) Consumer() uuid.UUID             { return p.consumer }

// MeshLevel returns the current mesh quality level value.
func (p *Planet) MeshLevel() int { return p.meshDriver.Level() }

// TextureLevel returns the current texture quality level value.
func (p *Planet) TextureLevel() int { return p.textureDriver.Level() }

// Mesh builds the planet's sphere at the current mesh quality level, which
// is the subdivision level the continuous driver settled on.
func (p *Planet) Mesh(radius float32) (*mesh.Mesh, error) {
	return mesh.CreateSphere(p.meshDriver.Level(), radius)
}

// Stale reports whether the catalog mutated since this planet resolved.
// A stale planet keeps serving its values until Rebuild is called.
func (p *Planet) Stale() bool { return p.stale }

// SlotFor returns the slot bound for one driving purpose.
func (p *Planet) SlotFor(purpose string) (*slot.Slot, bool) {
	return p.engine.slots.SlotFor(p.consumer, purpose)
}

// build resolves the planet against bp from scratch: bind slots for every
// driving property, wire change notification, then run the seed pass so
// each driving slot starts dirty.
func (p *Planet) build(seed property.Seed, bp *blueprint.Blueprint) error {
	table, err := codec.BuildTable(bp, p.engine.blueprints)
	if err != nil {
		return err
	}
	purposes, err := p.bindSlots(table, "")
	if err != nil {
		return err
	}
	table.OnChange(p.notifySlot(""))
	if err = table.SetDefaults(seed, true); err != nil {
		return err
	}
	p.releaseStale(p.purposes, purposes)
	p.seed = seed
	p.blueprint = bp
	p.table = table
	p.purposes = purposes
	return p.resetDrivers()
}

// adopt installs an already-reconciled import result. The result's table
// was resolved without observers, so every driving slot is marked dirty
// afterwards by hand.
func (p *Planet) adopt(res *codec.Result) error {
	purposes, err := p.bindSlots(res.Table, "")
	if err != nil {
		return err
	}
	res.Table.OnChange(p.notifySlot(""))
	p.releaseStale(p.purposes, purposes)
	p.seed = res.Seed
	p.blueprint = res.Blueprint
	p.table = res.Table
	p.purposes = purposes
	p.markDirty(purposes)

	if res.Ring != nil {
		if err = p.adoptRing(res.Ring); err != nil {
			return err
		}
	} else {
		p.detachRing()
	}
	p.generation = p.engine.blueprints.Generation()
	p.stale = false
	return p.resetDrivers()
}

// bindSlots allocates one slot per distinct driving purpose declared by
// the table, in declaration order. Kind and purpose share the Drives name;
// ring properties get a prefix so they never collide with the planet's.
func (p *Planet) bindSlots(table *property.Table, prefix string) ([]string, error) {
	var purposes []string
	seen := make(map[string]bool)
	var bindErr error
	table.Each(func(prop *property.Property) bool {
		if prop.Drives == "" || seen[prop.Drives] {
			return true
		}
		seen[prop.Drives] = true
		purpose := prefix + prop.Drives
		if _, bindErr = p.engine.slots.Allocate(slot.Kind(prop.Drives), p.consumer, purpose); bindErr != nil {
			bindErr = fmt.Errorf("bind %s: %w", purpose, bindErr)
			return false
		}
		purposes = append(purposes, purpose)
		return true
	})
	if bindErr != nil {
		return nil, bindErr
	}
	return purposes, nil
}

// notifySlot is the table observer: a driving property changed value, so
// the slot bound for its purpose needs a regeneration cycle.
func (p *Planet) notifySlot(prefix string) property.ChangeFunc {
	return func(prop *property.Property) {
		if s, ok := p.engine.slots.SlotFor(p.consumer, prefix+prop.Drives); ok {
			s.MarkDirty()
		}
	}
}

// releaseStale frees slots bound under purposes the new table no longer
// declares. Rebinding the surviving purposes already replaced their
// bindings inside Allocate.
func (p *Planet) releaseStale(old, current []string) {
	keep := make(map[string]bool, len(current))
	for _, purpose := range current {
		keep[purpose] = true
	}
	for _, purpose := range old {
		if keep[purpose] {
			continue
		}
		if s, ok := p.engine.slots.SlotFor(p.consumer, purpose); ok {
			_ = p.engine.slots.Release(s)
		}
	}
}

func (p *Planet) markDirty(purposes []string) {
	for _, purpose := range purposes {
		if s, ok := p.engine.slots.SlotFor(p.consumer, purpose); ok {
			s.MarkDirty()
		}
	}
}

func (p *Planet) resetDrivers() error {
	var err error
	if p.meshDriver, err = lod.NewDriver(p.engine.meshLOD, lod.ModeContinuous, 0); err != nil {
		return err
	}
	p.textureDriver, err = lod.NewDriver(p.engine.textureLOD, lod.ModeProgressive, 0)
	return err
}

// Tick feeds one frame's apparent-size metric through the continuous mesh
// driver and refreshes staleness against the catalog generation. Returns
// whether the mesh level changed this tick.
func (p *Planet) Tick(apparentSize float64) bool {
	if p.destroyed {
		return false
	}
	if p.engine.blueprints.Generation() != p.generation {
		p.stale = true
	}
	return p.meshDriver.Observe(apparentSize)
}

// CompleteCycle is called by the host when the synthesis job on one bound
// slot finishes: the slot's in-flight flag clears, and once no slot of
// this planet is generating the progressive texture driver takes its next
// step.
func (p *Planet) CompleteCycle(purpose string) error {
	s, ok := p.engine.slots.SlotFor(p.consumer, purpose)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPurpose, purpose)
	}
	s.SetGenerating(false)
	p.textureDriver.Advance(p.anyGenerating())
	return nil
}

func (p *Planet) anyGenerating() bool {
	all := p.purposes
	if p.ring != nil {
		all = append(append([]string(nil), all...), p.ring.purposes...)
	}
	for _, purpose := range all {
		if s, ok := p.engine.slots.SlotFor(p.consumer, purpose); ok && s.Generating() {
			return true
		}
	}
	return false
}

// Reseed rederives every non-overridden property from new seeds; force
// clears overrides too. The ring, if present, keeps existing and follows
// with its derived seed.
func (p *Planet) Reseed(seed property.Seed, force bool) error {
	if p.destroyed {
		return ErrDestroyed
	}
	p.seed = seed
	if err := p.table.SetDefaults(seed, force); err != nil {
		return err
	}
	if p.ring != nil {
		return p.ring.reseed(ringSeed(seed), force)
	}
	return nil
}

// Rebuild re-resolves the planet against the current catalog after a
// mutation: the blueprint is re-fetched by name, the table rebuilt, and
// overridden values carried over where their key and kind survive.
func (p *Planet) Rebuild() error {
	if p.destroyed {
		return ErrDestroyed
	}
	bp, err := p.engine.blueprints.Get(p.blueprint.Name())
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}

	overrides := snapshotOverrides(p.table)
	if err = p.build(p.seed, bp); err != nil {
		return err
	}
	if err = restoreOverrides(p.table, overrides); err != nil {
		return err
	}

	if p.ring != nil {
		if err = p.ring.rebuild(p); err != nil {
			return err
		}
	}
	p.generation = p.engine.blueprints.Generation()
	p.stale = false
	return nil
}

// Export snapshots the planet (and its ring) into a document.
func (p *Planet) Export() (*codec.Document, error) {
	if p.destroyed {
		return nil, ErrDestroyed
	}
	reg := p.engine.blueprints
	doc, err := codec.Export(p.engine.category, "planet", p.seed, p.blueprint, reg, p.table)
	if err != nil {
		return nil, err
	}
	if p.ring != nil {
		doc.Ring, err = codec.Export(p.engine.category, codec.RingType, p.ring.seed, p.ring.blueprint, reg, p.ring.table)
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// Import restores this planet from a document in any encoding. The whole
// document is validated and reconciled before any state changes; a present
// ring document (re)constructs the ring, its absence removes an existing
// one.
func (p *Planet) Import(data string) error {
	if p.destroyed {
		return ErrDestroyed
	}
	doc, err := codec.Decode(data)
	if err != nil {
		return err
	}
	res, err := codec.Import(doc, "planet", p.engine.blueprints)
	if err != nil {
		return err
	}
	return p.adopt(res)
}

// Destroy releases the planet's consumer identity; its slot bindings go
// stale and are purged by the allocator's next pass.
func (p *Planet) Destroy() {
	if p.destroyed {
		return
	}
	p.engine.slots.ReleaseConsumer(p.consumer)
	p.destroyed = true
	p.ring = nil
}

type overrideSnapshot struct {
	kind     property.Kind
	float    float64
	color    property.Color
	material int
}

func snapshotOverrides(table *property.Table) map[string]overrideSnapshot {
	out := make(map[string]overrideSnapshot)
	table.Each(func(prop *property.Property) bool {
		if !prop.Overridden {
			return true
		}
		out[prop.Key] = overrideSnapshot{
			kind:     prop.Kind,
			float:    prop.Float.Value,
			color:    prop.Color.Value,
			material: prop.Material.Index,
		}
		return true
	})
	return out
}

// restoreOverrides reapplies snapshotted overrides onto a rebuilt table,
// skipping keys the new blueprint no longer declares or redeclared under
// another kind.
func restoreOverrides(table *property.Table, overrides map[string]overrideSnapshot) error {
	for key, snap := range overrides {
		prop, ok := table.Get(key)
		if !ok || prop.Kind != snap.kind {
			continue
		}
		var err error
		switch snap.kind {
		case property.KindFloat:
			err = table.OverrideFloat(key, snap.float)
		case property.KindColor:
			err = table.OverrideColor(key, snap.color)
		case property.KindMaterial:
			if snap.material >= prop.Material.CandidateCount {
				continue
			}
			err = table.OverrideMaterial(key, snap.material)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
