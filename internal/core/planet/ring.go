package planet

import (
	"fmt"

	"github.com/xeekworx/planetgen/internal/core/blueprint"
	"github.com/xeekworx/planetgen/internal/core/codec"
	"github.com/xeekworx/planetgen/internal/core/property"
)

// ringPrefix namespaces ring slot purposes away from the planet's, since
// both bind under the same consumer.
const ringPrefix = "ring/"

// Ring is a planet's optional sub-object. It has its own seeds, blueprint
// and property table, but no LOD drivers or consumer identity of its own:
// it renders at the planet's levels and binds slots under the planet's
// consumer.
type Ring struct {
	seed      property.Seed
	blueprint *blueprint.Blueprint
	table     *property.Table
	purposes  []string
}

func (r *Ring) Seed() property.Seed             { return r.seed }
func (r *Ring) Blueprint() *blueprint.Blueprint { return r.blueprint }
func (r *Ring) Table() *property.Table          { return r.table }

// attachRing resolves a fresh ring against the engine's configured ring
// blueprint and hangs it off the planet.
func (p *Planet) attachRing(seed property.Seed) error {
	if p.engine.ringName == "" {
		return ErrRingsDisabled
	}
	bp, err := p.engine.blueprints.Get(p.engine.ringName)
	if err != nil {
		return fmt.Errorf("ring: %w", err)
	}
	table, err := codec.BuildTable(bp, p.engine.blueprints)
	if err != nil {
		return err
	}
	purposes, err := p.bindSlots(table, ringPrefix)
	if err != nil {
		return err
	}
	table.OnChange(p.notifySlot(ringPrefix))
	if err = table.SetDefaults(seed, true); err != nil {
		return err
	}
	p.ring = &Ring{seed: seed, blueprint: bp, table: table, purposes: purposes}
	return nil
}

// adoptRing installs an imported ring result, replacing any existing ring.
func (p *Planet) adoptRing(res *codec.Result) error {
	purposes, err := p.bindSlots(res.Table, ringPrefix)
	if err != nil {
		return err
	}
	res.Table.OnChange(p.notifySlot(ringPrefix))
	var old []string
	if p.ring != nil {
		old = p.ring.purposes
	}
	p.releaseStale(old, purposes)
	p.ring = &Ring{seed: res.Seed, blueprint: res.Blueprint, table: res.Table, purposes: purposes}
	p.markDirty(purposes)
	return nil
}

// detachRing removes the ring and frees its slots.
func (p *Planet) detachRing() {
	if p.ring == nil {
		return
	}
	p.releaseStale(p.ring.purposes, nil)
	p.ring = nil
}

func (r *Ring) reseed(seed property.Seed, force bool) error {
	r.seed = seed
	return r.table.SetDefaults(seed, force)
}

// rebuild re-resolves the ring against the current catalog, carrying
// overrides like the planet does.
func (r *Ring) rebuild(p *Planet) error {
	bp, err := p.engine.blueprints.Get(r.blueprint.Name())
	if err != nil {
		return fmt.Errorf("ring rebuild: %w", err)
	}
	table, err := codec.BuildTable(bp, p.engine.blueprints)
	if err != nil {
		return err
	}
	purposes, err := p.bindSlots(table, ringPrefix)
	if err != nil {
		return err
	}
	table.OnChange(p.notifySlot(ringPrefix))
	if err = table.SetDefaults(r.seed, true); err != nil {
		return err
	}
	overrides := snapshotOverrides(r.table)
	if err = restoreOverrides(table, overrides); err != nil {
		return err
	}
	p.releaseStale(r.purposes, purposes)
	r.blueprint = bp
	r.table = table
	r.purposes = purposes
	return nil
}
