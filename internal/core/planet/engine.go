package planet

import (
	"fmt"

	"github.com/xeekworx/planetgen/internal/core/blueprint"
	"github.com/xeekworx/planetgen/internal/core/codec"
	"github.com/xeekworx/planetgen/internal/core/lod"
	"github.com/xeekworx/planetgen/internal/core/observability/log"
	"github.com/xeekworx/planetgen/internal/core/property"
	"github.com/xeekworx/planetgen/internal/core/random"
	"github.com/xeekworx/planetgen/internal/core/slot"
)

// ringSalt separates the ring-existence draw from the blueprint pick and
// every property draw sharing the same primary seed.
const ringSalt int64 = 9631

// ringSeedSalt derives a ring's own primary seed from its planet's, so the
// two objects resolve from distinct streams while staying reproducible.
const ringSeedSalt int64 = 467

// Config wires an Engine. Blueprints, Slots, MeshLOD and TextureLOD are
// required; everything else has a working zero value.
type Config struct {
	Log        log.Log
	Blueprints *blueprint.Registry
	Slots      *slot.Allocator

	// MeshLOD drives the continuous mesh channel, TextureLOD the
	// progressive texture channel. Both may point at the same Config.
	MeshLOD    *lod.Config
	TextureLOD *lod.Config

	// Category tags exported documents. Defaults to "procgen".
	Category string

	// RingBlueprint names the blueprint rings resolve against. It lives in
	// the same registry as planet blueprints (imports walk one catalog);
	// register it with weight 0 so weighted planet picks skip it. Empty
	// disables rings entirely.
	RingBlueprint string
}

// Engine assembles planets: it owns the shared catalog, the slot pool and
// the LOD configs, and spawns Planet objects that reference them. It runs
// on the host's single update goroutine like everything beneath it.
type Engine struct {
	log        log.Log
	blueprints *blueprint.Registry
	slots      *slot.Allocator
	meshLOD    *lod.Config
	textureLOD *lod.Config
	category   string
	ringName   string
}

func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Blueprints == nil {
		return nil, fmt.Errorf("%w: blueprint registry", ErrMissingDependency)
	}
	if cfg.Slots == nil {
		return nil, fmt.Errorf("%w: slot allocator", ErrMissingDependency)
	}
	if cfg.MeshLOD == nil || cfg.TextureLOD == nil {
		return nil, fmt.Errorf("%w: lod config", ErrMissingDependency)
	}
	if err := cfg.MeshLOD.Validate(); err != nil {
		return nil, fmt.Errorf("mesh lod: %w", err)
	}
	if err := cfg.TextureLOD.Validate(); err != nil {
		return nil, fmt.Errorf("texture lod: %w", err)
	}
	logger := cfg.Log
	if logger == nil {
		logger = log.Nop()
	}
	category := cfg.Category
	if category == "" {
		category = "procgen"
	}
	return &Engine{
		log:        logger,
		blueprints: cfg.Blueprints,
		slots:      cfg.Slots,
		meshLOD:    cfg.MeshLOD,
		textureLOD: cfg.TextureLOD,
		category:   category,
		ringName:   cfg.RingBlueprint,
	}, nil
}

// Blueprints exposes the engine's catalog for administrative mutation.
func (e *Engine) Blueprints() *blueprint.Registry {
	return e.blueprints
}

// Spawn builds a planet from its seeds. A non-empty blueprintName forces
// that blueprint; otherwise the primary seed drives the weighted pick.
// Construction is all-or-nothing: a slot exhaustion mid-build releases
// everything already bound.
func (e *Engine) Spawn(seed property.Seed, blueprintName string) (*Planet, error) {
	bp, err := blueprint.Pick(e.blueprints, seed.Primary, blueprintName)
	if err != nil {
		return nil, fmt.Errorf("spawn: %w", err)
	}

	p := &Planet{
		engine:     e,
		seed:       seed,
		blueprint:  bp,
		consumer:   e.slots.NewConsumer(),
		generation: e.blueprints.Generation(),
	}
	if err = p.build(seed, bp); err != nil {
		e.slots.ReleaseConsumer(p.consumer)
		return nil, err
	}

	if e.ringName != "" && bp.RingWeight() > 0 {
		if random.Unit(seed.Primary+ringSalt) < bp.RingWeight() {
			if err = p.attachRing(ringSeed(seed)); err != nil {
				p.Destroy()
				return nil, err
			}
		}
	}

	e.log.Debug("planet spawned",
		log.Int64("seed", seed.Primary),
		log.String("blueprint", bp.Name()),
		log.Bool("ring", p.ring != nil))
	return p, nil
}

// ImportPlanet reconstructs a planet from any of the document encodings.
// The document is fully validated and reconciled before any slot or
// consumer state is created.
func (e *Engine) ImportPlanet(data string) (*Planet, error) {
	doc, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}
	res, err := codec.Import(doc, "planet", e.blueprints)
	if err != nil {
		return nil, err
	}

	p := &Planet{
		engine:     e,
		seed:       res.Seed,
		blueprint:  res.Blueprint,
		consumer:   e.slots.NewConsumer(),
		generation: e.blueprints.Generation(),
	}
	if err = p.adopt(res); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func ringSeed(seed property.Seed) property.Seed {
	return property.Seed{
		Primary:   seed.Primary + ringSeedSalt,
		Variation: seed.Variation,
	}
}
