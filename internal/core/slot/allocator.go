package slot

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/xeekworx/planetgen/internal/core/observability/log"
)

// Binding records who holds a slot and for what. At most one binding per
// (consumer, purpose) pair exists across the whole allocator.
type Binding struct {
	Consumer uuid.UUID
	Purpose  string
}

// Allocator hands out scarce generation-resource slots. Per kind there is
// one canonical slot plus a bounded pool of duplicates; when all of them
// are bound to live consumers an allocation fails outright rather than
// substituting a wrong resource.
//
// The host loop is cooperatively single-threaded, so the allocator takes no
// locks. Allocate runs its own garbage-collection pass over stale bindings
// before scanning, and that pass only removes entries, so an allocation
// that triggers cleanup can never observe a half-updated table.
type Allocator struct {
	log        log.Log
	canonical  map[Kind]*Slot
	duplicates map[Kind][]*Slot
	bindings   map[*Slot]Binding
	consumers  map[uuid.UUID]bool
}

func NewAllocator(logger log.Log) *Allocator {
	if logger == nil {
		logger = log.Nop()
	}
	return &Allocator{
		log:        logger,
		canonical:  make(map[Kind]*Slot),
		duplicates: make(map[Kind][]*Slot),
		bindings:   make(map[*Slot]Binding),
		consumers:  make(map[uuid.UUID]bool),
	}
}

// AddKind installs a resource kind with its canonical slot and the given
// number of duplicate slots.
func (a *Allocator) AddKind(kind Kind, duplicateCount int) error {
	if _, ok := a.canonical[kind]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, kind)
	}
	a.canonical[kind] = newSlot(kind, true)
	dups := make([]*Slot, 0, duplicateCount)
	for i := 0; i < duplicateCount; i++ {
		dups = append(dups, newSlot(kind, false))
	}
	a.duplicates[kind] = dups
	return nil
}

// NewConsumer registers a consumer identity and returns its handle. Every
// generated object that binds slots holds one.
func (a *Allocator) NewConsumer() uuid.UUID {
	id := uuid.New()
	a.consumers[id] = true
	return id
}

// ReleaseConsumer forgets a consumer. Its bindings become stale and are
// purged by the next Allocate, mirroring the lazy-cleanup design.
func (a *Allocator) ReleaseConsumer(id uuid.UUID) {
	delete(a.consumers, id)
}

// Allocate reserves a slot of the given kind for (consumer, purpose).
//
// Stale bindings (dead consumer, or this exact pair being replaced) are
// purged first; then the canonical slot is preferred, then the duplicate
// pool in order. When everything is bound the caller gets ErrExhausted —
// never a silently wrong slot.
func (a *Allocator) Allocate(kind Kind, consumer uuid.UUID, purpose string) (*Slot, error) {
	if !a.consumers[consumer] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownConsumer, consumer)
	}
	canonical, ok := a.canonical[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	a.purge(consumer, purpose)

	if _, bound := a.bindings[canonical]; !bound {
		a.bind(canonical, consumer, purpose)
		return canonical, nil
	}
	for _, s := range a.duplicates[kind] {
		if _, bound := a.bindings[s]; !bound {
			a.bind(s, consumer, purpose)
			return s, nil
		}
	}

	a.log.Warn("slot pool exhausted",
		log.String("kind", string(kind)),
		log.String("purpose", purpose),
		log.Int("duplicates", len(a.duplicates[kind])))
	return nil, fmt.Errorf("%w: %s (%d duplicates)", ErrExhausted, kind, len(a.duplicates[kind]))
}

// purge drops bindings whose consumer no longer exists, plus any existing
// binding for the exact pair about to be rebound.
func (a *Allocator) purge(consumer uuid.UUID, purpose string) {
	var stale []*Slot
	for s, b := range a.bindings {
		if !a.consumers[b.Consumer] {
			stale = append(stale, s)
			continue
		}
		if b.Consumer == consumer && b.Purpose == purpose {
			stale = append(stale, s)
		}
	}
	for _, s := range stale {
		delete(a.bindings, s)
	}
}

func (a *Allocator) bind(s *Slot, consumer uuid.UUID, purpose string) {
	a.bindings[s] = Binding{Consumer: consumer, Purpose: purpose}
	a.log.Debug("slot bound",
		log.String("kind", string(s.kind)),
		log.String("slot", s.id.String()),
		log.String("purpose", purpose),
		log.Bool("canonical", s.canonical))
}

// Release unbinds a slot explicitly.
func (a *Allocator) Release(s *Slot) error {
	if _, ok := a.bindings[s]; !ok {
		return ErrNotBound
	}
	delete(a.bindings, s)
	return nil
}

// BindingOf returns the live binding for a slot.
func (a *Allocator) BindingOf(s *Slot) (Binding, bool) {
	b, ok := a.bindings[s]
	return b, ok
}

// SlotFor finds the slot currently bound to (consumer, purpose).
func (a *Allocator) SlotFor(consumer uuid.UUID, purpose string) (*Slot, bool) {
	for s, b := range a.bindings {
		if b.Consumer == consumer && b.Purpose == purpose {
			return s, true
		}
	}
	return nil, false
}

// BoundCount returns how many slots of a kind are currently bound.
func (a *Allocator) BoundCount(kind Kind) int {
	n := 0
	for s := range a.bindings {
		if s.kind == kind {
			n++
		}
	}
	return n
}
