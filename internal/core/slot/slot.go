package slot

import "github.com/google/uuid"

// Kind names a class of scarce generation resource, e.g. the surface
// texture synthesizer versus the ring texture synthesizer. Each kind has one
// canonical slot and a bounded pool of duplicates.
type Kind string

// Slot is a handle to one instance of an external generation resource. The
// allocator owns binding state; the two flags below are the cooperative
// contract with the host:
//
//   - generating is reported by the host. While set, the core must not
//     request another synthesis cycle through this slot, and the slot is
//     not reclaimed. There is no cancellation, only suppression.
//   - needsRegen is raised by the core when a property driving this slot
//     changes, and cleared by the host when it starts a new cycle.
type Slot struct {
	id         uuid.UUID
	kind       Kind
	canonical  bool
	generating bool
	needsRegen bool
}

func newSlot(kind Kind, canonical bool) *Slot {
	return &Slot{
		id:        uuid.New(),
		kind:      kind,
		canonical: canonical,
	}
}

func (s *Slot) ID() uuid.UUID   { return s.id }
func (s *Slot) Kind() Kind      { return s.kind }
func (s *Slot) Canonical() bool { return s.canonical }

// Generating reports the externally-observed in-flight flag.
func (s *Slot) Generating() bool { return s.generating }

// SetGenerating is called by the host: true when it starts a synthesis
// cycle, false when it observes completion.
func (s *Slot) SetGenerating(v bool) { s.generating = v }

// NeedsRegen reports whether a driving property changed since the last
// cycle started.
func (s *Slot) NeedsRegen() bool { return s.needsRegen }

// MarkDirty raises the regeneration flag.
func (s *Slot) MarkDirty() { s.needsRegen = true }

// ClearDirty lowers the regeneration flag; the host calls this when it
// picks the slot up for a new cycle.
func (s *Slot) ClearDirty() { s.needsRegen = false }

// ReadyForCycle reports whether the host should start a new synthesis
// cycle: something changed and no cycle is in flight.
func (s *Slot) ReadyForCycle() bool {
	return s.needsRegen && !s.generating
}
