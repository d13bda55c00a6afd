package blueprint

import (
	"fmt"

	"github.com/xeekworx/planetgen/internal/core/observability/log"
	"github.com/xeekworx/planetgen/pkg/ordered"
)

// Registry is the process-wide catalog of blueprints and material candidate
// lists. It is passed explicitly to everything that resolves against it;
// there is no ambient global instance.
//
// Every mutation bumps a generation counter. Objects remember the
// generation they resolved against and rebuild when it moves, so a catalog
// change invalidates stale objects without the registry tracking them.
type Registry struct {
	log        log.Log
	blueprints *ordered.Map[string, *Blueprint]
	candidates map[string][]string
	generation uint64
}

func NewRegistry(logger log.Log) *Registry {
	if logger == nil {
		logger = log.Nop()
	}
	return &Registry{
		log:        logger,
		blueprints: ordered.NewMap[string, *Blueprint](),
		candidates: make(map[string][]string),
	}
}

// Register adds a blueprint to the catalog.
func (r *Registry) Register(bp *Blueprint) error {
	if r.blueprints.Has(bp.Name()) {
		return fmt.Errorf("%w: %s", ErrDuplicateBlueprint, bp.Name())
	}
	r.blueprints.Set(bp.Name(), bp)
	r.generation++
	r.log.Debug("blueprint registered",
		log.String("name", bp.Name()),
		log.Int("properties", bp.PropertyCount()),
		log.Uint64("generation", r.generation))
	return nil
}

// Replace swaps the blueprint registered under def.Name for a new build of
// def, keeping its position in declaration order. Registers it fresh if the
// name is new.
func (r *Registry) Replace(def Definition) error {
	bp, err := New(def)
	if err != nil {
		return err
	}
	r.blueprints.Set(bp.Name(), bp)
	r.generation++
	r.log.Info("blueprint replaced",
		log.String("name", bp.Name()),
		log.Uint64("generation", r.generation))
	return nil
}

// Remove deletes a blueprint from the catalog.
func (r *Registry) Remove(name string) error {
	if !r.blueprints.Delete(name) {
		return fmt.Errorf("%w: %s", ErrUnknownBlueprint, name)
	}
	r.generation++
	return nil
}

// Get returns the blueprint registered under name.
func (r *Registry) Get(name string) (*Blueprint, error) {
	bp, ok := r.blueprints.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBlueprint, name)
	}
	return bp, nil
}

// All returns blueprints in registration order.
func (r *Registry) All() []*Blueprint {
	out := make([]*Blueprint, 0, r.blueprints.Len())
	for _, bp := range r.blueprints.Iter() {
		out = append(out, bp)
	}
	return out
}

// Len returns the number of registered blueprints.
func (r *Registry) Len() int {
	return r.blueprints.Len()
}

// Generation returns the current catalog generation. It moves on every
// mutation, including candidate list changes.
func (r *Registry) Generation() uint64 {
	return r.generation
}

// RegisterCandidates installs the ordered candidate-name list materials of
// the given list name resolve into. The host supplies these once; replacing
// a list bumps the generation like any other mutation.
func (r *Registry) RegisterCandidates(list string, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyCandidateList, list)
	}
	owned := make([]string, len(names))
	copy(owned, names)
	r.candidates[list] = owned
	r.generation++
	return nil
}

// Candidates returns the ordered candidate names for a list.
func (r *Registry) Candidates(list string) ([]string, error) {
	names, ok := r.candidates[list]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCandidateList, list)
	}
	return names, nil
}

// CandidateName maps an index in a list back to its name.
func (r *Registry) CandidateName(list string, index int) (string, error) {
	names, err := r.Candidates(list)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(names) {
		return "", fmt.Errorf("%w: %s[%d]", ErrUnknownCandidate, list, index)
	}
	return names[index], nil
}

// CandidateIndex finds a candidate by name. Imports match materials by name
// rather than index so candidate reordering survives a round trip.
func (r *Registry) CandidateIndex(list, name string) (int, error) {
	names, err := r.Candidates(list)
	if err != nil {
		return 0, err
	}
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s in list %s", ErrUnknownCandidate, name, list)
}
