package blueprint

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/xeekworx/planetgen/internal/core/property"
)

// Catalog is the on-disk form of a blueprint set, loadable from JSON or
// YAML. Candidate lists may ship with the catalog or be registered by the
// host before the catalog is applied.
type Catalog struct {
	Candidates []CandidateList `json:"candidates,omitempty" yaml:"candidates,omitempty"`
	Blueprints []Definition    `json:"blueprints" yaml:"blueprints"`
}

type CandidateList struct {
	Name  string   `json:"name" yaml:"name"`
	Items []string `json:"items" yaml:"items"`
}

// LoadJSON reads a catalog from a JSON reader.
func LoadJSON(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog json: %w", err)
	}
	return &c, nil
}

// LoadYAML reads a catalog from a YAML reader.
func LoadYAML(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog yaml: %w", err)
	}
	return &c, nil
}

// Apply validates the whole catalog and registers its contents. Nothing is
// registered if any part fails validation.
func (c *Catalog) Apply(reg *Registry) error {
	if len(c.Blueprints) == 0 {
		return fmt.Errorf("%w: catalog has no blueprints", ErrInvalidConfig)
	}

	built := make([]*Blueprint, 0, len(c.Blueprints))
	seen := make(map[string]bool, len(c.Blueprints))
	for _, def := range c.Blueprints {
		if seen[def.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateBlueprint, def.Name)
		}
		seen[def.Name] = true
		bp, err := New(def)
		if err != nil {
			return err
		}
		built = append(built, bp)
	}

	// Every material must resolve to a candidate list, either from this
	// catalog or one already registered by the host.
	available := make(map[string]bool, len(c.Candidates))
	for _, list := range c.Candidates {
		if len(list.Items) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyCandidateList, list.Name)
		}
		available[list.Name] = true
	}
	for i, bp := range built {
		var missing error
		bp.EachMaterial(func(key string, tpl property.MaterialTemplate) bool {
			if available[tpl.List] {
				return true
			}
			if _, err := reg.Candidates(tpl.List); err != nil {
				missing = fmt.Errorf("blueprint %s, key %s: %w", c.Blueprints[i].Name, key, err)
				return false
			}
			return true
		})
		if missing != nil {
			return missing
		}
	}

	for _, list := range c.Candidates {
		if err := reg.RegisterCandidates(list.Name, list.Items); err != nil {
			return err
		}
	}
	for _, bp := range built {
		if err := reg.Register(bp); err != nil {
			return err
		}
	}
	return nil
}
