package codec

import (
	"github.com/cespare/xxhash/v2"

	"github.com/xeekworx/planetgen/internal/core/property"
)

// RingType is the document type every nested ring is written with, and the
// type a nested document must carry to import as one.
const RingType = "ring"

// Document is the serialized snapshot of one generated object: identity,
// seeds, blueprint, and the current value of every property regardless of
// its override flag. Whether a value was overridden is not stored — import
// rediscovers it by recomputing the seeded value and comparing (the
// reconciliation contract).
//
// Materials are stored by candidate name, not index, so a reordered
// candidate list survives a round trip.
type Document struct {
	Category       string                    `json:"category"`
	Type           string                    `json:"type"`
	Seed           int64                     `json:"seed"`
	VariationSeed  int64                     `json:"variationSeed"`
	BlueprintName  string                    `json:"blueprintName"`
	BlueprintIndex int                       `json:"blueprintIndex"`
	Floats         map[string]float64        `json:"floats,omitempty"`
	Colors         map[string]property.Color `json:"colors,omitempty"`
	Materials      map[string]string         `json:"materials,omitempty"`
	Ring           *Document                 `json:"ring,omitempty"`
}

// Fingerprint hashes the document's canonical compact encoding. Hosts use
// it to detect changes cheaply; it is not stored in the document itself.
func Fingerprint(doc *Document) (uint64, error) {
	compact, err := Encode(doc, FormatCompact)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64String(compact), nil
}
