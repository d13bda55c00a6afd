package blueprint

import "errors"

var (
	ErrUnknownBlueprint     = errors.New("unknown blueprint")
	ErrDuplicateBlueprint   = errors.New("blueprint already registered")
	ErrNoBlueprints         = errors.New("no blueprints registered")
	ErrZeroWeights          = errors.New("blueprint weights sum to zero")
	ErrUnknownCandidateList = errors.New("unknown candidate list")
	ErrUnknownCandidate     = errors.New("unknown candidate name")
	ErrEmptyCandidateList   = errors.New("candidate list is empty")
	ErrInvalidConfig        = errors.New("invalid blueprint config")
)
