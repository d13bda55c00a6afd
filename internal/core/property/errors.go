package property

import "errors"

var (
	ErrUnknownKey      = errors.New("unknown property key")
	ErrDuplicateKey    = errors.New("property key already declared")
	ErrKindMismatch    = errors.New("property kind mismatch")
	ErrEmptySelection  = errors.New("material selection list is empty")
	ErrNoCandidates    = errors.New("material has no candidates")
	ErrIndexOutOfRange = errors.New("material index out of range")
)
