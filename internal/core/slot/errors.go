package slot

import "errors"

var (
	ErrUnknownKind     = errors.New("unknown slot kind")
	ErrDuplicateKind   = errors.New("slot kind already added")
	ErrExhausted       = errors.New("no free slot for kind")
	ErrUnknownConsumer = errors.New("consumer is not registered")
	ErrNotBound        = errors.New("slot is not bound")
)
