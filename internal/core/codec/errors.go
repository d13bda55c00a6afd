package codec

import "errors"

var (
	ErrMalformed     = errors.New("malformed document")
	ErrMissingField  = errors.New("document is missing a required field")
	ErrTypeMismatch  = errors.New("document type does not match target")
	ErrUnknownDocKey = errors.New("document property key not declared by blueprint")
	ErrBadEncoding   = errors.New("unrecognized document encoding")
	ErrUnknownFormat = errors.New("unknown document format")
)
