package planet

import "errors"

var (
	ErrMissingDependency = errors.New("engine dependency not provided")
	ErrDestroyed         = errors.New("planet has been destroyed")
	ErrUnknownPurpose    = errors.New("no slot bound for purpose")
	ErrRingsDisabled     = errors.New("no ring blueprint configured")
)
