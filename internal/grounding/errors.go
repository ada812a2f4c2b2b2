package grounding

import "errors"

var (
	ErrUnavailable         = errors.New("grounding: constitution unavailable")
	ErrInvalidConstitution = errors.New("grounding: invalid constitution")
)
