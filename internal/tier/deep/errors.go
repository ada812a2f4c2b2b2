package deep

import "errors"

var (
	ErrGeneration = errors.New("deep: plan generation failed")
	ErrPanic      = errors.New("deep: collaborator panicked")
)
