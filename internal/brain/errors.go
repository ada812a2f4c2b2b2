package brain

import "errors"

var (
	ErrSystemPromptLoad = errors.New("brain: load system prompt")
	ErrMissingExecutor  = errors.New("brain: fast and deep executors are required")
	ErrUnknownPolicy    = errors.New("brain: unknown degrade policy")
)
