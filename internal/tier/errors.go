package tier

import "fmt"

// Error is a typed tier failure naming the pipeline stage that broke.
type Error struct {
	Tier  string
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: stage %s: %v", e.Tier, e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fail builds a failed Result carrying a *Error and the trace so far.
func Fail(system, stage string, trace Trace, err error) Result {
	return Result{
		System: system,
		Trace:  trace,
		Status: StatusFailed,
		Err:    &Error{Tier: system, Stage: stage, Err: err},
	}
}
