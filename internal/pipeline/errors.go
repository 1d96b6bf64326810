package pipeline

import "fmt"

// Stage names used to label failures so the user knows which step of
// the run broke.
const (
	StageValidate   = "validate"
	StageFetch      = "fetch"
	StageExtract    = "extract"
	StageTranscribe = "transcribe"
	StageReport     = "report"
)

// StageError wraps the first error of a run with the stage it came
// from. Later stages never execute.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// ValidationError is a bad or unsupported URL; the user must correct
// the input, retrying is pointless.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
