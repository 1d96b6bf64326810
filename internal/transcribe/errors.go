package transcribe

import "fmt"

// ProviderErrorKind labels which part of the provider exchange failed.
type ProviderErrorKind string

const (
	KindUpload  ProviderErrorKind = "upload"
	KindSubmit  ProviderErrorKind = "submit"
	KindTimeout ProviderErrorKind = "timeout"
	KindRemote  ProviderErrorKind = "remote"
)

// ProviderError is a transcription backend failure. Timeout and
// transient remote errors are the retryable kinds; the pipeline
// surfaces the rest as-is.
type ProviderError struct {
	Kind ProviderErrorKind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("transcription %s error: %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
