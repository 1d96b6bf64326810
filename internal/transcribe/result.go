package transcribe

// Result represents the result of a speech-to-text transcription
type Result struct {
	Transcript  string // The transcribed text
	Provider    string // The provider used (e.g., "whisper", "hosted")
	RawResponse string // Raw response from the provider (for debugging/logging)
}
