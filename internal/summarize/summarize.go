// Package summarize produces a bounded-length digest of a transcript.
package summarize

const ellipsis = "..."

// Truncate bounds text to maxLength characters, snapping back to the
// last sentence boundary inside the prefix when one exists. Text at or
// under the bound is returned unchanged, which also makes the function
// idempotent. This is a deterministic placeholder, not semantic
// summarization; SummarizeAI layers the real thing on top of it.
func Truncate(text string, maxLength int) string {
	if maxLength < 1 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	prefix := runes[:maxLength]
	for i := len(prefix) - 1; i >= 0; i-- {
		switch prefix[i] {
		case '.', '!', '?':
			return string(prefix[:i+1])
		}
	}

	return string(prefix) + ellipsis
}
