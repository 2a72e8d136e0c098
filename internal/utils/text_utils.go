package utils

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor prepares email bodies for prompt construction: truncation to
// a byte budget and UTF-8 sanitization.
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor.
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{logger: logger}
}

// TruncateBody truncates a body to maxSize bytes on a valid UTF-8 boundary.
// A non-positive maxSize disables truncation.
func (tp *TextProcessor) TruncateBody(body string, maxSize int) string {
	if maxSize <= 0 || len(body) <= maxSize {
		return body
	}

	truncated := body[:maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Email body truncated for prompt",
		zap.Int("original_size", len(body)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated
}

// SanitizeUTF8 drops invalid UTF-8 sequences from the string.
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				continue
			}
		}
		result = append(result, r)
	}
	return string(result)
}

// PrepareBody truncates and sanitizes a body in one step.
func (tp *TextProcessor) PrepareBody(body string, maxSize int) string {
	return tp.SanitizeUTF8(tp.TruncateBody(body, maxSize))
}
