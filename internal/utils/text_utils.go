package utils

import (
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor normalizes submitted message bodies before they are sent to
// the API.
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor.
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// Truncate cuts text down to at most maxSize bytes without splitting a
// UTF-8 sequence. A maxSize of zero or less disables truncation.
func (tp *TextProcessor) Truncate(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Message truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated
}

// Sanitize drops invalid UTF-8 sequences from text. Browser form posts are
// normally clean but automated submitters send whatever they like.
func (tp *TextProcessor) Sanitize(text string) string {
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

	tp.logger.Debug("Message sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(string(result))))

	return string(result)
}

// Process sanitizes and truncates text in one step.
func (tp *TextProcessor) Process(text string, maxSize int) string {
	return tp.Truncate(tp.Sanitize(text), maxSize)
}
