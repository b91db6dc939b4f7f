package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/mikey/llm-triage/internal/core"
)

// TextProcessor provides utilities for preparing patient text before it is
// sent to the inference backend
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateText safely truncates text to the specified maximum size in bytes
// and ensures the result is valid UTF-8
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]

	// Back off until the cut point is a valid UTF-8 boundary
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Message truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated
}

// SanitizeUTF8 ensures the string contains only valid UTF-8 characters
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
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

// ProcessText truncates, sanitizes and NFC-normalizes patient text in one
// operation. Normalization keeps composed characters stable so the same
// message is presented identically to every provider.
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	truncated := tp.TruncateText(text, maxSize)
	sanitized := tp.SanitizeUTF8(truncated)
	return norm.NFC.String(sanitized)
}

// StripReasoning removes a model's reasoning preamble from a raw reply.
// Reasoning models emit their chain of thought before a delimiter marker
// (deepseek-r1 uses "</think>") and the actual answer after it. An empty
// marker disables splitting for models that answer directly. If the marker is
// configured but absent the reply carries no usable answer segment and
// core.ErrMalformedReply is returned.
func StripReasoning(raw, marker string) (string, error) {
	if marker == "" {
		return raw, nil
	}
	_, after, found := strings.Cut(raw, marker)
	if !found {
		return "", core.ErrMalformedReply
	}
	return after, nil
}
