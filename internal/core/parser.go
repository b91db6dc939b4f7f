package core

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultCategory   = CategoryOther
	defaultConfidence = 0.5
)

var (
	categoryPattern   = regexp.MustCompile(`(?i)CATEGORY:\s*(\w+)`)
	confidencePattern = regexp.MustCompile(`(?i)CONFIDENCE:\s*([\d.]+)`)
)

// ResponseParser turns a free-form model reply into a classification result.
// The model is instructed to answer with two lines (category, then confidence
// percentage) but replies drift; the parser tolerates that drift and never
// fails. A reply it cannot make sense of degrades to (other, 0.5) rather than
// rejecting the patient's message.
type ResponseParser struct {
	logger *zap.Logger
}

// NewResponseParser creates a new response parser
func NewResponseParser(logger *zap.Logger) *ResponseParser {
	return &ResponseParser{logger: logger}
}

// Parse extracts a category and a confidence in [0,1] from a raw model reply.
// It is a pure function of its input and always returns a usable result.
func (p *ResponseParser) Parse(rawReply string) ClassificationResult {
	category := defaultCategory
	confidence := defaultConfidence

	// Primary strategy: the instructed two-line format. Line 1 is the
	// category, line 2 a confidence percentage like "95%".
	lines := strings.Split(strings.TrimSpace(rawReply), "\n")
	if len(lines) >= 2 {
		category = Category(strings.ToLower(strings.TrimSpace(lines[0])))
		if pct, ok := parsePercent(strings.TrimSpace(lines[1])); ok {
			confidence = pct / 100.0
		}
	}

	// Fallback strategy: some models answer with labelled tokens anywhere in
	// the reply ("CATEGORY: routine ... CONFIDENCE: 0.8"). The fallback
	// category is used as-is without re-validation, and the fallback
	// confidence is already on the 0..1 scale, not a percentage.
	if !category.Valid() {
		primary := category
		category = defaultCategory

		if m := categoryPattern.FindStringSubmatch(rawReply); m != nil {
			category = Category(strings.ToLower(m[1]))
		}
		if m := confidencePattern.FindStringSubmatch(rawReply); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				confidence = v
			}
		}

		p.logger.Debug("Primary parse rejected, used labelled-token fallback",
			zap.String("rejected_category", string(primary)),
			zap.String("category", string(category)),
			zap.Float64("confidence", confidence))
	}

	return ClassificationResult{
		Category:   category,
		Confidence: clamp01(confidence),
	}
}

// parsePercent parses a confidence line such as "95%" or "87.5". The string is
// accepted only if removing at most one decimal point leaves nothing but
// digits; anything else is rejected so the caller keeps its current value.
func parsePercent(s string) (float64, bool) {
	s = strings.TrimSuffix(s, "%")
	stripped := strings.Replace(s, ".", "", 1)
	if stripped == "" {
		return 0, false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
