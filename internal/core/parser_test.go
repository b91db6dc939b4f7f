package core

import (
	"testing"

	"go.uber.org/zap"
)

func newTestParser() *ResponseParser {
	return NewResponseParser(zap.NewNop())
}

func TestParseTwoLineReply(t *testing.T) {
	parser := newTestParser()

	cases := []struct {
		reply      string
		category   Category
		confidence float64
	}{
		{"emergency\n95%", CategoryEmergency, 0.95},
		{"routine\n80%", CategoryRoutine, 0.8},
		{"followup\n70%", CategoryFollowup, 0.7},
		{"other\n50%", CategoryOther, 0.5},
		{"Emergency\n95%", CategoryEmergency, 0.95},
		{"  routine  \n  60%  ", CategoryRoutine, 0.6},
		{"emergency\n87.5%", CategoryEmergency, 0.875},
		{"emergency\n95", CategoryEmergency, 0.95},
	}

	for _, tc := range cases {
		result := parser.Parse(tc.reply)
		if result.Category != tc.category {
			t.Fatalf("reply %q: expected category %s, got %s", tc.reply, tc.category, result.Category)
		}
		if result.Confidence != tc.confidence {
			t.Fatalf("reply %q: expected confidence %v, got %v", tc.reply, tc.confidence, result.Confidence)
		}
	}
}

func TestParseEmptyReply(t *testing.T) {
	parser := newTestParser()

	result := parser.Parse("")
	if result.Category != CategoryOther {
		t.Fatalf("expected category other, got %s", result.Category)
	}
	if result.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %v", result.Confidence)
	}
}

func TestParseSingleLineReply(t *testing.T) {
	parser := newTestParser()

	result := parser.Parse("emergency")
	if result.Category != CategoryOther {
		t.Fatalf("expected category other, got %s", result.Category)
	}
	if result.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5, got %v", result.Confidence)
	}
}

func TestParseNonNumericConfidenceKeepsCategory(t *testing.T) {
	parser := newTestParser()

	result := parser.Parse("emergency\nabc%")
	if result.Category != CategoryEmergency {
		t.Fatalf("expected category emergency, got %s", result.Category)
	}
	if result.Confidence != 0.5 {
		t.Fatalf("expected default confidence 0.5, got %v", result.Confidence)
	}
}

func TestParseMultipleDecimalPointsRejected(t *testing.T) {
	parser := newTestParser()

	result := parser.Parse("emergency\n1.2.3%")
	if result.Category != CategoryEmergency {
		t.Fatalf("expected category emergency, got %s", result.Category)
	}
	if result.Confidence != 0.5 {
		t.Fatalf("expected default confidence 0.5, got %v", result.Confidence)
	}
}

func TestParseLabelledTokenFallback(t *testing.T) {
	parser := newTestParser()

	reply := "I believe this message is not urgent.\nCATEGORY: routine\nCONFIDENCE: 0.8"
	result := parser.Parse(reply)
	if result.Category != CategoryRoutine {
		t.Fatalf("expected category routine, got %s", result.Category)
	}
	// Fallback confidence is already on the 0..1 scale and must not be
	// divided by 100
	if result.Confidence != 0.8 {
		t.Fatalf("expected confidence 0.8, got %v", result.Confidence)
	}
}

func TestParseFallbackCategoryNotRevalidated(t *testing.T) {
	parser := newTestParser()

	reply := "something unexpected\nno percentage here\nCATEGORY: urgent"
	result := parser.Parse(reply)
	if result.Category != Category("urgent") {
		t.Fatalf("expected passthrough category urgent, got %s", result.Category)
	}
}

func TestParseFallbackWithoutTokensDefaultsToOther(t *testing.T) {
	parser := newTestParser()

	result := parser.Parse("banana\n70%")
	if result.Category != CategoryOther {
		t.Fatalf("expected category other, got %s", result.Category)
	}
	// Line 2 was still a valid percentage, so the primary confidence stands
	if result.Confidence != 0.7 {
		t.Fatalf("expected confidence 0.7, got %v", result.Confidence)
	}
}

func TestParseFallbackConfidenceClamped(t *testing.T) {
	parser := newTestParser()

	result := parser.Parse("not a category\nCATEGORY: routine\nCONFIDENCE: 95")
	if result.Category != CategoryRoutine {
		t.Fatalf("expected category routine, got %s", result.Category)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("expected clamped confidence 1.0, got %v", result.Confidence)
	}
}

func TestParseCaseInsensitiveFallbackTokens(t *testing.T) {
	parser := newTestParser()

	result := parser.Parse("unsure\ncategory: Followup\nconfidence: 0.6")
	if result.Category != CategoryFollowup {
		t.Fatalf("expected category followup, got %s", result.Category)
	}
	if result.Confidence != 0.6 {
		t.Fatalf("expected confidence 0.6, got %v", result.Confidence)
	}
}

func TestParseIdempotent(t *testing.T) {
	parser := newTestParser()

	reply := "emergency\n95%"
	first := parser.Parse(reply)
	second := parser.Parse(reply)
	if first != second {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}

func TestParseNeverProducesLegacyFollowupSpelling(t *testing.T) {
	parser := newTestParser()

	result := parser.Parse("follow-up\n80%")
	if result.Category == LegacyCategoryFollowup {
		t.Fatalf("parser must not produce the legacy follow-up spelling")
	}
	if result.Category != CategoryOther {
		t.Fatalf("expected category other, got %s", result.Category)
	}
}
