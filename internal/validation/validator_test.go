package validation

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestValidateSubmission(t *testing.T) {
	validator := NewValidator(zap.NewNop())

	tests := []struct {
		name    string
		pName   string
		mobile  string
		message string
		wantErr bool
	}{
		{"valid", "Alice", "0123456789", "chest pain since morning", false},
		{"minimum length message", "Alice", "0123456789", "help!", false},
		{"empty name", "", "0123456789", "chest pain since morning", true},
		{"whitespace name", "   ", "0123456789", "chest pain since morning", true},
		{"name too long", strings.Repeat("a", 201), "0123456789", "chest pain since morning", true},
		{"name at limit", strings.Repeat("a", 200), "0123456789", "chest pain since morning", false},
		{"empty mobile", "Alice", "", "chest pain since morning", true},
		{"mobile too long", "Alice", strings.Repeat("1", 21), "chest pain since morning", true},
		{"mobile at limit", "Alice", strings.Repeat("1", 20), "chest pain since morning", false},
		{"message too short", "Alice", "0123456789", "hi", true},
		{"message only whitespace padding", "Alice", "0123456789", "  hi   ", true},
		{"empty message", "Alice", "0123456789", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateSubmission(tt.pName, tt.mobile, tt.message)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				if !errors.Is(err, ErrInvalidSubmission) {
					t.Fatalf("error should wrap ErrInvalidSubmission, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateSubmissionNonNumericMobileAccepted(t *testing.T) {
	validator := NewValidator(zap.NewNop())

	// Mobile is a grouping key, not a phone-number field
	if err := validator.ValidateSubmission("Alice", "patient-42", "chest pain since morning"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
