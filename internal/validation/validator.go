package validation

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	maxNameLength    = 200
	maxMobileLength  = 20
	minMessageLength = 5
)

// ErrInvalidSubmission wraps all field-level validation failures
var ErrInvalidSubmission = errors.New("invalid submission")

// Validator checks patient submissions before they reach the triage service
type Validator struct {
	logger *zap.Logger
}

// NewValidator creates a new submission validator
func NewValidator(logger *zap.Logger) *Validator {
	return &Validator{logger: logger}
}

// ValidateSubmission checks the identifying fields and the message content.
// Mobile is only a grouping key, so no number-format check is applied beyond
// non-emptiness and length.
func (v *Validator) ValidateSubmission(name, mobile, message string) error {
	if strings.TrimSpace(name) == "" {
		return fieldError("name", "cannot be empty")
	}
	if len(name) > maxNameLength {
		return fieldError("name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
	if strings.TrimSpace(mobile) == "" {
		return fieldError("mobile", "cannot be empty")
	}
	if len(mobile) > maxMobileLength {
		return fieldError("mobile", fmt.Sprintf("must be at most %d characters", maxMobileLength))
	}
	if len(strings.TrimSpace(message)) < minMessageLength {
		return fieldError("message", fmt.Sprintf("must be at least %d characters long", minMessageLength))
	}

	if v.logger != nil {
		v.logger.Debug("Submission passed validation", zap.String("mobile", mobile))
	}
	return nil
}

func fieldError(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidSubmission, field, reason)
}
