package core

import (
	"context"
)

// LLMClient defines the interface for interacting with the inference backend
type LLMClient interface {
	// Classify submits a patient message for triage and returns the raw model
	// reply with any reasoning preamble already stripped. Failures are one of
	// ErrBackendUnreachable, *BackendError or ErrMalformedReply.
	Classify(ctx context.Context, message string) (string, error)
}

// MessageRepository defines the interface for the patient message store
type MessageRepository interface {
	// Create appends a new record, assigning its ID and CreatedAt. Records are
	// never updated or deleted afterwards.
	Create(ctx context.Context, msg *PatientMessage) (*PatientMessage, error)

	// FindByMobile returns all records for a mobile number, newest first. The
	// store guarantees read-after-write visibility for the same mobile number.
	FindByMobile(ctx context.Context, mobile string) ([]*PatientMessage, error)
}
