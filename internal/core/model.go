package core

import (
	"time"
)

// Category is a triage label assigned to a patient message
type Category string

const (
	CategoryEmergency Category = "emergency"
	CategoryRoutine   Category = "routine"
	CategoryFollowup  Category = "followup"
	CategoryOther     Category = "other"
)

// LegacyCategoryFollowup is a hyphenated spelling present in rows written by an
// earlier schema revision. The parser never produces it and the API schema does
// not accept it on input; stores pass it through unchanged when it shows up in
// history.
const LegacyCategoryFollowup Category = "follow-up"

// Valid reports whether the category is one of the four canonical labels
func (c Category) Valid() bool {
	switch c {
	case CategoryEmergency, CategoryRoutine, CategoryFollowup, CategoryOther:
		return true
	}
	return false
}

// Categories lists the canonical triage labels exposed to API callers
func Categories() []Category {
	return []Category{CategoryEmergency, CategoryRoutine, CategoryFollowup, CategoryOther}
}

// PatientMessage is a stored, classified patient message. Records are
// append-only: once created they are never updated or deleted by this service.
type PatientMessage struct {
	ID         string
	Name       string
	Mobile     string
	Message    string
	Category   Category
	Confidence float64
	CreatedAt  time.Time
}

// ClassificationResult is the normalized output of the response parser
type ClassificationResult struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
}

// HistoryEntry is one prior message in a patient's timeline
type HistoryEntry struct {
	Message    string   `json:"message"`
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
	Timestamp  string   `json:"timestamp"`
}

// SubmissionRequest carries the validated fields of a patient submission
type SubmissionRequest struct {
	Name    string
	Mobile  string
	Message string
}

// SubmissionResult is the full outcome of a classified submission: the current
// classification, the patient's prior messages (newest first, excluding the
// record just created), the raw model reply and the processing timestamp.
type SubmissionResult struct {
	CurrentResult ClassificationResult `json:"current_result"`
	History       []HistoryEntry       `json:"history"`
	RawReply      string               `json:"ai_response"`
	Timestamp     string               `json:"timestamp"`
}

// Timestamp layouts used in API payloads
const (
	// HistoryTimeLayout formats timestamps of prior messages
	HistoryTimeLayout = "2006-01-02 15:04"
	// ResponseTimeLayout formats the top-level processing timestamp
	ResponseTimeLayout = "15:04"
)
