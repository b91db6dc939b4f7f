package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// TriageService is the core service for patient message triage
type TriageService struct {
	llmClient LLMClient
	repo      MessageRepository
	parser    *ResponseParser
	logger    *zap.Logger
}

// NewTriageService creates a new triage service
func NewTriageService(
	llmClient LLMClient,
	repo MessageRepository,
	parser *ResponseParser,
	logger *zap.Logger,
) *TriageService {
	return &TriageService{
		llmClient: llmClient,
		repo:      repo,
		parser:    parser,
		logger:    logger,
	}
}

// Submit classifies a patient message and persists the result. Backend and
// storage failures abort the submission before anything is written; parse
// quality never does. The history is fetched before the new record is created,
// so a record never appears in its own history.
func (s *TriageService) Submit(ctx context.Context, req SubmissionRequest) (*SubmissionResult, error) {
	rawReply, err := s.llmClient.Classify(ctx, req.Message)
	if err != nil {
		return nil, err
	}

	result := s.parser.Parse(rawReply)
	s.logger.Info("Classified patient message",
		zap.String("mobile", req.Mobile),
		zap.String("category", string(result.Category)),
		zap.Float64("confidence", result.Confidence))

	previous, err := s.repo.FindByMobile(ctx, req.Mobile)
	if err != nil {
		return nil, fmt.Errorf("failed to load message history: %w", err)
	}

	stored, err := s.repo.Create(ctx, &PatientMessage{
		Name:       req.Name,
		Mobile:     req.Mobile,
		Message:    req.Message,
		Category:   result.Category,
		Confidence: result.Confidence,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store classified message: %w", err)
	}

	return &SubmissionResult{
		CurrentResult: result,
		History:       buildHistory(previous),
		RawReply:      rawReply,
		Timestamp:     stored.CreatedAt.Format(ResponseTimeLayout),
	}, nil
}

// buildHistory converts stored records (already newest first) into the
// timeline entries returned to the caller
func buildHistory(records []*PatientMessage) []HistoryEntry {
	history := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		history = append(history, HistoryEntry{
			Message:    rec.Message,
			Category:   rec.Category,
			Confidence: rec.Confidence,
			Timestamp:  rec.CreatedAt.Format(HistoryTimeLayout),
		})
	}
	return history
}
