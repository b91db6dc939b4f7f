package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/llm-triage/internal/core"
	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of the MessageRepository
// interface. Records are held per mobile number in creation order.
type MemoryStore struct {
	messages     map[string][]*core.PatientMessage
	mu           sync.RWMutex
	logger       *zap.Logger
	historyLimit int
}

// NewMemoryStore creates a new in-memory message store. historyLimit bounds
// FindByMobile results; 0 means unbounded.
func NewMemoryStore(logger *zap.Logger, historyLimit int) *MemoryStore {
	return &MemoryStore{
		messages:     make(map[string][]*core.PatientMessage),
		logger:       logger,
		historyLimit: historyLimit,
	}
}

// Create appends a new record, assigning its ID and CreatedAt
func (s *MemoryStore) Create(ctx context.Context, msg *core.PatientMessage) (*core.PatientMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *msg
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	s.messages[stored.Mobile] = append(s.messages[stored.Mobile], &stored)

	s.logger.Debug("Stored patient message",
		zap.String("id", stored.ID),
		zap.String("mobile", stored.Mobile),
		zap.String("category", string(stored.Category)))

	record := stored
	return &record, nil
}

// FindByMobile returns all records for a mobile number, newest first
func (s *MemoryStore) FindByMobile(ctx context.Context, mobile string) ([]*core.PatientMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.messages[mobile]
	results := make([]*core.PatientMessage, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		record := *stored[i]
		results = append(results, &record)
		if s.historyLimit > 0 && len(results) >= s.historyLimit {
			break
		}
	}

	return results, nil
}
