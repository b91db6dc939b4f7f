package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/llm-triage/internal/core"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the MessageRepository interface
type SQLiteStore struct {
	db           *sql.DB
	logger       *zap.Logger
	historyLimit int
}

// NewSQLiteStore creates a new SQLite message store
func NewSQLiteStore(dbPath string, logger *zap.Logger, historyLimit int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Category is stored as free text on purpose: rows written by an earlier
	// schema revision carry the hyphenated "follow-up" spelling and must keep
	// reading back unchanged.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS patient_messages (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			mobile TEXT NOT NULL,
			message TEXT NOT NULL,
			category TEXT NOT NULL,
			confidence REAL NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_patient_messages_mobile ON patient_messages(mobile)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &SQLiteStore{
		db:           db,
		logger:       logger,
		historyLimit: historyLimit,
	}, nil
}

// Create appends a new record, assigning its ID and CreatedAt
func (s *SQLiteStore) Create(ctx context.Context, msg *core.PatientMessage) (*core.PatientMessage, error) {
	stored := *msg
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO patient_messages (id, name, mobile, message, category, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, stored.ID, stored.Name, stored.Mobile, stored.Message, string(stored.Category), stored.Confidence, stored.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("failed to insert patient message: %w", err)
	}

	return &stored, nil
}

// FindByMobile returns all records for a mobile number, newest first
func (s *SQLiteStore) FindByMobile(ctx context.Context, mobile string) ([]*core.PatientMessage, error) {
	query := `
		SELECT id, name, mobile, message, category, confidence, created_at
		FROM patient_messages
		WHERE mobile = ?
		ORDER BY created_at DESC
	`
	args := []interface{}{mobile}
	if s.historyLimit > 0 {
		query += " LIMIT ?"
		args = append(args, s.historyLimit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query patient messages: %w", err)
	}
	defer rows.Close()

	var results []*core.PatientMessage
	for rows.Next() {
		var msg core.PatientMessage
		var category, createdAt string
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Mobile, &msg.Message, &category, &msg.Confidence, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan patient message: %w", err)
		}
		msg.Category = core.Category(category)
		msg.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			s.logger.Error("Failed to parse created_at timestamp",
				zap.Error(err), zap.String("id", msg.ID))
			continue
		}
		results = append(results, &msg)
	}

	return results, rows.Err()
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
