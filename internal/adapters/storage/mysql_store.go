package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/mikey/llm-triage/internal/core"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the MessageRepository interface
type MySQLStore struct {
	db           *sql.DB
	logger       *zap.Logger
	historyLimit int
}

// NewMySQLStore creates a new MySQL message store. The DSN must include
// parseTime=true so DATETIME columns scan into time.Time.
func NewMySQLStore(dsn string, logger *zap.Logger, historyLimit int) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS patient_messages (
			id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			mobile VARCHAR(20) NOT NULL,
			message TEXT NOT NULL,
			category VARCHAR(20) NOT NULL,
			confidence DOUBLE NOT NULL,
			created_at DATETIME(6) NOT NULL,
			INDEX idx_patient_messages_mobile (mobile)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{
		db:           db,
		logger:       logger,
		historyLimit: historyLimit,
	}, nil
}

// Create appends a new record, assigning its ID and CreatedAt
func (s *MySQLStore) Create(ctx context.Context, msg *core.PatientMessage) (*core.PatientMessage, error) {
	stored := *msg
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO patient_messages (id, name, mobile, message, category, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, stored.ID, stored.Name, stored.Mobile, stored.Message, string(stored.Category), stored.Confidence, stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert patient message: %w", err)
	}

	return &stored, nil
}

// FindByMobile returns all records for a mobile number, newest first
func (s *MySQLStore) FindByMobile(ctx context.Context, mobile string) ([]*core.PatientMessage, error) {
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
		var category string
		if err := rows.Scan(&msg.ID, &msg.Name, &msg.Mobile, &msg.Message, &category, &msg.Confidence, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan patient message: %w", err)
		}
		msg.Category = core.Category(category)
		results = append(results, &msg)
	}

	return results, rows.Err()
}

// Close closes the database connection
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
