package storage

import (
	"context"
	"testing"

	"github.com/mikey/llm-triage/internal/core"
	"go.uber.org/zap"
)

func createMessage(t *testing.T, store *MemoryStore, mobile, message string, category core.Category) *core.PatientMessage {
	t.Helper()
	record, err := store.Create(context.Background(), &core.PatientMessage{
		Name:       "Alice",
		Mobile:     mobile,
		Message:    message,
		Category:   category,
		Confidence: 0.9,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return record
}

func TestMemoryStoreAssignsIdentity(t *testing.T) {
	store := NewMemoryStore(zap.NewNop(), 0)

	record := createMessage(t, store, "0123456789", "refill please", core.CategoryRoutine)

	if record.ID == "" {
		t.Fatalf("expected an assigned ID")
	}
	if record.CreatedAt.IsZero() {
		t.Fatalf("expected an assigned CreatedAt")
	}
}

func TestMemoryStoreFindByMobileNewestFirst(t *testing.T) {
	store := NewMemoryStore(zap.NewNop(), 0)

	createMessage(t, store, "0123456789", "first", core.CategoryRoutine)
	createMessage(t, store, "0123456789", "second", core.CategoryFollowup)
	createMessage(t, store, "0123456789", "third", core.CategoryEmergency)

	results, err := store.FindByMobile(context.Background(), "0123456789")
	if err != nil {
		t.Fatalf("FindByMobile failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 records, got %d", len(results))
	}
	if results[0].Message != "third" || results[1].Message != "second" || results[2].Message != "first" {
		t.Fatalf("records not in newest-first order: %q, %q, %q",
			results[0].Message, results[1].Message, results[2].Message)
	}
}

func TestMemoryStoreHistoryLimit(t *testing.T) {
	store := NewMemoryStore(zap.NewNop(), 2)

	createMessage(t, store, "0123456789", "first", core.CategoryRoutine)
	createMessage(t, store, "0123456789", "second", core.CategoryRoutine)
	createMessage(t, store, "0123456789", "third", core.CategoryRoutine)

	results, err := store.FindByMobile(context.Background(), "0123456789")
	if err != nil {
		t.Fatalf("FindByMobile failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 records with limit, got %d", len(results))
	}
	if results[0].Message != "third" || results[1].Message != "second" {
		t.Fatalf("limit should keep the newest records, got %q, %q",
			results[0].Message, results[1].Message)
	}
}

func TestMemoryStoreIsolatesMobiles(t *testing.T) {
	store := NewMemoryStore(zap.NewNop(), 0)

	createMessage(t, store, "0123456789", "for alice", core.CategoryRoutine)
	createMessage(t, store, "0987654321", "for bob", core.CategoryOther)

	results, err := store.FindByMobile(context.Background(), "0123456789")
	if err != nil {
		t.Fatalf("FindByMobile failed: %v", err)
	}
	if len(results) != 1 || results[0].Message != "for alice" {
		t.Fatalf("expected only alice's record, got %+v", results)
	}

	empty, err := store.FindByMobile(context.Background(), "0555555555")
	if err != nil {
		t.Fatalf("FindByMobile failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no records for unknown mobile, got %d", len(empty))
	}
}

func TestMemoryStoreCopiesRecords(t *testing.T) {
	store := NewMemoryStore(zap.NewNop(), 0)

	record := createMessage(t, store, "0123456789", "original", core.CategoryRoutine)
	record.Message = "mutated"

	results, err := store.FindByMobile(context.Background(), "0123456789")
	if err != nil {
		t.Fatalf("FindByMobile failed: %v", err)
	}
	if results[0].Message != "original" {
		t.Fatalf("stored record was mutated through the returned pointer")
	}

	results[0].Message = "mutated again"
	again, _ := store.FindByMobile(context.Background(), "0123456789")
	if again[0].Message != "original" {
		t.Fatalf("stored record was mutated through a query result")
	}
}
