package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/anthropics/blocksworld-engine/internal/domain"
)

func TestSessionRepo_InsertAndGet(t *testing.T) {
	dir := t.TempDir()
	db, err := NewDB(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer db.Close()

	repo := &SessionRepo{}
	rec := domain.Session{
		SessionID: "sess-1",
		World:     "small",
		Utterance: "take the white ball",
		Goal:      "holding(e)",
		PlanJSON:  `["Picking up the ball","p"]`,
		Status:    "planned",
		CreatedAt: 1700000000,
	}
	if err := repo.Insert(context.Background(), db, rec); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := repo.GetByID(context.Background(), db, "sess-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *got != rec {
		t.Errorf("GetByID = %+v, want %+v", *got, rec)
	}
}

func TestSessionRepo_GetMissing(t *testing.T) {
	dir := t.TempDir()
	db, err := NewDB(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer db.Close()

	repo := &SessionRepo{}
	_, err = repo.GetByID(context.Background(), db, "nope")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want session-not-found", err)
	}
}

func TestSessionRepo_ListRecent(t *testing.T) {
	dir := t.TempDir()
	db, err := NewDB(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer db.Close()

	repo := &SessionRepo{}
	for i, id := range []string{"s1", "s2", "s3"} {
		rec := domain.Session{
			SessionID: id,
			World:     "small",
			Utterance: "take the ball",
			Status:    "failed",
			Error:     "the description matches several objects",
			CreatedAt: int64(1700000000 + i),
		}
		if err := repo.Insert(context.Background(), db, rec); err != nil {
			t.Fatalf("Insert(%s): %v", id, err)
		}
	}

	sessions, err := repo.ListRecent(context.Background(), db, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("ListRecent = %d sessions, want 2", len(sessions))
	}
	if sessions[0].SessionID != "s3" || sessions[1].SessionID != "s2" {
		t.Errorf("order = %s,%s, want s3,s2", sessions[0].SessionID, sessions[1].SessionID)
	}
}

func TestSessionRepo_DuplicateInsert(t *testing.T) {
	dir := t.TempDir()
	db, err := NewDB(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer db.Close()

	repo := &SessionRepo{}
	rec := domain.Session{SessionID: "dup", World: "small", Utterance: "x", Status: "planned"}
	if err := repo.Insert(context.Background(), db, rec); err != nil {
		t.Fatalf("first Insert: %v", err)
	}

	err = repo.Insert(context.Background(), db, rec)
	var engErr *domain.EngineError
	if !errors.As(err, &engErr) || engErr.Code != domain.ErrStoreWrite.Code {
		t.Errorf("duplicate insert err = %v, want store-write failure", err)
	}
}
