package ipc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/engine"
	"github.com/anthropics/blocksworld-engine/internal/store"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	lib, err := world.NewLibrary()
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}
	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h := &Handler{
		Engine:      engine.New(0),
		Worlds:      lib,
		DB:          db,
		SessionRepo: &store.SessionRepo{},
		Logger:      zap.NewNop(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/worlds", h.ListWorlds)
	mux.HandleFunc("GET /api/v1/worlds/{name}", h.GetWorld)
	mux.HandleFunc("POST /api/v1/plan", h.PlanUtterance)
	mux.HandleFunc("GET /api/v1/sessions", h.ListSessions)
	mux.HandleFunc("GET /api/v1/sessions/{sessionID}", h.GetSession)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postPlan(t *testing.T, srv *httptest.Server, body PlanRequest) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := http.Post(srv.URL+"/api/v1/plan", "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST /plan: %v", err)
	}
	return resp
}

func TestHandler_Health(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestHandler_ListWorlds(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/worlds")
	if err != nil {
		t.Fatalf("GET /worlds: %v", err)
	}
	defer resp.Body.Close()

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(names) != 3 {
		t.Errorf("worlds = %v, want 3", names)
	}
}

func TestHandler_GetWorld(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/worlds/small")
	if err != nil {
		t.Fatalf("GET /worlds/small: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var state world.State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Columns() != 5 {
		t.Errorf("small world columns = %d, want 5", state.Columns())
	}

	resp, err = http.Get(srv.URL + "/api/v1/worlds/atlantis")
	if err != nil {
		t.Fatalf("GET /worlds/atlantis: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown world status = %d, want 404", resp.StatusCode)
	}
}

func TestHandler_PlanAndSessionLog(t *testing.T) {
	srv := testServer(t)

	resp := postPlan(t, srv, PlanRequest{World: "small", Utterance: "take the white ball"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var planResp PlanResponse
	if err := json.NewDecoder(resp.Body).Decode(&planResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if planResp.Goal != "holding(e)" {
		t.Errorf("goal = %q, want holding(e)", planResp.Goal)
	}
	if len(planResp.Plan) != 2 {
		t.Errorf("plan = %v, want one message and one token", planResp.Plan)
	}
	if planResp.SessionID == "" {
		t.Error("missing session id")
	}

	// The session must be retrievable from the log.
	got, err := http.Get(srv.URL + "/api/v1/sessions/" + planResp.SessionID)
	if err != nil {
		t.Fatalf("GET /sessions/{id}: %v", err)
	}
	defer got.Body.Close()
	if got.StatusCode != http.StatusOK {
		t.Fatalf("session status = %d", got.StatusCode)
	}
	var session domain.Session
	if err := json.NewDecoder(got.Body).Decode(&session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.Status != "planned" || session.Goal != "holding(e)" {
		t.Errorf("session = %+v", session)
	}
}

func TestHandler_PlanFailuresMapToStatusCodes(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name       string
		req        PlanRequest
		wantStatus int
	}{
		{"unknown world", PlanRequest{World: "atlantis", Utterance: "take the ball"}, http.StatusNotFound},
		{"empty utterance", PlanRequest{World: "small"}, http.StatusBadRequest},
		{"unknown word", PlanRequest{World: "small", Utterance: "take the unicorn"}, http.StatusBadRequest},
		{"ambiguous", PlanRequest{World: "small", Utterance: "take the ball"}, http.StatusUnprocessableEntity},
		{"no match", PlanRequest{World: "small", Utterance: "take the pyramid"}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postPlan(t, srv, tt.req)
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestHandler_ListSessionsIncludesFailures(t *testing.T) {
	srv := testServer(t)

	postPlan(t, srv, PlanRequest{World: "small", Utterance: "take the white ball"}).Body.Close()
	postPlan(t, srv, PlanRequest{World: "small", Utterance: "take the ball"}).Body.Close()

	resp, err := http.Get(srv.URL + "/api/v1/sessions")
	if err != nil {
		t.Fatalf("GET /sessions: %v", err)
	}
	defer resp.Body.Close()

	var sessions []domain.Session
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	statuses := map[string]bool{}
	for _, s := range sessions {
		statuses[s.Status] = true
	}
	if !statuses["planned"] || !statuses["failed"] {
		t.Errorf("want one planned and one failed session, got %+v", sessions)
	}
}
