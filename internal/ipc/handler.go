// Package ipc provides the HTTP API for the Blocksworld Engine.
package ipc

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anthropics/blocksworld-engine/internal/domain"
	"github.com/anthropics/blocksworld-engine/internal/engine"
	"github.com/anthropics/blocksworld-engine/internal/store"
	"github.com/anthropics/blocksworld-engine/internal/world"
)

// Handler holds all dependencies for the HTTP handlers.
type Handler struct {
	Engine      *engine.Engine
	Worlds      *world.Library
	DB          *sql.DB
	SessionRepo *store.SessionRepo
	Logger      *zap.Logger
}

// PlanRequest is the body for POST /api/v1/plan.
type PlanRequest struct {
	World     string `json:"world"`
	Utterance string `json:"utterance"`
}

// PlanResponse is the response for POST /api/v1/plan.
type PlanResponse struct {
	SessionID string   `json:"session_id"`
	World     string   `json:"world"`
	Utterance string   `json:"utterance"`
	Parses    int      `json:"parses"`
	Goal      string   `json:"goal"`
	Plan      []string `json:"plan"`
}

// APIError is a structured error response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListWorlds handles GET /api/v1/worlds.
func (h *Handler) ListWorlds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Worlds.Names())
}

// GetWorld handles GET /api/v1/worlds/{name}.
func (h *Handler) GetWorld(w http.ResponseWriter, r *http.Request) {
	state, err := h.Worlds.Get(r.PathValue("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// PlanUtterance handles POST /api/v1/plan: the full parse, interpret,
// plan pipeline over a library world, recorded in the session log.
func (h *Handler) PlanUtterance(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIError{Code: 400, Message: "invalid request body"})
		return
	}
	if req.Utterance == "" {
		writeJSON(w, http.StatusBadRequest, APIError{Code: 400, Message: "utterance is required"})
		return
	}

	state, err := h.Worlds.Get(req.World)
	if err != nil {
		writeError(w, err)
		return
	}

	sessionID := uuid.NewString()
	outcome, err := h.Engine.Process(r.Context(), state, req.Utterance)

	rec := domain.Session{
		SessionID: sessionID,
		World:     req.World,
		Utterance: req.Utterance,
		Status:    "planned",
		CreatedAt: time.Now().Unix(),
	}
	if err != nil {
		rec.Status = "failed"
		rec.Error = err.Error()
	} else {
		rec.Goal = outcome.Goal
		planJSON, _ := json.Marshal(outcome.Result.Plan)
		rec.PlanJSON = string(planJSON)
	}
	if h.DB != nil {
		if insErr := h.SessionRepo.Insert(r.Context(), h.DB, rec); insErr != nil && h.Logger != nil {
			h.Logger.Warn("record session", zap.Error(insErr))
		}
	}

	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PlanResponse{
		SessionID: sessionID,
		World:     req.World,
		Utterance: req.Utterance,
		Parses:    outcome.Parses,
		Goal:      outcome.Goal,
		Plan:      outcome.Result.Plan,
	})
}

// ListSessions handles GET /api/v1/sessions?limit=N.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	sessions, err := h.SessionRepo.ListRecent(r.Context(), h.DB, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if sessions == nil {
		sessions = []domain.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

// GetSession handles GET /api/v1/sessions/{sessionID}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.SessionRepo.GetByID(r.Context(), h.DB, r.PathValue("sessionID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var engErr *domain.EngineError
	if errors.As(err, &engErr) {
		status := http.StatusInternalServerError
		switch engErr.Code {
		case domain.ErrWorldNotFound.Code, domain.ErrSessionNotFound.Code:
			status = http.StatusNotFound
		case domain.ErrUnknownWord.Code, domain.ErrNoParse.Code:
			status = http.StatusBadRequest
		case domain.ErrNoMatch.Code, domain.ErrAmbiguity.Code, domain.ErrCannotHoldMany.Code,
			domain.ErrArmEmpty.Code, domain.ErrMultipleInterpretations.Code,
			domain.ErrNoValidInterpretation.Code:
			status = http.StatusUnprocessableEntity
		case domain.ErrNoPath.Code, domain.ErrSearchLimit.Code:
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, APIError{Code: engErr.Code, Message: engErr.Message})
		return
	}
	var amb *domain.AmbiguityError
	if errors.As(err, &amb) {
		writeJSON(w, http.StatusUnprocessableEntity, APIError{Code: amb.Code(), Message: amb.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, APIError{Code: -1, Message: err.Error()})
}
