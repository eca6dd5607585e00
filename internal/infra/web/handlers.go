package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"homestyle-ai/internal/domain"
	"homestyle-ai/internal/domain/model"
	"homestyle-ai/internal/infra/logging"
	"homestyle-ai/internal/usecase"
)

// handleBrowseDesigns recomputes the filtered catalog view from query
// parameters. Out-of-range pages come back as empty pages, never errors.
func (s *Server) handleBrowseDesigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := model.FilterState{
		RoomType: model.RoomType(q.Get("room_type")),
		Style:    model.Style(q.Get("style")),
		Sort:     model.SortKey(q.Get("sort")),
	}
	if v := q.Get("budget"); v != "" {
		if budget, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.BudgetCeiling = budget
		}
	}
	page, _ := strconv.Atoi(q.Get("page"))

	result, err := s.catalogUC.Browse(r.Context(), f, page)
	if err != nil {
		s.log.Error().Err(err).Msg("catalog browse failed")
		respondError(w, http.StatusInternalServerError, "failed to load designs")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

type selectChatRequest struct {
	ID string `json:"id" validate:"required"`
}

func (s *Server) engineFor(w http.ResponseWriter, r *http.Request) (*usecase.ConsultantEngine, bool) {
	userID, ok := userIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "no user in context")
		return nil, false
	}
	engine, err := s.consultantUC.Engine(r.Context(), userID)
	if err != nil {
		logging.With(r.Context(), s.log).Error().Err(err).Msg("engine init failed")
		respondError(w, http.StatusInternalServerError, "failed to open consultant session")
		return nil, false
	}
	return engine, true
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.engineFor(w, r)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "text is required")
		return
	}

	err := engine.SendMessage(r.Context(), req.Text)
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		// Defined no-op; the client gets the unchanged snapshot.
		respondJSON(w, http.StatusOK, engine.Snapshot())
	case errors.Is(err, domain.ErrInsufficientCredits), errors.Is(err, domain.ErrDailyLimitReached):
		// Quota exhaustion is an expected state, not a failure; the
		// snapshot carries the out-of-credits prompt flag.
		respondJSON(w, http.StatusOK, engine.Snapshot())
	case err != nil:
		respondError(w, http.StatusInternalServerError, "failed to send message")
	default:
		respondJSON(w, http.StatusAccepted, engine.Snapshot())
	}
}

func (s *Server) handleChatState(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.engineFor(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, engine.Snapshot())
}

func (s *Server) handleNewChat(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.engineFor(w, r)
	if !ok {
		return
	}
	engine.NewChat(r.Context())
	respondJSON(w, http.StatusOK, engine.Snapshot())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.engineFor(w, r)
	if !ok {
		return
	}
	summaries, err := engine.History(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("history list failed")
		respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleSelectChat(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.engineFor(w, r)
	if !ok {
		return
	}
	var req selectChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "id is required")
		return
	}
	// Unknown ids are a silent no-op; the snapshot just stays as-is.
	_ = engine.SelectChat(r.Context(), req.ID)
	respondJSON(w, http.StatusOK, engine.Snapshot())
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.engineFor(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "missing session id")
		return
	}
	_ = engine.DeleteChat(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReferral(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.engineFor(w, r)
	if !ok {
		return
	}
	engine.Referral(r.Context())
	respondJSON(w, http.StatusOK, engine.Snapshot())
}

func (s *Server) handleDismissPrompt(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.engineFor(w, r)
	if !ok {
		return
	}
	engine.DismissCreditsPrompt()
	respondJSON(w, http.StatusOK, engine.Snapshot())
}

func (s *Server) handleCredits(w http.ResponseWriter, r *http.Request) {
	engine, ok := s.engineFor(w, r)
	if !ok {
		return
	}
	snap := engine.Snapshot()
	respondJSON(w, http.StatusOK, map[string]int{
		"credits":     snap.Credits,
		"daily_count": snap.DailyCount,
		"daily_max":   snap.DailyMax,
	})
}
