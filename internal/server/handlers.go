package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type selectPlanRequest struct {
	PlanID uuid.UUID `json:"plan_id"`
}

type selectDayRequest struct {
	Weekday string `json:"weekday"`
}

type selectExerciseRequest struct {
	Index int `json:"index"`
}

type setValuesRequest struct {
	Reps   *int     `json:"reps"`
	Weight *float64 `json:"weight"`
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	plans := s.engine.Plans()
	if plans == nil {
		plans = []models.WorkoutPlan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.engine.Load(r.Context()))
}

func (s *Server) handleSelectPlan(w http.ResponseWriter, r *http.Request) {
	var req selectPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.PlanID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "plan_id is required")
		return
	}
	s.respond(w, s.engine.SelectPlan(r.Context(), req.PlanID))
}

func (s *Server) handleSelectDay(w http.ResponseWriter, r *http.Request) {
	var req selectDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	wd, err := models.ParseWeekday(req.Weekday)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respond(w, s.engine.SelectDay(r.Context(), wd))
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.engine.StartSession())
}

func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	rec, err := s.engine.FinishSession(r.Context())
	if err != nil {
		s.writeIntentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	s.respond(w, s.engine.CancelSession())
}

func (s *Server) handleSelectExercise(w http.ResponseWriter, r *http.Request) {
	var req selectExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	s.respond(w, s.engine.SelectExercise(req.Index))
}

func (s *Server) handleClearError(w http.ResponseWriter, r *http.Request) {
	s.engine.ClearError()
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	id, ok := exerciseID(w, r)
	if !ok {
		return
	}
	s.respond(w, s.engine.AddSet(id))
}

func (s *Server) handleBulkEditSets(w http.ResponseWriter, r *http.Request) {
	id, ok := exerciseID(w, r)
	if !ok {
		return
	}
	reps, weight, ok := setValues(w, r)
	if !ok {
		return
	}
	s.respond(w, s.engine.BulkEditSets(id, reps, weight))
}

func (s *Server) handleEditSet(w http.ResponseWriter, r *http.Request) {
	id, ok := exerciseID(w, r)
	if !ok {
		return
	}
	index, ok := setIndex(w, r)
	if !ok {
		return
	}
	reps, weight, ok := setValues(w, r)
	if !ok {
		return
	}
	s.respond(w, s.engine.EditSet(id, index, reps, weight))
}

func (s *Server) handleToggleSet(w http.ResponseWriter, r *http.Request) {
	id, ok := exerciseID(w, r)
	if !ok {
		return
	}
	index, ok := setIndex(w, r)
	if !ok {
		return
	}
	s.respond(w, s.engine.ToggleSetCompletion(id, index))
}

func (s *Server) handleCompleteExercise(w http.ResponseWriter, r *http.Request) {
	id, ok := exerciseID(w, r)
	if !ok {
		return
	}
	s.respond(w, s.engine.MarkExerciseComplete(id))
}

// respond writes the engine state after a successful intent, or the mapped
// error otherwise.
func (s *Server) respond(w http.ResponseWriter, err error) {
	if err != nil {
		s.writeIntentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.State())
}

func (s *Server) writeIntentError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("intent failed", "error", err)
	}
	writeError(w, status, err.Error())
}

// errorStatus maps engine errors to HTTP status codes.
func errorStatus(err error) int {
	var perr *session.PersistenceError
	switch {
	case errors.Is(err, session.ErrPlanNotFound), errors.Is(err, session.ErrExerciseNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrInvalidSetIndex):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNoPlanSelected),
		errors.Is(err, session.ErrNoDaySelected),
		errors.Is(err, session.ErrSessionInProgress),
		errors.Is(err, session.ErrNoActiveSession):
		return http.StatusConflict
	case errors.As(err, &perr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func exerciseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid exercise id")
		return uuid.Nil, false
	}
	return id, true
}

func setIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid set index")
		return 0, false
	}
	return index, true
}

func setValues(w http.ResponseWriter, r *http.Request) (int, float64, bool) {
	var req setValuesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return 0, 0, false
	}
	if req.Reps == nil || req.Weight == nil {
		writeError(w, http.StatusBadRequest, "reps and weight are required")
		return 0, 0, false
	}
	if *req.Reps < 0 || *req.Weight < 0 {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("reps and weight must not be negative (got %d, %v)", *req.Reps, *req.Weight))
		return 0, 0, false
	}
	return *req.Reps, *req.Weight, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
