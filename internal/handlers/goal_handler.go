package handlers

import (
	"net/http"

	"pathway/internal/service"
)

type GoalHandler struct {
	goals *service.GoalService
}

func NewGoalHandler(goals *service.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

// Add creates a goal for the caller, optionally with a YYYY-MM-DD due date
func (h *GoalHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Text == "" {
		respondWithError(w, http.StatusBadRequest, "goal text is required", nil)
		return
	}

	goal, err := h.goals.AddGoal(ExternalID(r), req.Text, req.DueDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newGoalView(*goal))
}

// List returns all of the caller's goals
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goals.ListGoals(ExternalID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, newGoalView(g))
	}
	writeJSON(w, http.StatusOK, views)
}

// Complete marks one of the caller's goals as done
func (h *GoalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.goals.CompleteGoal(ExternalID(r), req.ID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
