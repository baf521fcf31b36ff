package handlers

import (
	"net/http"

	"pathway/internal/security"
	"pathway/internal/service"
)

type AuthHandler struct {
	auth       *service.AuthService
	goals      *service.GoalService
	engagement *service.EngagementService
	tokens     *security.TokenIssuer
}

func NewAuthHandler(auth *service.AuthService, goals *service.GoalService, engagement *service.EngagementService, tokens *security.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		goals:      goals,
		engagement: engagement,
		tokens:     tokens,
	}
}

// Register creates a new account
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.auth.Register(req.Username, req.Password, req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, profileResponse{
		Username: user.Username,
		Email:    user.Email,
	})
}

// Login verifies credentials, opens a session for the caller's external ID
// and returns a bearer token for it
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.ExternalID == "" {
		respondWithError(w, http.StatusBadRequest, "external_id is required", nil)
		return
	}

	if err := h.auth.Login(req.Username, req.Password, req.ExternalID); err != nil {
		respondServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(req.ExternalID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to issue token", err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// Logout ends the caller's session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(ExternalID(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Profile returns the caller's account together with activity counters
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	externalID := ExternalID(r)

	user, err := h.auth.Profile(externalID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	goals, err := h.goals.ListGoals(externalID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	active := 0
	for _, g := range goals {
		if !g.Completed {
			active++
		}
	}

	friends, err := h.engagement.Friends(externalID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Username:   user.Username,
		Email:      user.Email,
		QuizResult: user.QuizResult,
		Activity:   h.engagement.Activity(externalID),
		Friends:    len(friends),
		Goals:      active,
	})
}
