package handlers

import (
	"errors"
	"log"
	"net/http"

	"pathway/internal/repository"
	"pathway/internal/security"
	"pathway/internal/service"
	"pathway/internal/validation"
)

// respondWithError logs the underlying error and replies with a JSON body
func respondWithError(w http.ResponseWriter, status int, userMsg string, err error) {
	if err != nil {
		log.Printf("%s: %v", userMsg, err)
	}
	writeJSON(w, status, errorResponse{Error: userMsg})
}

// respondServiceError maps a service error onto its HTTP status. Unknown
// errors are treated as storage failures and hidden behind a 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr validation.ValidationError

	switch {
	case errors.Is(err, service.ErrUnauthenticated),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken):
		respondWithError(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, repository.ErrUsernameTaken),
		errors.Is(err, service.ErrAlreadyPaired),
		errors.Is(err, service.ErrAlreadyClaimed):
		respondWithError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidSequence),
		errors.Is(err, service.ErrInvalidDueDate),
		errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrUnknownTopic),
		errors.Is(err, service.ErrGoalNotFound),
		errors.Is(err, service.ErrNoPendingRequest),
		errors.Is(err, service.ErrNoLinkedAccount):
		respondWithError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrNotMentor):
		respondWithError(w, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, service.ErrNoMentorsAvailable):
		respondWithError(w, http.StatusServiceUnavailable, err.Error(), nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal error", err)
	}
}
