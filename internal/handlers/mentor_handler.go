package handlers

import (
	"net/http"

	"pathway/internal/service"
)

type MentorHandler struct {
	mentors *service.MentorService
}

func NewMentorHandler(mentors *service.MentorService) *MentorHandler {
	return &MentorHandler{mentors: mentors}
}

// Register adds the caller to the mentor directory
func (h *MentorHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := h.mentors.RegisterMentor(ExternalID(r)); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Request queues the caller with the least-loaded mentor
func (h *MentorHandler) Request(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.mentors.RequestMentor(r.Context(), ExternalID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignmentResponse{
		MentorID: assignment.MentorID,
		Position: assignment.Position,
	})
}

// Accept pairs the calling mentor with a pending mentee
func (h *MentorHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req acceptRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.mentors.AcceptMentee(r.Context(), ExternalID(r), req.MenteeID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
