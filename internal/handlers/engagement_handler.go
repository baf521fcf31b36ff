package handlers

import (
	"net/http"
	"strconv"

	"pathway/internal/service"
)

const defaultLeaderboardSize = 10

type EngagementHandler struct {
	engagement *service.EngagementService
}

func NewEngagementHandler(engagement *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagement: engagement}
}

// ClaimDaily credits the once-per-day activity reward
func (h *EngagementHandler) ClaimDaily(w http.ResponseWriter, r *http.Request) {
	externalID := ExternalID(r)
	if err := h.engagement.ClaimDailyReward(externalID); err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreView{
		ExternalID: externalID,
		Activity:   h.engagement.Activity(externalID),
	})
}

// Leaderboard returns the most active users, highest first
func (h *EngagementHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "invalid limit", err)
			return
		}
		limit = parsed
	}

	scores := h.engagement.Leaderboard(limit)
	views := make([]scoreView, 0, len(scores))
	for _, s := range scores {
		views = append(views, scoreView{ExternalID: s.ExternalID, Activity: s.Activity})
	}
	writeJSON(w, http.StatusOK, views)
}

// AddFriend records a friendship edge for the caller
func (h *EngagementHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	var req friendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.FriendID == "" {
		respondWithError(w, http.StatusBadRequest, "friend_id is required", nil)
		return
	}

	if err := h.engagement.AddFriend(ExternalID(r), req.FriendID); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Friends lists the caller's friends in sorted order
func (h *EngagementHandler) Friends(w http.ResponseWriter, r *http.Request) {
	friends, err := h.engagement.Friends(ExternalID(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friends)
}
