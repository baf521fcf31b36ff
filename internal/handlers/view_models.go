package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"pathway/internal/models"
	"pathway/internal/service"
)

// errorResponse is the body of every non-2xx reply
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	ExternalID string `json:"external_id"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type profileResponse struct {
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
	QuizResult string `json:"quiz_result,omitempty"`
	Activity   int    `json:"activity"`
	Friends    int    `json:"friends"`
	Goals      int    `json:"active_goals"`
}

type answerRequest struct {
	Category string `json:"category"`
	Question int    `json:"question"`
	Choice   string `json:"choice"`
}

type questionView struct {
	Index   int               `json:"index"`
	Text    string            `json:"text"`
	Choices map[string]string `json:"choices"`
}

type quizResultView struct {
	Category      string   `json:"category"`
	LanguageLevel string   `json:"language_level"`
	Institution   string   `json:"institution"`
	Profession    string   `json:"profession"`
	Resources     []string `json:"resources"`
}

type answerResponse struct {
	Next   *questionView   `json:"next,omitempty"`
	Result *quizResultView `json:"result,omitempty"`
}

type assignmentResponse struct {
	MentorID string `json:"mentor_id"`
	Position int    `json:"position"`
}

type acceptRequest struct {
	MenteeID string `json:"mentee_id"`
}

type goalRequest struct {
	Text    string `json:"text"`
	DueDate string `json:"due_date,omitempty"`
}

type goalView struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	DueDate   string `json:"due_date,omitempty"`
	Completed bool   `json:"completed"`
}

type completeGoalRequest struct {
	ID int64 `json:"id"`
}

type friendRequest struct {
	FriendID string `json:"friend_id"`
}

type scoreView struct {
	ExternalID string `json:"external_id"`
	Activity   int    `json:"activity"`
}

func newQuestionView(q *service.Question) *questionView {
	if q == nil {
		return nil
	}
	return &questionView{Index: q.Index, Text: q.Text, Choices: q.Choices}
}

func newGoalView(g models.Goal) goalView {
	view := goalView{ID: g.ID, Text: g.Text, Completed: g.Completed}
	if g.DueDate != nil {
		view.DueDate = g.DueDate.Format("2006-01-02")
	}
	return view
}

// writeJSON renders a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// decodeJSON parses a request body into dst, rejecting unknown fields
func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
