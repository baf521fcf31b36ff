package handlers

import (
	"net/http"

	"pathway/internal/service"
)

type QuizHandler struct {
	quiz *service.QuizService
}

func NewQuizHandler(quiz *service.QuizService) *QuizHandler {
	return &QuizHandler{quiz: quiz}
}

// Start returns the first question of the requested category
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	question, err := h.quiz.FirstQuestion(ExternalID(r), r.URL.Query().Get("category"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newQuestionView(question))
}

// Categories lists the available quiz categories
func (h *QuizHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.quiz.Categories())
}

// Answer records one quiz answer and returns either the next question or,
// after the final answer, the classification result
func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	outcome, err := h.quiz.SubmitAnswer(ExternalID(r), req.Category, req.Question, req.Choice)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := answerResponse{Next: newQuestionView(outcome.Next)}
	if outcome.Result != nil {
		resp.Result = &quizResultView{
			Category:      outcome.Result.Category,
			LanguageLevel: outcome.Result.Classification.LanguageLevel,
			Institution:   outcome.Result.Classification.Institution,
			Profession:    outcome.Result.Classification.Profession,
			Resources:     outcome.Result.Resources,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Resources returns the curated links for a topic
func (h *QuizHandler) Resources(w http.ResponseWriter, r *http.Request) {
	links, err := h.quiz.Resources(r.URL.Query().Get("topic"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, links)
}

// CareerAdvice returns the advice paragraph for a career topic
func (h *QuizHandler) CareerAdvice(w http.ResponseWriter, r *http.Request) {
	advice, err := h.quiz.CareerAdvice(r.URL.Query().Get("topic"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"advice": advice})
}
