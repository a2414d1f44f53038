package http

import (
	"log/slog"
	"net/http"

	"quiz-host-service/internal/app"
	"github.com/go-chi/chi/v5"
)

// QuizHandler serves quizzes and their questions. Reads are public but
// sanitized for anonymous callers.
type QuizHandler struct {
	quizzes *app.QuizService
	guard   *Guard
	logger  *slog.Logger
}

func NewQuizHandler(quizzes *app.QuizService, guard *Guard, logger *slog.Logger) *QuizHandler {
	return &QuizHandler{quizzes: quizzes, guard: guard, logger: logger}
}

type quizRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type questionRequest struct {
	QuestionText  string     `json:"questionText"`
	Type          string     `json:"type"`
	MediaType     string     `json:"mediaType"`
	MediaPath     *string    `json:"mediaPath"`
	MaxPoints     flexNumber `json:"maxPoints"`
	Options       []string   `json:"options"`
	CorrectAnswer string     `json:"correctAnswer"`
}

func (req questionRequest) input() app.QuestionInput {
	in := app.QuestionInput{
		QuestionText:  req.QuestionText,
		Type:          req.Type,
		MediaType:     req.MediaType,
		MaxPoints:     float64(req.MaxPoints),
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
	}
	if req.MediaPath != nil {
		in.MediaPath = *req.MediaPath
	}
	return in
}

func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizzes.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to read quizzes")
		return
	}
	if !h.guard.Authenticated(r) {
		quizzes = app.SanitizeQuizzes(quizzes)
	}
	writeJSON(w, http.StatusOK, quizzes)
}

func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to read quiz")
		return
	}
	if !h.guard.Authenticated(r) {
		quiz = app.SanitizeQuiz(quiz)
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	quiz, err := h.quizzes.Create(r.Context(), app.QuizInput{Title: req.Title, Description: req.Description})
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to create quiz")
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

func (h *QuizHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	quiz, err := h.quizzes.Update(r.Context(), chi.URLParam(r, "id"), app.QuizInput{Title: req.Title, Description: req.Description})
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to update quiz")
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.quizzes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to delete quiz")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Quiz deleted successfully"})
}

func (h *QuizHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	question, err := h.quizzes.AddQuestion(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to add question")
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

func (h *QuizHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	question, err := h.quizzes.UpdateQuestion(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "questionId"), req.input())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to update question")
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (h *QuizHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.quizzes.DeleteQuestion(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "questionId")); err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to delete question")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Question deleted successfully"})
}
