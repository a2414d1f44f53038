package http

import (
	"log/slog"
	"net/http"

	"quiz-host-service/internal/app"
	"quiz-host-service/internal/domain"
	"github.com/go-chi/chi/v5"
)

type ResultHandler struct {
	results *app.ResultService
	logger  *slog.Logger
}

func NewResultHandler(results *app.ResultService, logger *slog.Logger) *ResultHandler {
	return &ResultHandler{results: results, logger: logger}
}

type resultRequest struct {
	QuizID          string                  `json:"quizId"`
	PlayerID        string                  `json:"playerId"`
	QuestionResults []domain.QuestionResult `json:"questionResults"`
}

func (h *ResultHandler) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.results.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to read results")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *ResultHandler) ForQuiz(w http.ResponseWriter, r *http.Request) {
	results, err := h.results.ForQuiz(r.Context(), chi.URLParam(r, "quizId"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to read results")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *ResultHandler) ForPlayer(w http.ResponseWriter, r *http.Request) {
	results, err := h.results.ForPlayer(r.Context(), chi.URLParam(r, "playerId"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to read results")
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Save upserts the result for the submitted quiz/player pair.
func (h *ResultHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req resultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	result, err := h.results.Save(r.Context(), app.ResultInput{
		QuizID:          req.QuizID,
		PlayerID:        req.PlayerID,
		QuestionResults: req.QuestionResults,
	})
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to save result")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *ResultHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.results.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to delete result")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Result deleted successfully"})
}

func (h *ResultHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.results.Leaderboard(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to generate leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *ResultHandler) RankingLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.results.RankingLeaderboard(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to generate ranking leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
