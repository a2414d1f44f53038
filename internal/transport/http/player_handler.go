package http

import (
	"log/slog"
	"net/http"

	"quiz-host-service/internal/app"
	"github.com/go-chi/chi/v5"
)

type PlayerHandler struct {
	players *app.PlayerService
	logger  *slog.Logger
}

func NewPlayerHandler(players *app.PlayerService, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{players: players, logger: logger}
}

type playerRequest struct {
	Name string `json:"name"`
}

func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to read players")
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	player, err := h.players.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to read player")
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	player, err := h.players.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to create player")
		return
	}
	writeJSON(w, http.StatusCreated, player)
}

func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	player, err := h.players.Rename(r.Context(), chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to update player")
		return
	}
	writeJSON(w, http.StatusOK, player)
}

func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.players.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, h.logger, err, "Failed to delete player")
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Player deleted successfully"})
}
