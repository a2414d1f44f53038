package http

import (
	"errors"
	"log/slog"
	"net/http"

	"quiz-host-service/internal/app"
	"quiz-host-service/internal/domain"
)

type AuthHandler struct {
	sessions  *app.SessionManager
	transport TokenTransport
	logger    *slog.Logger
}

func NewAuthHandler(sessions *app.SessionManager, transport TokenTransport, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, transport: transport, logger: logger}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

// Login exchanges the admin password for a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Password is required")
		return
	}

	token, err := h.sessions.CreateSession(r.Context(), req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		h.logger.Warn("admin login rejected", "remote", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	}
	if err != nil {
		h.logger.Error("create session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	body := h.transport.Issue(w, token, h.sessions.Lifetime())
	h.logger.Info("admin logged in", "remote", r.RemoteAddr)
	writeJSON(w, http.StatusOK, loginResponse{Message: "Login successful", Token: body})
}

// Verify reports whether the presented token is still valid. It never fails.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := h.transport.Token(r)
	if token == "" {
		writeJSON(w, http.StatusOK, verifyResponse{Valid: false})
		return
	}
	ok, err := h.sessions.VerifyToken(r.Context(), token)
	if err != nil {
		h.logger.Error("verify session failed", "error", err)
		ok = false
	}
	writeJSON(w, http.StatusOK, verifyResponse{Valid: ok})
}

// Logout drops the presented session, if any. Always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := h.transport.Token(r); token != "" {
		if err := h.sessions.RemoveSession(r.Context(), token); err != nil {
			h.logger.Error("remove session failed", "error", err)
		}
	}
	h.transport.Clear(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}
