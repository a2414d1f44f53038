package http

import (
	"log/slog"
	"net/http"

	"quiz-host-service/internal/app"
	"github.com/gorilla/websocket"
)

// WSHandler pushes leaderboard snapshots to connected scoreboards.
type WSHandler struct {
	results  *app.ResultService
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewWSHandler(results *app.ResultService, logger *slog.Logger) *WSHandler {
	return &WSHandler{
		results: results,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeLeaderboard upgrades the request and streams both leaderboards until
// the client goes away.
func (h *WSHandler) ServeLeaderboard(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel, err := h.results.Subscribe(r.Context())
	if err != nil {
		h.logger.Error("leaderboard subscribe failed", "error", err)
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "Failed to generate leaderboard"}})
		return
	}
	defer cancel()

	// The read loop only detects the client closing; scoreboards never send.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case lb, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage[any]{Type: "leaderboard", Payload: lb}); err != nil {
				h.logger.Debug("ws write error", "error", err)
				return
			}
		case <-closed:
			return
		}
	}
}
