package http

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"quiz-host-service/internal/app"
	"github.com/go-chi/chi/v5/middleware"
)

// TokenTransport is how the session token travels between client and server.
// A deployment uses exactly one.
type TokenTransport interface {
	// Token returns the candidate token, or "" when none was sent.
	Token(r *http.Request) string
	// Issue hands a new token to the client. The returned string is put in
	// the login response body; transports that must not expose the token
	// there return "".
	Issue(w http.ResponseWriter, token string, ttl time.Duration) string
	// Clear tells the client to forget the token.
	Clear(w http.ResponseWriter)
}

// CookieTransport keeps the token in an HttpOnly cookie.
type CookieTransport struct {
	Name   string
	Secure bool
}

func (t CookieTransport) Token(r *http.Request) string {
	c, err := r.Cookie(t.Name)
	if err != nil {
		return ""
	}
	return c.Value
}

func (t CookieTransport) Issue(w http.ResponseWriter, token string, ttl time.Duration) string {
	http.SetCookie(w, &http.Cookie{
		Name:     t.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   t.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	return ""
}

func (t CookieTransport) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// BearerTransport reads "Authorization: Bearer <token>" and returns new
// tokens in the login body.
type BearerTransport struct{}

func (BearerTransport) Token(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (BearerTransport) Issue(_ http.ResponseWriter, token string, _ time.Duration) string {
	return token
}

func (BearerTransport) Clear(http.ResponseWriter) {}

// Guard gates routes behind a verifiable admin session.
type Guard struct {
	sessions  *app.SessionManager
	transport TokenTransport
	logger    *slog.Logger
}

func NewGuard(sessions *app.SessionManager, transport TokenTransport, logger *slog.Logger) *Guard {
	return &Guard{sessions: sessions, transport: transport, logger: logger}
}

// Require rejects requests without a valid session and passes the rest
// through untouched.
func (g *Guard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := g.transport.Token(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		ok, err := g.sessions.VerifyToken(r.Context(), token)
		if err != nil {
			g.logger.Error("session verification failed", "error", err, "path", r.URL.Path)
			writeError(w, http.StatusInternalServerError, "Authentication verification failed")
			return
		}
		if !ok {
			writeError(w, http.StatusForbidden, "Invalid or expired authentication token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Authenticated reports whether r carries a valid session. Failures count as
// anonymous.
func (g *Guard) Authenticated(r *http.Request) bool {
	token := g.transport.Token(r)
	if token == "" {
		return false
	}
	ok, err := g.sessions.VerifyToken(r.Context(), token)
	if err != nil {
		g.logger.Warn("session check failed, treating caller as anonymous", "error", err)
		return false
	}
	return ok
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// recoverer turns panics into a generic 500 without exposing the stack.
func recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						"panic", rvr,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
