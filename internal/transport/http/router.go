package http

import (
	"log/slog"
	"net/http"

	"quiz-host-service/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Sessions       *app.SessionManager
	Transport      TokenTransport
	Quizzes        *app.QuizService
	Players        *app.PlayerService
	Results        *app.ResultService
	Media          *app.MediaService
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewRouter wires every route. Reads are public; mutations sit behind the
// guard.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	guard := NewGuard(d.Sessions, d.Transport, logger)
	auth := NewAuthHandler(d.Sessions, d.Transport, logger)
	quizzes := NewQuizHandler(d.Quizzes, guard, logger)
	players := NewPlayerHandler(d.Players, logger)
	results := NewResultHandler(d.Results, logger)
	uploads := NewUploadHandler(d.Media, logger)
	ws := NewWSHandler(d.Results, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/uploads/{name}", uploads.Serve)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/auth/login", auth.Login)
		r.Post("/auth/verify", auth.Verify)
		r.Post("/auth/logout", auth.Logout)

		r.Get("/quizzes", quizzes.List)
		r.Get("/quizzes/{id}", quizzes.Get)
		r.Get("/players", players.List)
		r.Get("/players/{id}", players.Get)
		r.Get("/results", results.List)
		r.Get("/results/quiz/{quizId}", results.ForQuiz)
		r.Get("/results/player/{playerId}", results.ForPlayer)
		r.Get("/results/leaderboard", results.Leaderboard)
		r.Get("/results/leaderboard/ranking", results.RankingLeaderboard)
		r.Get("/results/leaderboard/ws", ws.ServeLeaderboard)

		r.Group(func(r chi.Router) {
			r.Use(guard.Require)

			r.Post("/quizzes", quizzes.Create)
			r.Put("/quizzes/{id}", quizzes.Update)
			r.Delete("/quizzes/{id}", quizzes.Delete)
			r.Post("/quizzes/{id}/questions", quizzes.AddQuestion)
			r.Put("/quizzes/{id}/questions/{questionId}", quizzes.UpdateQuestion)
			r.Delete("/quizzes/{id}/questions/{questionId}", quizzes.DeleteQuestion)

			r.Post("/players", players.Create)
			r.Put("/players/{id}", players.Update)
			r.Delete("/players/{id}", players.Delete)

			r.Post("/results", results.Save)
			r.Delete("/results/{id}", results.Delete)

			r.Post("/upload", uploads.Upload)
		})
	})

	return r
}
