package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"quiz-host-service/internal/domain"
	"github.com/google/uuid"
)

// ResultInput is a result submission.
type ResultInput struct {
	QuizID          string
	PlayerID        string
	QuestionResults []domain.QuestionResult
}

// ResultService records scores and builds leaderboards.
type ResultService struct {
	store  DocumentStore
	now    func() time.Time
	newID  func() string
	hub    *leaderboardHub
	logger *slog.Logger
	mu     sync.Mutex
}

func NewResultService(store DocumentStore, logger *slog.Logger) *ResultService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultService{
		store:  store,
		now:    time.Now,
		newID:  uuid.NewString,
		hub:    newLeaderboardHub(),
		logger: logger,
	}
}

func (s *ResultService) List(ctx context.Context) ([]domain.Result, error) {
	return loadAll[domain.Result](ctx, s.store, ResultsCollection)
}

// ForQuiz returns every result recorded for quizID.
func (s *ResultService) ForQuiz(ctx context.Context, quizID string) ([]domain.Result, error) {
	return s.filter(ctx, func(r domain.Result) bool { return r.QuizID == quizID })
}

// ForPlayer returns every result recorded for playerID.
func (s *ResultService) ForPlayer(ctx context.Context, playerID string) ([]domain.Result, error) {
	return s.filter(ctx, func(r domain.Result) bool { return r.PlayerID == playerID })
}

// Save creates or replaces the result for the (quiz, player) pair. A
// replaced result keeps its id.
func (s *ResultService) Save(ctx context.Context, in ResultInput) (domain.Result, error) {
	if in.QuizID == "" || in.PlayerID == "" || in.QuestionResults == nil {
		return domain.Result{}, domain.Invalid("quizId, playerId, and questionResults are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := s.List(ctx)
	if err != nil {
		return domain.Result{}, err
	}

	var total float64
	for _, qr := range in.QuestionResults {
		total += qr.PointsAwarded
	}
	result := domain.Result{
		QuizID:          in.QuizID,
		PlayerID:        in.PlayerID,
		QuestionResults: in.QuestionResults,
		TotalScore:      total,
		CompletedAt:     s.now().UTC(),
	}

	existing := -1
	for i := range results {
		if results[i].QuizID == in.QuizID && results[i].PlayerID == in.PlayerID {
			existing = i
			break
		}
	}
	if existing >= 0 {
		result.ID = results[existing].ID
		results[existing] = result
	} else {
		result.ID = s.newID()
		results = append(results, result)
	}

	if err := saveAll(ctx, s.store, ResultsCollection, results); err != nil {
		return domain.Result{}, err
	}
	s.broadcast(ctx, results)
	return result, nil
}

func (s *ResultService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	results, err := s.List(ctx)
	if err != nil {
		return err
	}
	i := -1
	for j := range results {
		if results[j].ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		return domain.ErrResultNotFound
	}
	results = append(results[:i], results[i+1:]...)
	if err := saveAll(ctx, s.store, ResultsCollection, results); err != nil {
		return err
	}
	s.broadcast(ctx, results)
	return nil
}

// Leaderboard is the total-points leaderboard.
func (s *ResultService) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	results, players, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return PointsLeaderboard(results, players), nil
}

// RankingLeaderboard is the placement-points leaderboard.
func (s *ResultService) RankingLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	results, players, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return RankingLeaderboard(results, players), nil
}

// Subscribe streams both leaderboards, starting with the current snapshot.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *ResultService) Subscribe(ctx context.Context) (<-chan domain.Leaderboards, func(), error) {
	// Held until the channel is registered so no save can publish in between.
	s.mu.Lock()
	defer s.mu.Unlock()

	results, players, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.hub.subscribe(s.snapshot(results, players))
	return ch, cancel, nil
}

func (s *ResultService) broadcast(ctx context.Context, results []domain.Result) {
	players, err := loadAll[domain.Player](ctx, s.store, PlayersCollection)
	if err != nil {
		s.logger.Warn("leaderboard broadcast skipped", "error", err)
		return
	}
	s.hub.publish(s.snapshot(results, players))
}

func (s *ResultService) snapshot(results []domain.Result, players []domain.Player) domain.Leaderboards {
	return domain.Leaderboards{
		Points:    PointsLeaderboard(results, players),
		Ranking:   RankingLeaderboard(results, players),
		UpdatedAt: s.now().UTC(),
	}
}

func (s *ResultService) load(ctx context.Context) ([]domain.Result, []domain.Player, error) {
	results, err := s.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	players, err := loadAll[domain.Player](ctx, s.store, PlayersCollection)
	if err != nil {
		return nil, nil, err
	}
	return results, players, nil
}

func (s *ResultService) filter(ctx context.Context, keep func(domain.Result) bool) ([]domain.Result, error) {
	results, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.Result{}
	for _, r := range results {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
