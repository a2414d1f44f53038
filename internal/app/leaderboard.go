package app

import (
	"sort"
	"sync"

	"quiz-host-service/internal/domain"
)

const unknownPlayer = "Unknown Player"

// PointsLeaderboard sums every result's score per player, highest first.
// Ties keep the order in which players first appear in results.
func PointsLeaderboard(results []domain.Result, players []domain.Player) []domain.LeaderboardEntry {
	totals := newTally()
	for _, r := range results {
		totals.add(r.PlayerID, r.TotalScore)
	}
	return totals.entries(players)
}

// RankingLeaderboard awards placement points per quiz: with n results for a
// quiz, first place earns n, second n-1, and so on. Points are summed per
// player, highest first.
func RankingLeaderboard(results []domain.Result, players []domain.Player) []domain.LeaderboardEntry {
	var quizOrder []string
	byQuiz := make(map[string][]domain.Result)
	for _, r := range results {
		if _, ok := byQuiz[r.QuizID]; !ok {
			quizOrder = append(quizOrder, r.QuizID)
		}
		byQuiz[r.QuizID] = append(byQuiz[r.QuizID], r)
	}

	totals := newTally()
	for _, quizID := range quizOrder {
		ranked := append([]domain.Result(nil), byQuiz[quizID]...)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].TotalScore > ranked[j].TotalScore
		})
		n := len(ranked)
		for place, r := range ranked {
			totals.add(r.PlayerID, float64(n-place))
		}
	}
	return totals.entries(players)
}

type tally struct {
	order  []string
	points map[string]float64
}

func newTally() *tally {
	return &tally{points: make(map[string]float64)}
}

func (t *tally) add(playerID string, points float64) {
	if _, ok := t.points[playerID]; !ok {
		t.order = append(t.order, playerID)
	}
	t.points[playerID] += points
}

func (t *tally) entries(players []domain.Player) []domain.LeaderboardEntry {
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}

	entries := make([]domain.LeaderboardEntry, 0, len(t.order))
	for _, id := range t.order {
		name, ok := names[id]
		if !ok {
			name = unknownPlayer
		}
		entries = append(entries, domain.LeaderboardEntry{
			PlayerID:    id,
			PlayerName:  name,
			TotalPoints: t.points[id],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	return entries
}

// leaderboardHub fans leaderboard snapshots out to live subscribers.
type leaderboardHub struct {
	mu          sync.Mutex
	subscribers map[chan domain.Leaderboards]struct{}
}

func newLeaderboardHub() *leaderboardHub {
	return &leaderboardHub{subscribers: make(map[chan domain.Leaderboards]struct{})}
}

func (h *leaderboardHub) subscribe(initial domain.Leaderboards) (<-chan domain.Leaderboards, func()) {
	ch := make(chan domain.Leaderboards, 8)
	ch <- initial

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *leaderboardHub) publish(lb domain.Leaderboards) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- lb:
		default:
			// Slow subscriber: drop its oldest snapshot.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}
