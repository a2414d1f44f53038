package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-host-service/internal/app"
	"quiz-host-service/internal/domain"
	"github.com/gorilla/websocket"
)

func TestLeaderboardStream(t *testing.T) {
	e := newTestEnv(t, BearerTransport{})
	quiz := seedQuiz(t, e)
	alice, err := e.players.Create(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	server := httptest.NewServer(e.handler)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/api/results/leaderboard/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	initial := readLeaderboard(t, conn)
	if len(initial.Points) != 0 || len(initial.Ranking) != 0 {
		t.Fatalf("expected empty initial snapshot, got %+v", initial)
	}

	if _, err := e.results.Save(context.Background(), app.ResultInput{
		QuizID:          quiz.ID,
		PlayerID:        alice.ID,
		QuestionResults: []domain.QuestionResult{{QuestionID: quiz.Questions[0].ID, PointsAwarded: 2}},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	update := readLeaderboard(t, conn)
	if len(update.Points) != 1 || update.Points[0].PlayerName != "Alice" || update.Points[0].TotalPoints != 2 {
		t.Fatalf("unexpected points board %+v", update.Points)
	}
	if len(update.Ranking) != 1 || update.Ranking[0].TotalPoints != 1 {
		t.Fatalf("unexpected ranking board %+v", update.Ranking)
	}
}

func readLeaderboard(t *testing.T, conn *websocket.Conn) domain.Leaderboards {
	t.Helper()
	var msg struct {
		Type    string              `json:"type"`
		Payload domain.Leaderboards `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if msg.Type != "leaderboard" {
		t.Fatalf("expected leaderboard message, got %q", msg.Type)
	}
	return msg.Payload
}
