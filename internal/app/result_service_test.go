package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"quiz-host-service/internal/app"
	"quiz-host-service/internal/domain"
	"quiz-host-service/internal/infra/memory"
)

func TestSaveResultUpsertsPerQuizAndPlayer(t *testing.T) {
	ctx := context.Background()
	results := app.NewResultService(memory.NewDocumentStore(), nil)

	first, err := results.Save(ctx, app.ResultInput{
		QuizID:   "quiz-1",
		PlayerID: "p1",
		QuestionResults: []domain.QuestionResult{
			{QuestionID: "q1", PointsAwarded: 1.5},
			{QuestionID: "q2", PointsAwarded: 2},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.TotalScore != 3.5 {
		t.Fatalf("expected total 3.5, got %v", first.TotalScore)
	}

	second, err := results.Save(ctx, app.ResultInput{
		QuizID:          "quiz-1",
		PlayerID:        "p1",
		QuestionResults: []domain.QuestionResult{{QuestionID: "q1", PointsAwarded: 4}},
	})
	if err != nil {
		t.Fatalf("resave: %v", err)
	}
	if second.ID != first.ID || second.TotalScore != 4 {
		t.Fatalf("expected replacement keeping id, got %+v", second)
	}

	all, err := results.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected a single stored result, got %d", len(all))
	}
}

func TestSaveResultValidation(t *testing.T) {
	results := app.NewResultService(memory.NewDocumentStore(), nil)
	_, err := results.Save(context.Background(), app.ResultInput{QuizID: "quiz-1", PlayerID: "p1"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Message != "quizId, playerId, and questionResults are required" {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResultFiltersAndDelete(t *testing.T) {
	ctx := context.Background()
	results := app.NewResultService(memory.NewDocumentStore(), nil)
	for _, in := range []app.ResultInput{
		{QuizID: "quiz-1", PlayerID: "p1", QuestionResults: []domain.QuestionResult{}},
		{QuizID: "quiz-1", PlayerID: "p2", QuestionResults: []domain.QuestionResult{}},
		{QuizID: "quiz-2", PlayerID: "p1", QuestionResults: []domain.QuestionResult{}},
	} {
		if _, err := results.Save(ctx, in); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	byQuiz, _ := results.ForQuiz(ctx, "quiz-1")
	byPlayer, _ := results.ForPlayer(ctx, "p1")
	if len(byQuiz) != 2 || len(byPlayer) != 2 {
		t.Fatalf("unexpected filters: quiz=%d player=%d", len(byQuiz), len(byPlayer))
	}
	none, _ := results.ForQuiz(ctx, "quiz-9")
	if none == nil || len(none) != 0 {
		t.Fatalf("expected an empty, non-nil slice, got %#v", none)
	}

	if err := results.Delete(ctx, byQuiz[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := results.Delete(ctx, byQuiz[0].ID); !errors.Is(err, domain.ErrResultNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	ctx := context.Background()
	docs := memory.NewDocumentStore()
	players := app.NewPlayerService(docs)
	results := app.NewResultService(docs, nil)

	alice, err := players.Create(ctx, "Alice")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	updates, cancel, err := results.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	if initial := <-updates; len(initial.Points) != 0 {
		t.Fatalf("expected empty initial snapshot, got %+v", initial)
	}

	if _, err := results.Save(ctx, app.ResultInput{
		QuizID:          "quiz-1",
		PlayerID:        alice.ID,
		QuestionResults: []domain.QuestionResult{{QuestionID: "q1", PointsAwarded: 3}},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	lb := <-updates
	if len(lb.Points) != 1 || lb.Points[0].PlayerName != "Alice" || lb.Points[0].TotalPoints != 3 {
		t.Fatalf("unexpected update %+v", lb)
	}
}

func TestSubscribeNeverMissesConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	results := app.NewResultService(memory.NewDocumentStore(), nil)

	const n = 20
	subs := make([]<-chan domain.Leaderboards, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if _, err := results.Save(ctx, app.ResultInput{
				QuizID:          "quiz-1",
				PlayerID:        fmt.Sprintf("p%d", i),
				QuestionResults: []domain.QuestionResult{{QuestionID: "q1", PointsAwarded: 1}},
			}); err != nil {
				t.Errorf("save: %v", err)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			ch, cancel, err := results.Subscribe(ctx)
			if err != nil {
				t.Errorf("subscribe: %v", err)
				return
			}
			t.Cleanup(cancel)
			subs[i] = ch
		}(i)
	}
	wg.Wait()

	for i, ch := range subs {
		if ch == nil {
			continue
		}
		var latest domain.Leaderboards
	drain:
		for {
			select {
			case lb := <-ch:
				latest = lb
			default:
				break drain
			}
		}
		if len(latest.Points) != n {
			t.Fatalf("subscriber %d ended with %d players, want %d", i, len(latest.Points), n)
		}
		if latest.Points[0].PlayerName != "Unknown Player" {
			t.Fatalf("players without a record should be named Unknown Player, got %q", latest.Points[0].PlayerName)
		}
	}
}
