package app_test

import (
	"context"
	"errors"
	"testing"

	"quiz-host-service/internal/app"
	"quiz-host-service/internal/domain"
	"quiz-host-service/internal/infra/memory"
)

func TestQuizAndQuestionLifecycle(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService(memory.NewDocumentStore())

	quiz, err := service.Create(ctx, app.QuizInput{Title: "  Capitals ", Description: " Europe  "})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if quiz.Title != "Capitals" || quiz.Description != "Europe" || quiz.ID == "" || quiz.Questions == nil {
		t.Fatalf("unexpected quiz %+v", quiz)
	}

	q, err := service.AddQuestion(ctx, quiz.ID, app.QuestionInput{
		QuestionText:  "Capital of France?",
		Type:          domain.QuestionTypeMultipleChoice,
		MaxPoints:     2,
		Options:       []string{"Paris", "Lyon"},
		CorrectAnswer: "Paris",
	})
	if err != nil {
		t.Fatalf("add question: %v", err)
	}
	if q.MediaType != domain.MediaTypeNone || q.MediaPath != nil || len(q.Options) != 2 {
		t.Fatalf("unexpected question defaults %+v", q)
	}

	updated, err := service.UpdateQuestion(ctx, quiz.ID, q.ID, app.QuestionInput{
		QuestionText: "Capital of Italy?",
		Type:         domain.QuestionTypeText,
		MaxPoints:    1,
		Options:      []string{"ignored"},
		MediaType:    "image",
		MediaPath:    "/uploads/rome.png",
	})
	if err != nil {
		t.Fatalf("update question: %v", err)
	}
	if updated.ID != q.ID || len(updated.Options) != 0 || updated.CorrectAnswer != "" || *updated.MediaPath != "/uploads/rome.png" {
		t.Fatalf("unexpected updated question %+v", updated)
	}

	stored, err := service.Get(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if len(stored.Questions) != 1 || stored.Questions[0].QuestionText != "Capital of Italy?" {
		t.Fatalf("unexpected stored quiz %+v", stored)
	}

	if err := service.DeleteQuestion(ctx, quiz.ID, q.ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}
	if err := service.DeleteQuestion(ctx, quiz.ID, q.ID); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected question not found, got %v", err)
	}

	if _, err := service.Update(ctx, quiz.ID, app.QuizInput{Title: "Renamed"}); err != nil {
		t.Fatalf("update quiz: %v", err)
	}
	if err := service.Delete(ctx, quiz.ID); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}
	if _, err := service.Get(ctx, quiz.ID); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

func TestQuestionValidation(t *testing.T) {
	ctx := context.Background()
	service := app.NewQuizService(memory.NewDocumentStore())
	quiz, _ := service.Create(ctx, app.QuizInput{Title: "Q"})

	cases := map[string]app.QuestionInput{
		"Question text is required":            {QuestionText: "  ", Type: domain.QuestionTypeText, MaxPoints: 1},
		"Invalid question type":                {QuestionText: "x", Type: "essay", MaxPoints: 1},
		"Max points must be a positive number": {QuestionText: "x", Type: domain.QuestionTypeText, MaxPoints: 0},
	}
	for want, in := range cases {
		_, err := service.AddQuestion(ctx, quiz.ID, in)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) || verr.Message != want {
			t.Fatalf("expected %q, got %v", want, err)
		}
	}

	if _, err := service.Create(ctx, app.QuizInput{Title: " "}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for blank title, got %v", err)
	}
	if _, err := service.AddQuestion(ctx, "nope", app.QuestionInput{QuestionText: "x", Type: domain.QuestionTypeText, MaxPoints: 1}); !errors.Is(err, domain.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}
