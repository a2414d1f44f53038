package app_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"quiz-host-service/internal/app"
	"quiz-host-service/internal/domain"
)

func TestSanitizeQuizBlanksAnswersOnly(t *testing.T) {
	quiz := sampleQuiz()
	original := sampleQuiz()

	got := app.SanitizeQuiz(quiz)

	if len(got.Questions) != len(quiz.Questions) {
		t.Fatalf("expected %d questions, got %d", len(quiz.Questions), len(got.Questions))
	}
	for i, q := range got.Questions {
		if q.CorrectAnswer != "" {
			t.Fatalf("question %d: expected blank answer, got %q", i, q.CorrectAnswer)
		}
		want := quiz.Questions[i]
		want.CorrectAnswer = ""
		if !reflect.DeepEqual(q, want) {
			t.Fatalf("question %d: non-answer fields changed: %+v vs %+v", i, q, want)
		}
	}
	if got.ID != quiz.ID || got.Title != quiz.Title || got.Description != quiz.Description || !got.CreatedAt.Equal(quiz.CreatedAt) {
		t.Fatalf("quiz fields changed: %+v", got)
	}
	if !reflect.DeepEqual(quiz, original) {
		t.Fatalf("input quiz was mutated")
	}

	got.Questions[0].Options[0] = "changed"
	if quiz.Questions[0].Options[0] == "changed" {
		t.Fatalf("sanitized copy shares options with input")
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	once := app.SanitizeQuiz(sampleQuiz())
	twice := app.SanitizeQuiz(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected idempotent sanitization")
	}
}

func TestSanitizedJSONKeepsAnswerField(t *testing.T) {
	data, err := json.Marshal(app.SanitizeQuestion(sampleQuiz().Questions[1]))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"correctAnswer":""`) {
		t.Fatalf("expected empty correctAnswer field in %s", data)
	}
	if strings.Contains(string(data), "Rome") {
		t.Fatalf("answer leaked in %s", data)
	}
}

func TestSanitizeKeepsEmptyOptionsShape(t *testing.T) {
	text := sampleQuiz().Questions[1]
	full, err := json.Marshal(text)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	clean, err := json.Marshal(app.SanitizeQuestion(text))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(clean), `"options":[]`) {
		t.Fatalf("empty options must stay an array: %s", clean)
	}
	want := strings.Replace(string(full), `"correctAnswer":"Rome"`, `"correctAnswer":""`, 1)
	if string(clean) != want {
		t.Fatalf("sanitized JSON differs beyond the answer:\n got %s\nwant %s", clean, want)
	}
}

func TestSanitizeQuizzesPreservesOrder(t *testing.T) {
	a := sampleQuiz()
	b := sampleQuiz()
	b.ID = "quiz-2"
	got := app.SanitizeQuizzes([]domain.Quiz{b, a})
	if len(got) != 2 || got[0].ID != "quiz-2" || got[1].ID != "quiz-1" {
		t.Fatalf("unexpected order %+v", got)
	}
	for _, q := range got {
		for _, question := range q.Questions {
			if question.CorrectAnswer != "" {
				t.Fatalf("expected blank answers")
			}
		}
	}
}

func sampleQuiz() domain.Quiz {
	media := "/uploads/eiffel.png"
	return domain.Quiz{
		ID:          "quiz-1",
		Title:       "Capitals",
		Description: "European capitals",
		CreatedAt:   time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Questions: []domain.Question{
			{
				ID:            "q1",
				Type:          domain.QuestionTypeMultipleChoice,
				QuestionText:  "Capital of France?",
				MediaType:     "image",
				MediaPath:     &media,
				MaxPoints:     2,
				Options:       []string{"Paris", "Lyon", "Nice"},
				CorrectAnswer: "Paris",
			},
			{
				ID:            "q2",
				Type:          domain.QuestionTypeText,
				QuestionText:  "Capital of Italy?",
				MediaType:     domain.MediaTypeNone,
				MaxPoints:     1,
				Options:       []string{},
				CorrectAnswer: "Rome",
			},
		},
	}
}
