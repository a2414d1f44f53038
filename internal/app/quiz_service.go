package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"quiz-host-service/internal/domain"
	"github.com/google/uuid"
)

// QuizInput is the editable part of a quiz.
type QuizInput struct {
	Title       string
	Description string
}

// QuestionInput is the editable part of a question.
type QuestionInput struct {
	QuestionText  string
	Type          string
	MediaType     string
	MediaPath     string
	MaxPoints     float64
	Options       []string
	CorrectAnswer string
}

// QuizService manages quizzes and their questions.
type QuizService struct {
	store DocumentStore
	now   func() time.Time
	newID func() string

	// serializes read-modify-write cycles on the collection
	mu sync.Mutex
}

func NewQuizService(store DocumentStore) *QuizService {
	return &QuizService{store: store, now: time.Now, newID: uuid.NewString}
}

func (s *QuizService) List(ctx context.Context) ([]domain.Quiz, error) {
	return loadAll[domain.Quiz](ctx, s.store, QuizzesCollection)
}

func (s *QuizService) Get(ctx context.Context, id string) (domain.Quiz, error) {
	quizzes, err := s.List(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	i := indexQuiz(quizzes, id)
	if i < 0 {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quizzes[i], nil
}

func (s *QuizService) Create(ctx context.Context, in QuizInput) (domain.Quiz, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Quiz{}, domain.Invalid("Quiz title is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.List(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz := domain.Quiz{
		ID:          s.newID(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   s.now().UTC(),
		Questions:   []domain.Question{},
	}
	quizzes = append(quizzes, quiz)
	if err := saveAll(ctx, s.store, QuizzesCollection, quizzes); err != nil {
		return domain.Quiz{}, err
	}
	return quiz, nil
}

func (s *QuizService) Update(ctx context.Context, id string, in QuizInput) (domain.Quiz, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Quiz{}, domain.Invalid("Quiz title is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.List(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	i := indexQuiz(quizzes, id)
	if i < 0 {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	quizzes[i].Title = title
	quizzes[i].Description = strings.TrimSpace(in.Description)
	if err := saveAll(ctx, s.store, QuizzesCollection, quizzes); err != nil {
		return domain.Quiz{}, err
	}
	return quizzes[i], nil
}

func (s *QuizService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.List(ctx)
	if err != nil {
		return err
	}
	i := indexQuiz(quizzes, id)
	if i < 0 {
		return domain.ErrQuizNotFound
	}
	quizzes = append(quizzes[:i], quizzes[i+1:]...)
	return saveAll(ctx, s.store, QuizzesCollection, quizzes)
}

// AddQuestion appends a question to the end of the quiz.
func (s *QuizService) AddQuestion(ctx context.Context, quizID string, in QuestionInput) (domain.Question, error) {
	question, err := buildQuestion(in)
	if err != nil {
		return domain.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.List(ctx)
	if err != nil {
		return domain.Question{}, err
	}
	i := indexQuiz(quizzes, quizID)
	if i < 0 {
		return domain.Question{}, domain.ErrQuizNotFound
	}
	question.ID = s.newID()
	quizzes[i].Questions = append(quizzes[i].Questions, question)
	if err := saveAll(ctx, s.store, QuizzesCollection, quizzes); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

func (s *QuizService) UpdateQuestion(ctx context.Context, quizID, questionID string, in QuestionInput) (domain.Question, error) {
	question, err := buildQuestion(in)
	if err != nil {
		return domain.Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.List(ctx)
	if err != nil {
		return domain.Question{}, err
	}
	i := indexQuiz(quizzes, quizID)
	if i < 0 {
		return domain.Question{}, domain.ErrQuizNotFound
	}
	j := indexQuestion(quizzes[i].Questions, questionID)
	if j < 0 {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	question.ID = questionID
	quizzes[i].Questions[j] = question
	if err := saveAll(ctx, s.store, QuizzesCollection, quizzes); err != nil {
		return domain.Question{}, err
	}
	return question, nil
}

func (s *QuizService) DeleteQuestion(ctx context.Context, quizID, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.List(ctx)
	if err != nil {
		return err
	}
	i := indexQuiz(quizzes, quizID)
	if i < 0 {
		return domain.ErrQuizNotFound
	}
	j := indexQuestion(quizzes[i].Questions, questionID)
	if j < 0 {
		return domain.ErrQuestionNotFound
	}
	quizzes[i].Questions = append(quizzes[i].Questions[:j], quizzes[i].Questions[j+1:]...)
	return saveAll(ctx, s.store, QuizzesCollection, quizzes)
}

func buildQuestion(in QuestionInput) (domain.Question, error) {
	text := strings.TrimSpace(in.QuestionText)
	if text == "" {
		return domain.Question{}, domain.Invalid("Question text is required")
	}
	if in.Type != domain.QuestionTypeText && in.Type != domain.QuestionTypeMultipleChoice {
		return domain.Question{}, domain.Invalid("Invalid question type")
	}
	if in.MaxPoints <= 0 {
		return domain.Question{}, domain.Invalid("Max points must be a positive number")
	}

	q := domain.Question{
		Type:          in.Type,
		QuestionText:  text,
		MediaType:     in.MediaType,
		MaxPoints:     in.MaxPoints,
		Options:       []string{},
		CorrectAnswer: in.CorrectAnswer,
	}
	if q.MediaType == "" {
		q.MediaType = domain.MediaTypeNone
	}
	if in.MediaPath != "" {
		path := in.MediaPath
		q.MediaPath = &path
	}
	if in.Type == domain.QuestionTypeMultipleChoice && in.Options != nil {
		q.Options = append(q.Options, in.Options...)
	}
	return q, nil
}

func indexQuiz(quizzes []domain.Quiz, id string) int {
	for i := range quizzes {
		if quizzes[i].ID == id {
			return i
		}
	}
	return -1
}

func indexQuestion(questions []domain.Question, id string) int {
	for i := range questions {
		if questions[i].ID == id {
			return i
		}
	}
	return -1
}
