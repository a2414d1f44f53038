package app

import "quiz-host-service/internal/domain"

// SanitizeQuestion returns a copy of q with the correct answer blanked.
// Options are not secret and pass through.
func SanitizeQuestion(q domain.Question) domain.Question {
	out := q
	out.CorrectAnswer = ""
	if q.Options != nil {
		out.Options = append(make([]string, 0, len(q.Options)), q.Options...)
	}
	if q.MediaPath != nil {
		path := *q.MediaPath
		out.MediaPath = &path
	}
	return out
}

// SanitizeQuiz blanks every answer of quiz without touching the input.
func SanitizeQuiz(quiz domain.Quiz) domain.Quiz {
	out := quiz
	if quiz.Questions != nil {
		out.Questions = make([]domain.Question, len(quiz.Questions))
		for i, q := range quiz.Questions {
			out.Questions[i] = SanitizeQuestion(q)
		}
	}
	return out
}

func SanitizeQuizzes(quizzes []domain.Quiz) []domain.Quiz {
	if quizzes == nil {
		return nil
	}
	out := make([]domain.Quiz, len(quizzes))
	for i, q := range quizzes {
		out[i] = SanitizeQuiz(q)
	}
	return out
}
