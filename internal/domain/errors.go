package domain

import "errors"

var (
	// ErrInvalidCredentials is returned when the supplied admin password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAuthenticationRequired is returned when a guarded operation is called without a token.
	ErrAuthenticationRequired = errors.New("authentication required")
	// ErrInvalidSession is returned when a token is present but cannot be verified.
	ErrInvalidSession = errors.New("invalid or expired session")
	// ErrInternal wraps hashing, randomness and storage faults.
	ErrInternal = errors.New("internal error")

	// ErrValidation is wrapped with a caller-facing message for rejected input.
	ErrValidation = errors.New("validation failed")
	// ErrQuizNotFound indicates the quiz does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound indicates the question does not exist in the quiz.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrPlayerNotFound indicates the player does not exist.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrResultNotFound indicates the result does not exist.
	ErrResultNotFound = errors.New("result not found")
	// ErrMediaNotFound indicates no uploaded file has that name.
	ErrMediaNotFound = errors.New("media not found")
)

// ValidationError carries the message shown to the client for bad input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid builds a ValidationError.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}
