package domain

import "time"

// Question types.
const (
	QuestionTypeText           = "text"
	QuestionTypeMultipleChoice = "multiple-choice"
)

// MediaTypeNone marks a question without attached media.
const MediaTypeNone = "none"

// Question is a single quiz item. CorrectAnswer is privileged and must be
// blanked before a quiz is shown to anonymous callers.
type Question struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	QuestionText  string   `json:"questionText"`
	MediaType     string   `json:"mediaType"`
	MediaPath     *string  `json:"mediaPath"`
	MaxPoints     float64  `json:"maxPoints"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Quiz owns an ordered list of questions.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	Questions   []Question `json:"questions"`
}

// Player is someone who takes quizzes.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// QuestionResult is the score a player earned on one question.
type QuestionResult struct {
	QuestionID    string  `json:"questionId"`
	PointsAwarded float64 `json:"pointsAwarded"`
}

// Result is a player's scored attempt at a quiz. There is at most one per
// (QuizID, PlayerID) pair.
type Result struct {
	ID              string           `json:"id"`
	QuizID          string           `json:"quizId"`
	PlayerID        string           `json:"playerId"`
	QuestionResults []QuestionResult `json:"questionResults"`
	TotalScore      float64          `json:"totalScore"`
	CompletedAt     time.Time        `json:"completedAt"`
}

// LeaderboardEntry is one row of an aggregated leaderboard.
type LeaderboardEntry struct {
	PlayerID    string  `json:"playerId"`
	PlayerName  string  `json:"playerName"`
	TotalPoints float64 `json:"totalPoints"`
}

// Leaderboards is the snapshot pushed to live subscribers.
type Leaderboards struct {
	Points    []LeaderboardEntry `json:"points"`
	Ranking   []LeaderboardEntry `json:"ranking"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Upload describes a stored media file.
type Upload struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Mimetype string `json:"mimetype"`
	Size     int64  `json:"size"`
}

// Session is a stored admin session. Hash is the one-way hash of the
// client-held token; the raw token is never kept.
type Session struct {
	Hash      string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
