package dto

type TokenResponse struct {
	Token   string       `json:"token"`
	Role    string       `json:"role"`
	Email   string       `json:"email,omitempty"`
	Profile *UserProfile `json:"profile,omitempty"`
}

type UserProfile struct {
	Company    string `json:"company"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Position   string `json:"position"`
	Department string `json:"department"`
	Gender     string `json:"gender"`
}

type OptionResponse struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// QuestionDetail is the admin view of a question, correct answers included.
type QuestionDetail struct {
	ID            int              `json:"id"`
	Text          string           `json:"text"`
	Options       []OptionResponse `json:"options"`
	RawOptions    string           `json:"raw_options"`
	CorrectLabels []string         `json:"correct_labels"`
	Points        int              `json:"points"`
}

// QuizQuestion is the participant view: no correct answers, but the
// participant's previous selection so a new round can start from it.
type QuizQuestion struct {
	ID                int              `json:"id"`
	Text              string           `json:"text"`
	Options           []OptionResponse `json:"options"`
	Points            int              `json:"points"`
	PreviousSelection []string         `json:"previous_selection,omitempty"`
}

type QuizView struct {
	Questions       []QuizQuestion `json:"questions"`
	TotalQuestions  int            `json:"total_questions"`
	RemainingRounds int            `json:"remaining_rounds"`
}

type GradedAnswer struct {
	QuestionID int      `json:"question_id"`
	Selected   []string `json:"selected"`
	IsCorrect  bool     `json:"is_correct"`
	Score      float64  `json:"score"`
}

type SubmissionResult struct {
	RoundNumber     int            `json:"round_number"`
	RemainingRounds int            `json:"remaining_rounds"`
	Answers         []GradedAnswer `json:"answers"`
}

// ResultEntry is one question of a participant's history. Orphaned marks
// entries whose question was removed from the bank after answering.
type ResultEntry struct {
	QuestionID    int              `json:"question_id"`
	QuestionText  string           `json:"question_text,omitempty"`
	Options       []OptionResponse `json:"options,omitempty"`
	CorrectLabels []string         `json:"correct_labels,omitempty"`
	Selected      []string         `json:"selected"`
	IsCorrect     bool             `json:"is_correct"`
	Score         float64          `json:"score"`
	Timestamp     string           `json:"timestamp"`
	Orphaned      bool             `json:"orphaned"`
}

type ResultsSummary struct {
	TotalQuestions  int     `json:"total_questions"`
	Answered        int     `json:"answered"`
	Correct         int     `json:"correct"`
	Score           float64 `json:"score"`
	MaxScore        float64 `json:"max_score"`
	RemainingRounds int     `json:"remaining_rounds"`
}

type ParticipantResults struct {
	Entries []ResultEntry  `json:"entries"`
	Summary ResultsSummary `json:"summary"`
}

type ParticipantStatsRow struct {
	Email       string  `json:"email"`
	Answered    int     `json:"answered"`
	Correct     int     `json:"correct"`
	Unanswered  int     `json:"unanswered"`
	TotalScore  float64 `json:"total_score"`
	AccuracyPct float64 `json:"accuracy_pct"`
}

type StatsResponse struct {
	TotalQuestions int                   `json:"total_questions"`
	Rows           []ParticipantStatsRow `json:"rows"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
