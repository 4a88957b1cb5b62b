package model

// TimestampLayout is the wall-clock format submissions are recorded with.
const TimestampLayout = "2006-01-02 15:04:05"

// MaxEditRounds is the total number of submission rounds a participant gets.
const MaxEditRounds = 3

// ResponseRecord is one row of the global, append-only submission ledger.
// Records are never mutated or deleted; history across edit rounds is kept
// in full and distinguished by EditNo (1..MaxEditRounds).
type ResponseRecord struct {
	ID         uint    `gorm:"primarykey" json:"-"`
	Email      string  `gorm:"index;not null" json:"email"`
	QuestionID int     `gorm:"not null" json:"question_id"`
	Selected   string  `json:"selected"` // comma-joined labels
	IsCorrect  bool    `json:"is_correct"`
	Score      float64 `json:"score"`
	Timestamp  string  `json:"timestamp"`
	EditNo     int     `json:"edit_no"`
}

// ParticipantAnswer is the latest-known answer for one question of one
// participant. Unlike the ledger it is overwritten on resubmission.
type ParticipantAnswer struct {
	ID         uint    `gorm:"primarykey" json:"-"`
	Email      string  `gorm:"uniqueIndex:idx_participant_question;not null" json:"email"`
	QuestionID int     `gorm:"uniqueIndex:idx_participant_question;not null" json:"question_id"`
	Timestamp  string  `json:"timestamp"`
	Selected   string  `json:"selected"`
	IsCorrect  bool    `json:"is_correct"`
	Score      float64 `json:"score"`
}

// ParticipantCounter tracks how many edit rounds a participant has spent.
type ParticipantCounter struct {
	Email     string `gorm:"primaryKey" json:"email"`
	EditCount int    `json:"edit_count"`
}

// ParticipantState is the assembled per-participant snapshot: every
// latest-known answer plus the consumed-rounds counter.
type ParticipantState struct {
	Email     string
	EditCount int
	Answers   []ParticipantAnswer
}

// RemainingRounds is the capped countdown shown to the participant.
func (s ParticipantState) RemainingRounds() int {
	if s.EditCount >= MaxEditRounds {
		return 0
	}
	return MaxEditRounds - s.EditCount
}

// AnswerFor returns the latest answer for a question, if any.
func (s ParticipantState) AnswerFor(questionID int) (ParticipantAnswer, bool) {
	for _, a := range s.Answers {
		if a.QuestionID == questionID {
			return a, true
		}
	}
	return ParticipantAnswer{}, false
}
