package dto

type RegisterRequest struct {
	Company         string `json:"company" binding:"required"`
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Position        string `json:"position"`
	Department      string `json:"department"`
	Gender          string `json:"gender"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	Current string `json:"current" binding:"required"`
	New     string `json:"new" binding:"required"`
	Confirm string `json:"confirm" binding:"required"`
}

// QuestionRequest carries the editable fields of a question. Options is the
// raw block with one "A. Some choice" line per option.
type QuestionRequest struct {
	Text          string   `json:"text" binding:"required"`
	Options       string   `json:"options" binding:"required"`
	CorrectLabels []string `json:"correct_labels" binding:"required,min=1"`
	Points        int      `json:"points" binding:"required"`
}

type SubmittedAnswer struct {
	QuestionID int      `json:"question_id" binding:"required"`
	Selected   []string `json:"selected"`
}

// SubmissionRequest is one edit round: any subset of questions may be
// answered or re-answered.
type SubmissionRequest struct {
	Answers []SubmittedAnswer `json:"answers" binding:"required,dive"`
}
