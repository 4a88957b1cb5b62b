package repository

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/lshigami/Stonechat/config"
	"github.com/lshigami/Stonechat/internal/sheetstore"
)

// SheetTables names the worksheets of the spreadsheet backend. Per-participant
// state sheets are created on demand inside the responses spreadsheet.
type SheetTables struct {
	Users     sheetstore.Table
	Admin     sheetstore.Table
	Questions sheetstore.Table
	Responses sheetstore.Table

	responsesSpreadsheetID string
}

func NewSheetTables(cfg config.Sheets) SheetTables {
	return SheetTables{
		Users:                  sheetstore.Table{SpreadsheetID: cfg.UsersSpreadsheetID, Sheet: "Users"},
		Admin:                  sheetstore.Table{SpreadsheetID: cfg.UsersSpreadsheetID, Sheet: "Admin"},
		Questions:              sheetstore.Table{SpreadsheetID: cfg.QuizSpreadsheetID, Sheet: "Questions"},
		Responses:              sheetstore.Table{SpreadsheetID: cfg.ResponsesSpreadsheetID, Sheet: "Responses"},
		responsesSpreadsheetID: cfg.ResponsesSpreadsheetID,
	}
}

func (t SheetTables) participantTable(email string) sheetstore.Table {
	return sheetstore.Table{SpreadsheetID: t.responsesSpreadsheetID, Sheet: participantSheetName(email)}
}

var (
	usersHeader       = []string{"company", "full_name", "email", "position", "department", "gender", "password", "confirm_password"}
	adminHeader       = []string{"username", "password"}
	questionsHeader   = []string{"question id", "question text", "options", "correct answers", "points"}
	responsesHeader   = []string{"email", "question id", "selected answers", "is correct", "score", "timestamp", "edit no"}
	participantHeader = []string{"Timestamp", "Question ID", "Selected Answers", "Is Correct", "Score"}
)

// editCounterColumn is the reserved cell (Z1) of a participant sheet holding
// the spent-rounds counter.
const editCounterColumn = 26

var sheetNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// participantSheetName derives a worksheet title from an email address.
func participantSheetName(email string) string {
	name := sheetNameSanitizer.ReplaceAllString(email, "_")
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}

// Cell codecs. Booleans are stored as "True"/"False" for compatibility with
// the rows the original system wrote; parsing is case-insensitive.

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func parseBool(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func parseScore(v string) float64 {
	score, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return score
}

func parseInt(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}
