package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/lshigami/Stonechat/config"
	"github.com/lshigami/Stonechat/internal/model"
	"github.com/lshigami/Stonechat/internal/sheetstore"
)

// fakeTableStore holds whole tables in memory, 1-based like the real store.
type fakeTableStore struct {
	tables map[string][][]string

	ensureCalls int
}

func newFakeTableStore() *fakeTableStore {
	return &fakeTableStore{tables: make(map[string][][]string)}
}

func tableKey(t sheetstore.Table) string {
	return t.SpreadsheetID + "!" + t.Sheet
}

func (f *fakeTableStore) GetAllValues(_ context.Context, table sheetstore.Table) ([][]string, error) {
	values := f.tables[tableKey(table)]
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

func (f *fakeTableStore) AppendRow(_ context.Context, table sheetstore.Table, values []string) error {
	key := tableKey(table)
	f.tables[key] = append(f.tables[key], append([]string(nil), values...))
	return nil
}

func (f *fakeTableStore) UpdateRange(_ context.Context, table sheetstore.Table, startRow, startCol int, rows [][]string) error {
	key := tableKey(table)
	grid := f.tables[key]
	for i, row := range rows {
		r := startRow - 1 + i
		for len(grid) <= r {
			grid = append(grid, nil)
		}
		for j, value := range row {
			c := startCol - 1 + j
			for len(grid[r]) <= c {
				grid[r] = append(grid[r], "")
			}
			grid[r][c] = value
		}
	}
	f.tables[key] = grid
	return nil
}

func (f *fakeTableStore) UpdateCell(ctx context.Context, table sheetstore.Table, row, col int, value string) error {
	return f.UpdateRange(ctx, table, row, col, [][]string{{value}})
}

func (f *fakeTableStore) DeleteRow(_ context.Context, table sheetstore.Table, row int) error {
	key := tableKey(table)
	grid := f.tables[key]
	if row < 1 || row > len(grid) {
		return errors.New("row out of range")
	}
	f.tables[key] = append(grid[:row-1], grid[row:]...)
	return nil
}

func (f *fakeTableStore) EnsureTable(_ context.Context, table sheetstore.Table, header []string) error {
	f.ensureCalls++
	key := tableKey(table)
	if _, ok := f.tables[key]; !ok {
		f.tables[key] = [][]string{append([]string(nil), header...)}
	}
	return nil
}

func testTables() SheetTables {
	return NewSheetTables(config.Sheets{
		UsersSpreadsheetID:     "users-doc",
		QuizSpreadsheetID:      "quiz-doc",
		ResponsesSpreadsheetID: "responses-doc",
	})
}

func seedQuestions(store *fakeTableStore, tables SheetTables) {
	key := tableKey(tables.Questions)
	store.tables[key] = [][]string{
		{"question id", "question text", "options", "correct answers", "points"},
		{"1", "first", "A. Yes\nB. No", "A", "2"},
		{"2", "second", "A. Yes\nB. No", "B", "1"},
	}
}

func TestSheetQuestionRepositoryFindAll(t *testing.T) {
	store := newFakeTableStore()
	tables := testTables()
	seedQuestions(store, tables)
	repo := NewSheetQuestionRepository(store, tables)

	questions, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	q := questions[0]
	if q.ID != 1 || q.Text != "first" || q.CorrectAnswers != "A" || q.Points != 2 {
		t.Fatalf("question 0 = %+v", q)
	}
}

func TestSheetQuestionRepositoryUpdateAndDelete(t *testing.T) {
	store := newFakeTableStore()
	tables := testTables()
	seedQuestions(store, tables)
	repo := NewSheetQuestionRepository(store, tables)

	updated := &model.Question{ID: 2, Text: "second v2", Options: "A. Yes\nB. No", CorrectAnswers: "A", Points: 3}
	if err := repo.Update(context.Background(), updated); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	row := store.tables[tableKey(tables.Questions)][2]
	if row[1] != "second v2" || row[4] != "3" {
		t.Fatalf("sheet row after update = %v", row)
	}

	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	grid := store.tables[tableKey(tables.Questions)]
	if len(grid) != 2 || grid[1][0] != "2" {
		t.Fatalf("sheet after delete = %v", grid)
	}

	if err := repo.Delete(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting unknown ID: got %v, want ErrNotFound", err)
	}
}

func TestSheetQuestionRepositoryUpdateID(t *testing.T) {
	store := newFakeTableStore()
	tables := testTables()
	seedQuestions(store, tables)
	repo := NewSheetQuestionRepository(store, tables)

	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := repo.UpdateID(context.Background(), 2, 1); err != nil {
		t.Fatalf("UpdateID returned error: %v", err)
	}
	row := store.tables[tableKey(tables.Questions)][1]
	if row[0] != "1" || row[1] != "second" {
		t.Fatalf("row after UpdateID = %v", row)
	}

	if err := repo.UpdateID(context.Background(), 99, 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown old ID: got %v, want ErrNotFound", err)
	}
}

func TestSheetResponseRepositoryLedger(t *testing.T) {
	store := newFakeTableStore()
	tables := testTables()
	key := tableKey(tables.Responses)
	store.tables[key] = [][]string{
		{"email", "question id", "selected answers", "is correct", "score", "timestamp", "edit no"},
	}
	repo := NewSheetResponseRepository(store, tables)

	rec := &model.ResponseRecord{
		Email: "pat@example.com", QuestionID: 1, Selected: "A,C",
		IsCorrect: true, Score: 2.5, Timestamp: "2025-03-01 10:00:00", EditNo: 1,
	}
	if err := repo.AppendRecord(context.Background(), rec); err != nil {
		t.Fatalf("AppendRecord returned error: %v", err)
	}
	raw := store.tables[key][1]
	if raw[3] != "True" || raw[4] != "2.5" {
		t.Fatalf("stored row = %v, want True/2.5 codecs", raw)
	}

	records, err := repo.FindAllRecords(context.Background())
	if err != nil {
		t.Fatalf("FindAllRecords returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	got := records[0]
	if got.Email != rec.Email || got.QuestionID != 1 || !got.IsCorrect || got.Score != 2.5 || got.EditNo != 1 {
		t.Fatalf("round-tripped record = %+v", got)
	}
}

func TestSheetResponseRepositoryFindRecordsByEmail(t *testing.T) {
	store := newFakeTableStore()
	tables := testTables()
	key := tableKey(tables.Responses)
	store.tables[key] = [][]string{
		{"email", "question id", "selected answers", "is correct", "score", "timestamp", "edit no"},
		{"a@example.com", "1", "A", "True", "1", "2025-03-01 10:00:00", "1"},
		{"b@example.com", "1", "B", "False", "0", "2025-03-01 10:00:00", "1"},
		{"a@example.com", "2", "A", "true", "1", "2025-03-01 10:00:00", "2"},
	}
	repo := NewSheetResponseRepository(store, tables)

	records, err := repo.FindRecordsByEmail(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("FindRecordsByEmail returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	// Codec accepts lowercase booleans from hand-edited sheets.
	if !records[1].IsCorrect {
		t.Fatal("lowercase true not parsed")
	}
}

func TestSheetResponseRepositoryStateAndUpsert(t *testing.T) {
	store := newFakeTableStore()
	tables := testTables()
	repo := NewSheetResponseRepository(store, tables)
	email := "pat@example.com"

	state, err := repo.State(context.Background(), email)
	if err != nil {
		t.Fatalf("State returned error: %v", err)
	}
	if state.EditCount != 0 || len(state.Answers) != 0 {
		t.Fatalf("fresh state = %+v", state)
	}
	if store.ensureCalls == 0 {
		t.Fatal("State did not create the participant sheet")
	}

	answer := model.ParticipantAnswer{
		QuestionID: 1, Timestamp: "2025-03-01 10:00:00", Selected: "B", IsCorrect: false, Score: 0,
	}
	if err := repo.UpsertAnswer(context.Background(), email, answer); err != nil {
		t.Fatalf("UpsertAnswer returned error: %v", err)
	}

	// Re-answering the same question replaces the row instead of appending.
	answer.Selected = "A"
	answer.IsCorrect = true
	answer.Score = 2
	if err := repo.UpsertAnswer(context.Background(), email, answer); err != nil {
		t.Fatalf("second UpsertAnswer returned error: %v", err)
	}
	if err := repo.SetEditCount(context.Background(), email, 2); err != nil {
		t.Fatalf("SetEditCount returned error: %v", err)
	}

	state, err = repo.State(context.Background(), email)
	if err != nil {
		t.Fatalf("State returned error: %v", err)
	}
	if len(state.Answers) != 1 {
		t.Fatalf("got %d answers, want the upsert to replace", len(state.Answers))
	}
	if got := state.Answers[0]; got.Selected != "A" || !got.IsCorrect || got.Score != 2 {
		t.Fatalf("latest answer = %+v", got)
	}
	if state.EditCount != 2 {
		t.Fatalf("edit count = %d, want 2", state.EditCount)
	}

	// The counter occupies a reserved cell on the header row.
	sheet := store.tables[tableKey(tables.participantTable(email))]
	if got := sheet[0][editCounterColumn-1]; got != "2" {
		t.Fatalf("counter cell = %q, want 2", got)
	}
}

func TestSheetUserRepository(t *testing.T) {
	store := newFakeTableStore()
	tables := testTables()
	key := tableKey(tables.Users)
	store.tables[key] = [][]string{
		{"company", "full_name", "email", "position", "department", "gender", "password", "confirm_password"},
	}
	repo := NewSheetUserRepository(store, tables)

	user := &model.User{
		Company: "Acme", FullName: "Pat", Email: "pat@example.com",
		Position: "Engineer", Department: "IT", Gender: "Other",
		PasswordHash: model.HashPassword("secret"),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	row := store.tables[key][1]
	if row[6] != row[7] {
		t.Fatal("confirm_password column does not mirror password")
	}

	found, err := repo.FindByEmail(context.Background(), "pat@example.com")
	if err != nil {
		t.Fatalf("FindByEmail returned error: %v", err)
	}
	if found.FullName != "Pat" || found.PasswordHash != user.PasswordHash {
		t.Fatalf("found = %+v", found)
	}

	if _, err := repo.FindByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestSheetAdminRepository(t *testing.T) {
	store := newFakeTableStore()
	tables := testTables()
	key := tableKey(tables.Admin)
	store.tables[key] = [][]string{
		{"username", "password"},
		{"admin", model.HashPassword("admin123")},
	}
	repo := NewSheetAdminRepository(store, tables)

	cred, err := repo.Credential(context.Background())
	if err != nil {
		t.Fatalf("Credential returned error: %v", err)
	}
	if cred.Username != "admin" || !model.VerifyPassword(cred.PasswordHash, "admin123") {
		t.Fatalf("credential = %+v", cred)
	}

	newHash := model.HashPassword("changed")
	if err := repo.UpdatePassword(context.Background(), newHash); err != nil {
		t.Fatalf("UpdatePassword returned error: %v", err)
	}
	if got := store.tables[key][1][1]; got != newHash {
		t.Fatalf("cell B2 = %q, want the new hash", got)
	}
}

func TestParticipantSheetName(t *testing.T) {
	if got := participantSheetName("pat.q+test@example.com"); got != "pat_q_test_example_com" {
		t.Fatalf("participantSheetName = %q", got)
	}
	long := ""
	for i := 0; i < 120; i++ {
		long += "a"
	}
	if got := participantSheetName(long); len(got) != 100 {
		t.Fatalf("long name has length %d, want 100", len(got))
	}
}
