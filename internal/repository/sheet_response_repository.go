package repository

import (
	"context"
	"strconv"

	"github.com/lshigami/Stonechat/internal/model"
	"github.com/lshigami/Stonechat/internal/sheetstore"
)

type sheetResponseRepository struct {
	store  sheetstore.TableStore
	tables SheetTables
}

func NewSheetResponseRepository(store sheetstore.TableStore, tables SheetTables) ResponseRepository {
	return &sheetResponseRepository{store: store, tables: tables}
}

func (r *sheetResponseRepository) AppendRecord(ctx context.Context, record *model.ResponseRecord) error {
	return r.store.AppendRow(ctx, r.tables.Responses, []string{
		record.Email,
		strconv.Itoa(record.QuestionID),
		record.Selected,
		formatBool(record.IsCorrect),
		formatScore(record.Score),
		record.Timestamp,
		strconv.Itoa(record.EditNo),
	})
}

func (r *sheetResponseRepository) FindAllRecords(ctx context.Context) ([]model.ResponseRecord, error) {
	values, err := r.store.GetAllValues(ctx, r.tables.Responses)
	if err != nil {
		return nil, err
	}
	rows := sheetstore.Records(values)
	records := make([]model.ResponseRecord, 0, len(rows))
	for _, row := range rows {
		if row["email"] == "" {
			continue
		}
		records = append(records, model.ResponseRecord{
			Email:      row["email"],
			QuestionID: parseInt(row["question id"]),
			Selected:   row["selected answers"],
			IsCorrect:  parseBool(row["is correct"]),
			Score:      parseScore(row["score"]),
			Timestamp:  row["timestamp"],
			EditNo:     parseInt(row["edit no"]),
		})
	}
	return records, nil
}

func (r *sheetResponseRepository) FindRecordsByEmail(ctx context.Context, email string) ([]model.ResponseRecord, error) {
	records, err := r.FindAllRecords(ctx)
	if err != nil {
		return nil, err
	}
	mine := records[:0:0]
	for _, rec := range records {
		if rec.Email == email {
			mine = append(mine, rec)
		}
	}
	return mine, nil
}

func (r *sheetResponseRepository) State(ctx context.Context, email string) (*model.ParticipantState, error) {
	table := r.tables.participantTable(email)
	if err := r.store.EnsureTable(ctx, table, participantHeader); err != nil {
		return nil, err
	}
	values, err := r.store.GetAllValues(ctx, table)
	if err != nil {
		return nil, err
	}

	state := &model.ParticipantState{Email: email}
	// The counter lives in a reserved cell on the header row.
	if len(values) > 0 && len(values[0]) >= editCounterColumn {
		state.EditCount = parseInt(values[0][editCounterColumn-1])
	}
	for i, row := range values {
		if i == 0 {
			continue
		}
		answer := participantAnswerFromRow(email, row)
		if answer.QuestionID == 0 && answer.Timestamp == "" {
			continue
		}
		state.Answers = append(state.Answers, answer)
	}
	return state, nil
}

func (r *sheetResponseRepository) UpsertAnswer(ctx context.Context, email string, answer model.ParticipantAnswer) error {
	table := r.tables.participantTable(email)
	if err := r.store.EnsureTable(ctx, table, participantHeader); err != nil {
		return err
	}
	values, err := r.store.GetAllValues(ctx, table)
	if err != nil {
		return err
	}
	row := []string{
		answer.Timestamp,
		strconv.Itoa(answer.QuestionID),
		answer.Selected,
		formatBool(answer.IsCorrect),
		formatScore(answer.Score),
	}
	want := strconv.Itoa(answer.QuestionID)
	for i, existing := range values {
		if i == 0 {
			continue
		}
		if len(existing) > 1 && existing[1] == want {
			return r.store.UpdateRange(ctx, table, i+1, 1, [][]string{row})
		}
	}
	return r.store.AppendRow(ctx, table, row)
}

func (r *sheetResponseRepository) SetEditCount(ctx context.Context, email string, count int) error {
	table := r.tables.participantTable(email)
	return r.store.UpdateCell(ctx, table, 1, editCounterColumn, strconv.Itoa(count))
}

func participantAnswerFromRow(email string, row []string) model.ParticipantAnswer {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return model.ParticipantAnswer{
		Email:      email,
		Timestamp:  cell(0),
		QuestionID: parseInt(cell(1)),
		Selected:   cell(2),
		IsCorrect:  parseBool(cell(3)),
		Score:      parseScore(cell(4)),
	}
}
