package repository

import (
	"context"
	"strconv"

	"github.com/lshigami/Stonechat/internal/model"
	"github.com/lshigami/Stonechat/internal/sheetstore"
)

type sheetQuestionRepository struct {
	store  sheetstore.TableStore
	tables SheetTables
}

func NewSheetQuestionRepository(store sheetstore.TableStore, tables SheetTables) QuestionRepository {
	return &sheetQuestionRepository{store: store, tables: tables}
}

func (r *sheetQuestionRepository) FindAll(ctx context.Context) ([]model.Question, error) {
	values, err := r.store.GetAllValues(ctx, r.tables.Questions)
	if err != nil {
		return nil, err
	}
	rows := sheetstore.Records(values)
	questions := make([]model.Question, 0, len(rows))
	for _, row := range rows {
		if row["question id"] == "" {
			continue
		}
		questions = append(questions, model.Question{
			ID:             parseInt(row["question id"]),
			Text:           row["question text"],
			Options:        row["options"],
			CorrectAnswers: row["correct answers"],
			Points:         parseInt(row["points"]),
		})
	}
	return questions, nil
}

func (r *sheetQuestionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.store.AppendRow(ctx, r.tables.Questions, questionRow(question))
}

func (r *sheetQuestionRepository) Update(ctx context.Context, question *model.Question) error {
	rowNum, err := r.rowOf(ctx, question.ID)
	if err != nil {
		return err
	}
	return r.store.UpdateRange(ctx, r.tables.Questions, rowNum, 1, [][]string{questionRow(question)})
}

func (r *sheetQuestionRepository) Delete(ctx context.Context, id int) error {
	rowNum, err := r.rowOf(ctx, id)
	if err != nil {
		return err
	}
	return r.store.DeleteRow(ctx, r.tables.Questions, rowNum)
}

func (r *sheetQuestionRepository) UpdateID(ctx context.Context, oldID, newID int) error {
	rowNum, err := r.rowOf(ctx, oldID)
	if err != nil {
		return err
	}
	return r.store.UpdateCell(ctx, r.tables.Questions, rowNum, 1, strconv.Itoa(newID))
}

// rowOf finds the 1-based sheet row holding the question with the given ID.
func (r *sheetQuestionRepository) rowOf(ctx context.Context, id int) (int, error) {
	values, err := r.store.GetAllValues(ctx, r.tables.Questions)
	if err != nil {
		return 0, err
	}
	want := strconv.Itoa(id)
	for i, row := range values {
		if i == 0 {
			continue // header
		}
		if len(row) > 0 && row[0] == want {
			return i + 1, nil
		}
	}
	return 0, ErrNotFound
}

func questionRow(q *model.Question) []string {
	return []string{
		strconv.Itoa(q.ID), q.Text, q.Options, q.CorrectAnswers, strconv.Itoa(q.Points),
	}
}
