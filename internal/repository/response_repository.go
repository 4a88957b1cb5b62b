package repository

import (
	"context"
	"errors"

	"github.com/lshigami/Stonechat/internal/model"
	"gorm.io/gorm"
)

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) AppendRecord(ctx context.Context, record *model.ResponseRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *responseRepository) FindAllRecords(ctx context.Context) ([]model.ResponseRecord, error) {
	var records []model.ResponseRecord
	if err := r.db.WithContext(ctx).Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *responseRepository) FindRecordsByEmail(ctx context.Context, email string) ([]model.ResponseRecord, error) {
	var records []model.ResponseRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).Order("id asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *responseRepository) State(ctx context.Context, email string) (*model.ParticipantState, error) {
	state := &model.ParticipantState{Email: email}

	var counter model.ParticipantCounter
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&counter).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		state.EditCount = 0
	case err != nil:
		return nil, err
	default:
		state.EditCount = counter.EditCount
	}

	if err := r.db.WithContext(ctx).Where("email = ?", email).Order("question_id asc").
		Find(&state.Answers).Error; err != nil {
		return nil, err
	}
	return state, nil
}

func (r *responseRepository) UpsertAnswer(ctx context.Context, email string, answer model.ParticipantAnswer) error {
	answer.Email = email
	var existing model.ParticipantAnswer
	err := r.db.WithContext(ctx).
		Where("email = ? AND question_id = ?", email, answer.QuestionID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(&answer).Error
	}
	if err != nil {
		return err
	}
	answer.ID = existing.ID
	return r.db.WithContext(ctx).Save(&answer).Error
}

func (r *responseRepository) SetEditCount(ctx context.Context, email string, count int) error {
	counter := model.ParticipantCounter{Email: email, EditCount: count}
	return r.db.WithContext(ctx).Save(&counter).Error
}
