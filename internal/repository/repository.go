package repository

import (
	"context"
	"errors"

	"github.com/lshigami/Stonechat/internal/model"
)

// ErrNotFound is returned when a looked-up entity does not exist. Both
// backends map their own not-found conditions onto it.
var ErrNotFound = errors.New("repository: not found")

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
}

type AdminRepository interface {
	Credential(ctx context.Context) (*model.AdminCredential, error)
	UpdatePassword(ctx context.Context, hash string) error
}

type QuestionRepository interface {
	FindAll(ctx context.Context) ([]model.Question, error)
	Create(ctx context.Context, question *model.Question) error
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id int) error
	// UpdateID rewrites a question's ID in place. Used only by renumbering.
	UpdateID(ctx context.Context, oldID, newID int) error
}

type ResponseRepository interface {
	// AppendRecord adds one immutable row to the global ledger.
	AppendRecord(ctx context.Context, record *model.ResponseRecord) error
	FindAllRecords(ctx context.Context) ([]model.ResponseRecord, error)
	FindRecordsByEmail(ctx context.Context, email string) ([]model.ResponseRecord, error)
	// State loads (creating storage if needed) the participant's
	// latest-answer snapshot and edit counter.
	State(ctx context.Context, email string) (*model.ParticipantState, error)
	// UpsertAnswer replaces the participant's row for the answer's question,
	// or appends it when the question was not answered before.
	UpsertAnswer(ctx context.Context, email string, answer model.ParticipantAnswer) error
	SetEditCount(ctx context.Context, email string, count int) error
}
