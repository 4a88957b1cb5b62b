package repository

import (
	"context"

	"github.com/lshigami/Stonechat/internal/model"
	"github.com/lshigami/Stonechat/internal/sheetstore"
)

type sheetUserRepository struct {
	store  sheetstore.TableStore
	tables SheetTables
}

func NewSheetUserRepository(store sheetstore.TableStore, tables SheetTables) UserRepository {
	return &sheetUserRepository{store: store, tables: tables}
}

func (r *sheetUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *sheetUserRepository) FindAll(ctx context.Context) ([]model.User, error) {
	values, err := r.store.GetAllValues(ctx, r.tables.Users)
	if err != nil {
		return nil, err
	}
	rows := sheetstore.Records(values)
	users := make([]model.User, 0, len(rows))
	for _, row := range rows {
		if row["email"] == "" {
			continue
		}
		users = append(users, model.User{
			Company:      row["company"],
			FullName:     row["full_name"],
			Email:        row["email"],
			Position:     row["position"],
			Department:   row["department"],
			Gender:       row["gender"],
			PasswordHash: row["password"],
		})
	}
	return users, nil
}

func (r *sheetUserRepository) Create(ctx context.Context, user *model.User) error {
	// The confirm_password column mirrors password; both hold the hash.
	return r.store.AppendRow(ctx, r.tables.Users, []string{
		user.Company, user.FullName, user.Email, user.Position,
		user.Department, user.Gender, user.PasswordHash, user.PasswordHash,
	})
}
