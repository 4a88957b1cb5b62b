package repository

import (
	"context"

	"github.com/lshigami/Stonechat/internal/model"
	"github.com/lshigami/Stonechat/internal/sheetstore"
)

type sheetAdminRepository struct {
	store  sheetstore.TableStore
	tables SheetTables
}

func NewSheetAdminRepository(store sheetstore.TableStore, tables SheetTables) AdminRepository {
	return &sheetAdminRepository{store: store, tables: tables}
}

func (r *sheetAdminRepository) Credential(ctx context.Context) (*model.AdminCredential, error) {
	values, err := r.store.GetAllValues(ctx, r.tables.Admin)
	if err != nil {
		return nil, err
	}
	rows := sheetstore.Records(values)
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &model.AdminCredential{
		Username:     rows[0]["username"],
		PasswordHash: rows[0]["password"],
	}, nil
}

func (r *sheetAdminRepository) UpdatePassword(ctx context.Context, hash string) error {
	// The credential is the single data row under the header: cell B2.
	return r.store.UpdateCell(ctx, r.tables.Admin, 2, 2, hash)
}
