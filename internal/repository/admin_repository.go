package repository

import (
	"context"
	"errors"

	"github.com/lshigami/Stonechat/internal/model"
	"gorm.io/gorm"
)

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Credential(ctx context.Context) (*model.AdminCredential, error) {
	var cred model.AdminCredential
	err := r.db.WithContext(ctx).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *adminRepository) UpdatePassword(ctx context.Context, hash string) error {
	cred, err := r.Credential(ctx)
	if err != nil {
		return err
	}
	cred.PasswordHash = hash
	return r.db.WithContext(ctx).Save(cred).Error
}
