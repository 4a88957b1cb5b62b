package repository

import (
	"context"
	"fmt"

	"github.com/lshigami/Stonechat/config"
	"github.com/lshigami/Stonechat/database"
	"github.com/lshigami/Stonechat/internal/model"
	"github.com/lshigami/Stonechat/internal/sheetstore"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Repositories bundles one implementation set of the storage boundary.
type Repositories struct {
	Users     UserRepository
	Admin     AdminRepository
	Questions QuestionRepository
	Responses ResponseRepository
}

// NewRepositories builds the repository set for the configured backend,
// creating tables and seeding default credentials where missing.
func NewRepositories(cfg *config.Config) (*Repositories, error) {
	switch cfg.Storage.Backend {
	case "postgres":
		return newPostgresRepositories(cfg)
	case "", "sheets":
		return newSheetRepositories(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func newPostgresRepositories(cfg *config.Config) (*Repositories, error) {
	db, err := database.NewDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.AdminCredential{},
		&model.Question{},
		&model.ResponseRecord{},
		&model.ParticipantAnswer{},
		&model.ParticipantCounter{},
	); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	if err := seedPostgres(db); err != nil {
		return nil, err
	}
	return &Repositories{
		Users:     NewUserRepository(db),
		Admin:     NewAdminRepository(db),
		Questions: NewQuestionRepository(db),
		Responses: NewResponseRepository(db),
	}, nil
}

func seedPostgres(db *gorm.DB) error {
	var admins int64
	if err := db.Model(&model.AdminCredential{}).Count(&admins).Error; err != nil {
		return err
	}
	if admins == 0 {
		log.Info().Msg("Seeding default admin credential")
		cred := model.AdminCredential{
			Username:     "admin",
			PasswordHash: model.HashPassword(model.DefaultAdminPassword),
		}
		if err := db.Create(&cred).Error; err != nil {
			return err
		}
	}
	var users int64
	if err := db.Model(&model.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users == 0 {
		if err := db.Create(defaultUser()).Error; err != nil {
			return err
		}
	}
	return nil
}

func newSheetRepositories(cfg *config.Config) (*Repositories, error) {
	ctx := context.Background()
	store, err := sheetstore.NewClient(ctx, cfg.Sheets.CredentialsFile, cfg.Storage.CacheTTL)
	if err != nil {
		return nil, err
	}
	tables := NewSheetTables(cfg.Sheets)
	if err := bootstrapSheets(ctx, store, tables); err != nil {
		return nil, err
	}
	return &Repositories{
		Users:     NewSheetUserRepository(store, tables),
		Admin:     NewSheetAdminRepository(store, tables),
		Questions: NewSheetQuestionRepository(store, tables),
		Responses: NewSheetResponseRepository(store, tables),
	}, nil
}

func bootstrapSheets(ctx context.Context, store sheetstore.TableStore, tables SheetTables) error {
	for _, t := range []struct {
		table  sheetstore.Table
		header []string
	}{
		{tables.Users, usersHeader},
		{tables.Admin, adminHeader},
		{tables.Questions, questionsHeader},
		{tables.Responses, responsesHeader},
	} {
		if err := store.EnsureTable(ctx, t.table, t.header); err != nil {
			return err
		}
	}

	adminValues, err := store.GetAllValues(ctx, tables.Admin)
	if err != nil {
		return err
	}
	if len(adminValues) <= 1 {
		log.Info().Msg("Seeding default admin credential")
		hash := model.HashPassword(model.DefaultAdminPassword)
		if err := store.AppendRow(ctx, tables.Admin, []string{"admin", hash}); err != nil {
			return err
		}
	}

	userValues, err := store.GetAllValues(ctx, tables.Users)
	if err != nil {
		return err
	}
	if len(userValues) <= 1 {
		u := defaultUser()
		if err := store.AppendRow(ctx, tables.Users, []string{
			u.Company, u.FullName, u.Email, u.Position,
			u.Department, u.Gender, u.PasswordHash, u.PasswordHash,
		}); err != nil {
			return err
		}
	}
	return nil
}

func defaultUser() *model.User {
	return &model.User{
		Company:      "Default Company",
		FullName:     "Default User",
		Email:        "user@example.com",
		Position:     "Student",
		Department:   "IT",
		Gender:       "Other",
		PasswordHash: model.HashPassword("user123"),
	}
}
