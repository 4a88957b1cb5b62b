package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Stonechat/internal/dto"
	"github.com/lshigami/Stonechat/internal/middleware"
	"github.com/lshigami/Stonechat/internal/model"
	"github.com/lshigami/Stonechat/internal/repository"
	"github.com/rs/zerolog/log"
)

// IdentityService handles registration and credential checks. Passwords are
// only ever held as hex sha256 hashes (see model.HashPassword for the compat
// caveat).
type IdentityService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserProfile, error)
	LoginParticipant(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	LoginAdmin(ctx context.Context, req dto.AdminLoginRequest) (*dto.TokenResponse, error)
	ChangeAdminPassword(ctx context.Context, req dto.ChangePasswordRequest) error
	ResetAdminPassword(ctx context.Context) error
}

type identityService struct {
	users  repository.UserRepository
	admin  repository.AdminRepository
	tokens *middleware.JWTManager
}

func NewIdentityService(users repository.UserRepository, admin repository.AdminRepository, tokens *middleware.JWTManager) IdentityService {
	return &identityService{users: users, admin: admin, tokens: tokens}
}

func (s *identityService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserProfile, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	_, err := s.users.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking existing email: %w", err)
	}

	user := model.User{
		Company:      req.Company,
		FullName:     req.FullName,
		Email:        req.Email,
		Position:     req.Position,
		Department:   req.Department,
		Gender:       req.Gender,
		PasswordHash: model.HashPassword(req.Password),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	log.Info().Str("email", user.Email).Msg("Participant registered")

	var profile dto.UserProfile
	if err := copier.Copy(&profile, &user); err != nil {
		return nil, fmt.Errorf("preparing profile: %w", err)
	}
	return &profile, nil
}

func (s *identityService) LoginParticipant(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !model.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(user.Email, middleware.RoleParticipant)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	var profile dto.UserProfile
	if err := copier.Copy(&profile, user); err != nil {
		return nil, fmt.Errorf("preparing profile: %w", err)
	}
	return &dto.TokenResponse{
		Token:   token,
		Role:    middleware.RoleParticipant,
		Email:   user.Email,
		Profile: &profile,
	}, nil
}

func (s *identityService) LoginAdmin(ctx context.Context, req dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	cred, err := s.admin.Credential(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if req.Username != cred.Username || !model.VerifyPassword(cred.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(cred.Username, middleware.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}
	return &dto.TokenResponse{Token: token, Role: middleware.RoleAdmin}, nil
}

func (s *identityService) ChangeAdminPassword(ctx context.Context, req dto.ChangePasswordRequest) error {
	cred, err := s.admin.Credential(ctx)
	if err != nil {
		return err
	}
	if !model.VerifyPassword(cred.PasswordHash, req.Current) {
		return ErrInvalidCredentials
	}
	if req.New != req.Confirm {
		return ErrPasswordMismatch
	}
	return s.admin.UpdatePassword(ctx, model.HashPassword(req.New))
}

func (s *identityService) ResetAdminPassword(ctx context.Context) error {
	log.Info().Msg("Resetting admin password to default")
	return s.admin.UpdatePassword(ctx, model.HashPassword(model.DefaultAdminPassword))
}
