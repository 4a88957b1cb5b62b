package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lshigami/Stonechat/config"
	"github.com/lshigami/Stonechat/internal/dto"
	"github.com/lshigami/Stonechat/internal/middleware"
	"github.com/lshigami/Stonechat/internal/model"
	"github.com/lshigami/Stonechat/internal/repository"
)

type fakeUserRepo struct {
	users map[string]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]model.User)}
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.users[user.Email] = *user
	return nil
}

type fakeAdminRepo struct {
	cred model.AdminCredential
}

func (f *fakeAdminRepo) Credential(_ context.Context) (*model.AdminCredential, error) {
	c := f.cred
	return &c, nil
}

func (f *fakeAdminRepo) UpdatePassword(_ context.Context, hash string) error {
	f.cred.PasswordHash = hash
	return nil
}

func testTokens() *middleware.JWTManager {
	return middleware.NewJWTManager(&config.Config{
		Auth: config.Auth{JWTSecret: "test-secret", TokenTTL: time.Minute},
	})
}

func registerRequest(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Company:         "Acme",
		FullName:        "Pat Example",
		Email:           email,
		Position:        "Engineer",
		Department:      "IT",
		Gender:          "Other",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
}

func TestRegisterHashesAndStores(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewIdentityService(users, &fakeAdminRepo{}, testTokens())

	profile, err := svc.Register(context.Background(), registerRequest("pat@example.com"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if profile.Email != "pat@example.com" || profile.FullName != "Pat Example" {
		t.Fatalf("profile = %+v", profile)
	}

	stored := users.users["pat@example.com"]
	if stored.PasswordHash == "secret" || stored.PasswordHash == "" {
		t.Fatalf("password stored as %q, want a hash", stored.PasswordHash)
	}
	if !model.VerifyPassword(stored.PasswordHash, "secret") {
		t.Fatal("stored hash does not verify against the original password")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewIdentityService(users, &fakeAdminRepo{}, testTokens())

	if _, err := svc.Register(context.Background(), registerRequest("pat@example.com")); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	if _, err := svc.Register(context.Background(), registerRequest("pat@example.com")); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	svc := NewIdentityService(newFakeUserRepo(), &fakeAdminRepo{}, testTokens())

	req := registerRequest("pat@example.com")
	req.ConfirmPassword = "different"
	if _, err := svc.Register(context.Background(), req); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("got %v, want ErrPasswordMismatch", err)
	}
}

func TestLoginParticipant(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewIdentityService(users, &fakeAdminRepo{}, testTokens())
	if _, err := svc.Register(context.Background(), registerRequest("pat@example.com")); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.LoginParticipant(context.Background(), dto.LoginRequest{Email: "pat@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("LoginParticipant returned error: %v", err)
	}
	if resp.Token == "" || resp.Role != middleware.RoleParticipant || resp.Profile == nil {
		t.Fatalf("response = %+v", resp)
	}

	if _, err := svc.LoginParticipant(context.Background(), dto.LoginRequest{Email: "pat@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.LoginParticipant(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "secret"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginAdmin(t *testing.T) {
	admin := &fakeAdminRepo{cred: model.AdminCredential{
		Username:     "admin",
		PasswordHash: model.HashPassword("admin123"),
	}}
	svc := NewIdentityService(newFakeUserRepo(), admin, testTokens())

	resp, err := svc.LoginAdmin(context.Background(), dto.AdminLoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("LoginAdmin returned error: %v", err)
	}
	if resp.Role != middleware.RoleAdmin || resp.Token == "" {
		t.Fatalf("response = %+v", resp)
	}

	if _, err := svc.LoginAdmin(context.Background(), dto.AdminLoginRequest{Username: "root", Password: "admin123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong username: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.LoginAdmin(context.Background(), dto.AdminLoginRequest{Username: "admin", Password: "nope"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
}

func TestChangeAdminPassword(t *testing.T) {
	admin := &fakeAdminRepo{cred: model.AdminCredential{
		Username:     "admin",
		PasswordHash: model.HashPassword("old"),
	}}
	svc := NewIdentityService(newFakeUserRepo(), admin, testTokens())

	err := svc.ChangeAdminPassword(context.Background(), dto.ChangePasswordRequest{Current: "wrong", New: "new", Confirm: "new"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong current password: got %v, want ErrInvalidCredentials", err)
	}

	err = svc.ChangeAdminPassword(context.Background(), dto.ChangePasswordRequest{Current: "old", New: "new", Confirm: "other"})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("confirmation mismatch: got %v, want ErrPasswordMismatch", err)
	}

	if err := svc.ChangeAdminPassword(context.Background(), dto.ChangePasswordRequest{Current: "old", New: "new", Confirm: "new"}); err != nil {
		t.Fatalf("ChangeAdminPassword returned error: %v", err)
	}
	if !model.VerifyPassword(admin.cred.PasswordHash, "new") {
		t.Fatal("stored hash does not match the new password")
	}
}

func TestResetAdminPassword(t *testing.T) {
	admin := &fakeAdminRepo{cred: model.AdminCredential{
		Username:     "admin",
		PasswordHash: model.HashPassword("whatever"),
	}}
	svc := NewIdentityService(newFakeUserRepo(), admin, testTokens())

	if err := svc.ResetAdminPassword(context.Background()); err != nil {
		t.Fatalf("ResetAdminPassword returned error: %v", err)
	}
	if !model.VerifyPassword(admin.cred.PasswordHash, model.DefaultAdminPassword) {
		t.Fatal("stored hash does not match the default password")
	}
}
