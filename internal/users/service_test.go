package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"smarthire-backend/internal/shared/auth"
)

func newTestService() *Service {
	return NewService(NewMemoryRepo(), auth.NewTokenManager("test-secret", time.Hour))
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newTestService()

	user, token, err := svc.Register(context.Background(), "Ada", "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Error("expected a token")
	}
	if user.Role != RoleStudent {
		t.Errorf("role = %q, want student", user.Role)
	}
	if user.PasswordHash == "secret1" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Errorf("hash does not verify: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("wrong")); err == nil {
		t.Error("hash verified a wrong password")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(ctx, "Imposter", "ADA@example.com", "secret2"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("got %d users, want 1", len(all))
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name, userName, email, password string
	}{
		{"missing name", "", "a@b.co", "secret1"},
		{"bad email", "Ada", "not-an-email", "secret1"},
		{"short password", "Ada", "ada@example.com", "12345"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Register(ctx, tc.userName, tc.email, tc.password); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, token, err := svc.Login(ctx, "Ada@Example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("logged-in user %q, want %q", user.ID, registered.ID)
	}
	if token == "" {
		t.Error("expected a token")
	}

	if _, _, err := svc.Login(ctx, "ada@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	updated, err := svc.Update(ctx, user.ID, UpdateInput{Role: RoleAdmin})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Role != RoleAdmin {
		t.Errorf("role = %q, want admin", updated.Role)
	}
	if updated.Name != "Ada" {
		t.Errorf("name changed unexpectedly to %q", updated.Name)
	}

	if _, err := svc.Update(ctx, user.ID, UpdateInput{Role: "superuser"}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("bad role: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Update(ctx, "missing-id", UpdateInput{Name: "X"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user: err = %v, want ErrNotFound", err)
	}
}
