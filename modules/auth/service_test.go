package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	domain "github.com/example/movies-explorer-api/domain/user"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "auth_test.db")
	db, err := openDatabase(dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewAuthService(NewUserRepository(db), NewPasswordHasher(), NewJWTManager(testJWTConfig()))
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Alice", "a@x.com", "p1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.ID == "" {
		t.Error("Register() returned empty user id")
	}
	if user.Email != "a@x.com" {
		t.Errorf("user.Email = %v, want a@x.com", user.Email)
	}
	if user.PasswordHash == "p1" {
		t.Error("password stored in plaintext")
	}

	token, err := svc.Login(ctx, "a@x.com", "p1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	claims, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("claims.UserID = %v, want %v", claims.UserID, user.ID)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "invalid email",
			email:    "not-an-email",
			password: "secret",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "empty email",
			email:    "",
			password: "secret",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "empty password",
			email:    "b@x.com",
			password: "",
			wantErr:  ErrPasswordRequired,
		},
		{
			name:     "name too short",
			userName: "A",
			email:    "c@x.com",
			password: "secret",
			wantErr:  ErrInvalidName,
		},
		{
			name:     "name too long",
			userName: "aaaaaaaaaabbbbbbbbbbccccccccccd",
			email:    "d@x.com",
			password: "secret",
			wantErr:  ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.userName, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "dup@x.com", "first"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Same email, completely different other fields
	_, err := svc.Register(ctx, "Other Name", "dup@x.com", "second-password")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register() error = %v, want ErrEmailTaken", err)
	}
}

func TestAuthService_LoginFailuresAreIdentical(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "known@x.com", "correct"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, unknownErr := svc.Login(ctx, "unknown@x.com", "whatever")
	_, wrongErr := svc.Login(ctx, "known@x.com", "wrong")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongErr)
	}
	// Unknown user and bad password must not be distinguishable
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("login failures differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Before", "before@x.com", "secret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, user.ID, "After", "after@x.com")
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Name != "After" || updated.Email != "after@x.com" {
		t.Errorf("UpdateProfile() = %v/%v, want After/after@x.com", updated.Name, updated.Email)
	}

	// Password must survive a profile update
	if _, err := svc.Login(ctx, "after@x.com", "secret"); err != nil {
		t.Errorf("Login() after update error = %v", err)
	}
}

func TestAuthService_UpdateProfileKeepsNameWhenOmitted(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Bob", "bob@x.com", "secret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Body shape is {name?, email}: an omitted name arrives as ""
	updated, err := svc.UpdateProfile(ctx, user.ID, "", "bob2@x.com")
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Name != "Bob" {
		t.Errorf("updated.Name = %q, want the stored name kept", updated.Name)
	}
	if updated.Email != "bob2@x.com" {
		t.Errorf("updated.Email = %v, want bob2@x.com", updated.Email)
	}

	// The kept name must be what is persisted, not just what was returned
	stored, err := svc.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if stored.Name != "Bob" {
		t.Errorf("stored.Name = %q, want Bob", stored.Name)
	}
}

func TestAuthService_UpdateProfileConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "taken@x.com", "secret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	user, err := svc.Register(ctx, "", "mine@x.com", "secret")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	_, err = svc.UpdateProfile(ctx, user.ID, "", "taken@x.com")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("UpdateProfile() error = %v, want ErrEmailTaken", err)
	}
}

func TestAuthService_UpdateProfileMissingUser(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UpdateProfile(context.Background(), "no-such-id", "", "ghost@x.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdateProfile() error = %v, want ErrUserNotFound", err)
	}
}

func TestOpenDatabase_SingleConnection(t *testing.T) {
	db, err := openDatabase(filepath.Join(t.TempDir(), "cap_test.db"))
	if err != nil {
		t.Fatalf("openDatabase() error = %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db.DB() error = %v", err)
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", got)
	}
}

func TestAuthService_GetUserMissing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetUser(context.Background(), "no-such-id")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser() error = %v, want ErrUserNotFound", err)
	}
}
