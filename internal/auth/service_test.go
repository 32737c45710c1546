package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pkgAuth "github.com/storefront-labs/storefront-backend/pkg/auth"
	"github.com/storefront-labs/storefront-backend/pkg/auth/session"
	"github.com/storefront-labs/storefront-backend/pkg/config"
	pkgmodels "github.com/storefront-labs/storefront-backend/pkg/db/models"
	pkgerrors "github.com/storefront-labs/storefront-backend/pkg/errors"
	"github.com/storefront-labs/storefront-backend/pkg/security"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byUsername map[string]*pkgmodels.User
	lastLogin  map[uuid.UUID]time.Time
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: map[string]*pkgmodels.User{},
		lastLogin:  map[uuid.UUID]time.Time{},
	}
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*pkgmodels.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	f.lastLogin[id] = at
	return nil
}

type fakeSessionManager struct {
	generated map[string]string
	revoked   []string
}

func newFakeSessionManager() *fakeSessionManager {
	return &fakeSessionManager{generated: map[string]string{}}
}

func (f *fakeSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	f.generated[accessID] = token
	return token, nil
}

func (f *fakeSessionManager) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := f.generated[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(f.generated, oldAccessID)
	newAccessID := uuid.NewString()
	newToken := "refresh-" + newAccessID
	f.generated[newAccessID] = newToken
	return newAccessID, newToken, nil
}

func (f *fakeSessionManager) Revoke(_ context.Context, accessID string) error {
	delete(f.generated, accessID)
	f.revoked = append(f.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "storefront",
		ExpirationMinutes: 15,
	}
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string, isAdmin bool) *pkgmodels.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &pkgmodels.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
	}
	repo.byUsername[username] = user
	return user
}

func newAuthTestService(t *testing.T, repo *fakeUserRepo, sessions *fakeSessionManager) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func expectUnauthorized(t *testing.T, err error) {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("expected app error, got %v", err)
	}
	if appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %s", appErr.Code())
	}
	if appErr.Message() != invalidCredentialsMessage {
		t.Fatalf("expected generic credentials message, got %q", appErr.Message())
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionManager()
	user := seedUser(t, repo, "jamie", "Secret123!", true)
	svc := newAuthTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "jamie", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User == nil || resp.User.ID != user.ID {
		t.Fatal("expected user in response")
	}
	if !resp.User.IsAdmin {
		t.Fatal("expected isAdmin carried through")
	}
	if resp.RefreshToken == "" {
		t.Fatal("expected refresh token")
	}
	if _, ok := repo.lastLogin[user.ID]; !ok {
		t.Fatal("expected last login to be recorded")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatal("token user mismatch")
	}
	if !claims.IsAdmin {
		t.Fatal("token admin flag missing")
	}
	if _, ok := sessions.generated[claims.ID]; !ok {
		t.Fatal("expected refresh session keyed by token jti")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "jamie", "Secret123!", false)
	svc := newAuthTestService(t, repo, newFakeSessionManager())

	_, err := svc.Login(context.Background(), LoginRequest{Username: "jamie", Password: "nope"})
	expectUnauthorized(t, err)
}

func TestLoginUnknownUserMatchesWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "jamie", "Secret123!", false)
	svc := newAuthTestService(t, repo, newFakeSessionManager())

	// Unknown user and bad password must be indistinguishable to the caller.
	_, unknownErr := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "Secret123!"})
	expectUnauthorized(t, unknownErr)

	_, badPassErr := svc.Login(context.Background(), LoginRequest{Username: "jamie", Password: "nope"})
	expectUnauthorized(t, badPassErr)

	if unknownErr.Error() != badPassErr.Error() {
		t.Fatal("error surface differs between unknown user and wrong password")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionManager()
	seedUser(t, repo, "jamie", "Secret123!", false)
	svc := newAuthTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "jamie", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	if err := svc.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.generated) != 0 {
		t.Fatal("expected session removed on logout")
	}
}

func TestRefreshRotatesPair(t *testing.T) {
	repo := newFakeUserRepo()
	sessions := newFakeSessionManager()
	seedUser(t, repo, "jamie", "Secret123!", false)
	svc := newAuthTestService(t, repo, sessions)

	login, err := svc.Login(context.Background(), LoginRequest{Username: "jamie", Password: "Secret123!"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Fatal("expected refresh token rotation")
	}

	// The old pair is spent.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized on replay, got %v", err)
	}
}
