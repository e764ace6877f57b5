package service

import (
	"context"
	"errors"
	"testing"

	"github.com/wakaf-tunai/internal/constants"
	"github.com/wakaf-tunai/internal/models"
	"github.com/wakaf-tunai/internal/repository"
)

type fakeAuthorizer struct {
	granted map[uint]string
	revoked []uint
	err     error
}

func (a *fakeAuthorizer) GrantRole(adminID uint, role string) error {
	if a.err != nil {
		return a.err
	}
	if a.granted == nil {
		a.granted = map[uint]string{}
	}
	a.granted[adminID] = role
	return nil
}

func (a *fakeAuthorizer) RevokeAdmin(adminID uint) error {
	a.revoked = append(a.revoked, adminID)
	return nil
}

func setupAdminUserServiceTest(t *testing.T) (*AdminUserService, *AuthService, *fakeAuthorizer) {
	t.Helper()
	db := openTestDB(t)
	repo := repository.NewAdminRepository(db)
	auth := NewAuthService(testConfig(), repo)
	authz := &fakeAuthorizer{}
	return NewAdminUserService(repo, auth, authz), auth, authz
}

func TestAdminSetupOnlyOnce(t *testing.T) {
	svc, _, authz := setupAdminUserServiceTest(t)
	admin, err := svc.Setup("Admin@Example.com ", "rahasia123")
	if err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if admin.Email != "admin@example.com" {
		t.Fatalf("email want normalized got %s", admin.Email)
	}
	if authz.granted[admin.ID] != constants.RoleOperator {
		t.Fatalf("setup admin should be granted operator role")
	}
	if _, err := svc.Setup("other@example.com", "rahasia123"); !errors.Is(err, ErrSetupDone) {
		t.Fatalf("second setup want ErrSetupDone got %v", err)
	}
}

func TestAdminCreateValidation(t *testing.T) {
	svc, _, _ := setupAdminUserServiceTest(t)
	if _, err := svc.Create("", "rahasia123"); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("want ErrEmailRequired got %v", err)
	}
	if _, err := svc.Create("not-an-email", "rahasia123"); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("want ErrEmailRequired got %v", err)
	}
	if _, err := svc.Create("a@example.com", "short1"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword got %v", err)
	}
	if _, err := svc.Create("a@example.com", "longpassword"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("missing number want ErrWeakPassword got %v", err)
	}
	if _, err := svc.Create("a@example.com", "rahasia123"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create("A@example.com", "rahasia123"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists got %v", err)
	}
}

func TestAdminCreateRollsBackWhenGrantFails(t *testing.T) {
	svc, _, authz := setupAdminUserServiceTest(t)
	authz.err = errors.New("casbin unavailable")
	if _, err := svc.Create("a@example.com", "rahasia123"); !errors.Is(err, ErrStorage) {
		t.Fatalf("want storage error got %v", err)
	}
	admins, err := svc.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(admins) != 0 {
		t.Fatalf("admin should be rolled back, got %d", len(admins))
	}
}

func TestAdminDeleteGuardsSelf(t *testing.T) {
	svc, _, authz := setupAdminUserServiceTest(t)
	first, err := svc.Create("first@example.com", "rahasia123")
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create("second@example.com", "rahasia123")
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	if err := svc.Delete(first.ID, first.ID); !errors.Is(err, ErrCannotDeleteSelf) {
		t.Fatalf("self delete want ErrCannotDeleteSelf got %v", err)
	}
	if err := svc.Delete(first.ID, second.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(authz.revoked) != 1 || authz.revoked[0] != second.ID {
		t.Fatalf("deleted admin should be revoked: %v", authz.revoked)
	}
	if err := svc.Delete(first.ID, second.ID); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("second delete want ErrAdminNotFound got %v", err)
	}
}

func TestLoginIssuesToken(t *testing.T) {
	svc, auth, _ := setupAdminUserServiceTest(t)
	admin, err := svc.Create("staff@example.com", "rahasia123")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, _, _, err := auth.Login("staff@example.com", "wrong-pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := auth.Login("nobody@example.com", "rahasia123"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("unknown email want unauthorized got %v", err)
	}
	if _, _, _, err := auth.Login(" ", ""); !errors.Is(err, ErrEmailRequired) {
		t.Fatalf("blank login want ErrEmailRequired got %v", err)
	}

	logged, token, expiresAt, err := auth.Login(" STAFF@example.com", "rahasia123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != admin.ID || token == "" || expiresAt.IsZero() || logged.LastLoginAt == nil {
		t.Fatalf("unexpected login result: %+v token=%q", logged, token)
	}
	claims, err := auth.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.AdminID != admin.ID || claims.Email != "staff@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	state, err := auth.ResolveAdminAuthState(context.Background(), admin.ID)
	if err != nil || state == nil || state.TokenVersion != admin.TokenVersion {
		t.Fatalf("resolve auth state failed: %+v err=%v", state, err)
	}
}

func TestParseJWTRejectsForeignSecret(t *testing.T) {
	_, auth, _ := setupAdminUserServiceTest(t)
	other := NewAuthService(testConfig(), nil)
	other.cfg.JWT.SecretKey = "another-secret"
	token, _, err := other.GenerateJWT(&models.Admin{ID: 1, Email: "x@example.com"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := auth.ParseJWT(token); err == nil {
		t.Fatalf("token signed with another secret must be rejected")
	}
}
