package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/wakaf-tunai/internal/constants"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestBootstrapGrantsOperatorToExistingAdmins(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.Bootstrap([]uint{1, 2}); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	for _, id := range []uint{1, 2} {
		allow, err := svc.EnforceAdmin(id, "/api/v1/admin/donations/42/approve", "post")
		if err != nil {
			t.Fatalf("enforce failed: %v", err)
		}
		if !allow {
			t.Fatalf("admin %d expected allow=true", id)
		}
	}

	allow, err := svc.EnforceAdmin(3, "/api/v1/admin/donations", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if allow {
		t.Fatalf("admin without role expected allow=false")
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.Bootstrap([]uint{1}); err != nil {
		t.Fatalf("first bootstrap failed: %v", err)
	}
	if err := svc.Bootstrap([]uint{1}); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	roles, err := svc.GetAdminRoles(1)
	if err != nil {
		t.Fatalf("get roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:"+constants.RoleOperator {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestRevokeAdminRemovesAccess(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.Bootstrap(nil); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := svc.GrantRole(7, constants.RoleOperator); err != nil {
		t.Fatalf("grant role failed: %v", err)
	}
	if err := svc.RevokeAdmin(7); err != nil {
		t.Fatalf("revoke admin failed: %v", err)
	}
	allow, err := svc.EnforceAdmin(7, "/admin/users", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if allow {
		t.Fatalf("revoked admin expected allow=false")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := map[string]string{
		"":                          "/",
		"admin/users":               "/admin/users",
		"/api/v1":                   "/",
		"/api/v1/admin/donations/1": "/admin/donations/1",
	}
	for in, want := range cases {
		if got := NormalizeObject(in); got != want {
			t.Fatalf("NormalizeObject(%q) want %q got %q", in, want, got)
		}
	}
}

func TestNormalizeRoleRejectsAnchor(t *testing.T) {
	if _, err := NormalizeRole("__anchor__"); err == nil {
		t.Fatalf("expected reserved role error")
	}
	role, err := NormalizeRole("operator")
	if err != nil || role != "role:operator" {
		t.Fatalf("want role:operator got %q err=%v", role, err)
	}
}
