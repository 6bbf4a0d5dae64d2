package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	claims := Claims{UserID: "u1", TenantID: "t1", RoleID: "r1", RoleName: RoleManager}

	token, err := GenerateToken(secret, claims, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	parsed, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.UserID != "u1" || parsed.TenantID != "t1" || parsed.RoleName != RoleManager {
		t.Fatalf("claims did not round-trip: %+v", parsed)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseToken("secret-b", token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckPassword(hash, "s3cret-password"); err != nil {
		t.Fatalf("expected password to match: %v", err)
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestRolePermissionsCoverAllRoles(t *testing.T) {
	for _, role := range []string{RoleEmployee, RoleManager, RoleHR, RoleAdmin} {
		perms, ok := RolePermissions[role]
		if !ok || len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
	}
}
