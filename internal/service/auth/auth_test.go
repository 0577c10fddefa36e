package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jhconstruction/backoffice/internal/domain/authz"
	"github.com/jhconstruction/backoffice/internal/service/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)

	token, exp, err := svc.IssueToken("64f000000000000000000001", authz.RoleSupervisor)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if !exp.After(time.Now()) {
		t.Errorf("expiry %v is not in the future", exp)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "64f000000000000000000001" {
		t.Errorf("userID = %q", claims.UserID)
	}
	if claims.Role != authz.RoleSupervisor {
		t.Errorf("role = %q, want supervisor", claims.Role)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	issuer := auth.NewService("secret-a", time.Hour)
	verifier := auth.NewService("secret-b", time.Hour)

	token, _, err := issuer.IssueToken("u1", authz.RoleEmployee)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := verifier.ParseToken(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestParseTokenExpired(t *testing.T) {
	svc := auth.NewService("test-secret", -time.Minute)

	token, _, err := svc.IssueToken("u1", authz.RoleManager)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := svc.ParseToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	svc := auth.NewService("test-secret", time.Hour)
	if _, err := svc.ParseToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash equals plaintext")
	}

	if err := auth.CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Errorf("CheckPassword with correct password: %v", err)
	}

	err = auth.CheckPassword(hash, "wrong-pass")
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("CheckPassword with wrong password = %v, want ErrInvalidCredentials", err)
	}
}
