package service

import (
	"testing"
	"time"

	"github.com/eduadmin/eduadmin-backend/internal/config"
	"github.com/eduadmin/eduadmin-backend/internal/model"
	"github.com/google/uuid"
)

func testAuthService() *AuthService {
	cfg := &config.Config{
		JWTSecret:  "test-secret",
		JWTExpiry:  time.Hour,
		BcryptCost: 4, // Min cost keeps the test fast.
	}
	return NewAuthService(cfg, nil)
}

func TestTokenRoundTrip(t *testing.T) {
	auth := testAuthService()
	user := &model.User{ID: uuid.New(), Role: model.RoleTeacher}

	signed, jti, err := auth.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a JTI")
	}

	claims, err := auth.ValidateToken(signed)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("expected user ID %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != model.RoleTeacher {
		t.Errorf("expected role teacher, got %s", claims.Role)
	}
	if claims.ID != jti {
		t.Errorf("expected JTI %s, got %s", jti, claims.ID)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	auth := testAuthService()
	user := &model.User{ID: uuid.New(), Role: model.RoleAdmin}

	signed, _, err := auth.IssueToken(user)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	if _, err := auth.ValidateToken(signed + "x"); err == nil {
		t.Error("expected tampered token to be rejected")
	}

	other := NewAuthService(&config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour}, nil)
	if _, err := other.ValidateToken(signed); err == nil {
		t.Error("expected token signed with a different secret to be rejected")
	}
}

func TestPasswordHashing(t *testing.T) {
	auth := testAuthService()

	hash, err := auth.HashPassword("rahasia123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := auth.CheckPassword(hash, "rahasia123"); err != nil {
		t.Errorf("expected matching password to pass: %v", err)
	}
	if err := auth.CheckPassword(hash, "salah"); err == nil {
		t.Error("expected wrong password to fail")
	}
}
