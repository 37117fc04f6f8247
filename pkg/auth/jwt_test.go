package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	token, err := manager.GenerateToken("operator")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Username != "operator" {
		t.Errorf("expected username %q, got %q", "operator", claims.Username)
	}
	if claims.Subject != "operator" {
		t.Errorf("expected subject %q, got %q", "operator", claims.Subject)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("other-secret", time.Hour)

	token, err := manager.GenerateToken("operator")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret must not validate")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken("operator")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := manager.ValidateToken(token); err == nil {
		t.Error("expired token must not validate")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	if _, err := manager.ValidateToken("not.a.token"); err == nil {
		t.Error("malformed token must not validate")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !CheckPassword(hash, "hunter2") {
		t.Error("correct password must verify")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("wrong password must not verify")
	}
}
