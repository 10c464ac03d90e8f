package services

import (
	"testing"

	"github.com/Techmo404/SafeRoad-Backend/config"
)

func newTestAuthService() *AuthService {
	return NewAuthService(config.JWTConfig{
		Secret:      "test-secret-key",
		ExpiryHours: 24,
	})
}

func TestHashAndCheckPassword(t *testing.T) {
	svc := newTestAuthService()

	hash, err := svc.HashPassword("mypassword123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "" {
		t.Fatal("hash should not be empty")
	}
	if hash == "mypassword123" {
		t.Fatal("hash should not equal plaintext")
	}

	if !svc.CheckPassword(hash, "mypassword123") {
		t.Error("CheckPassword should return true for correct password")
	}
	if svc.CheckPassword(hash, "wrongpassword") {
		t.Error("CheckPassword should return false for wrong password")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestAuthService()

	token, err := svc.GenerateToken(1, "user@test.com", "Test User")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("token should not be empty")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 1 {
		t.Errorf("UserID = %d, want 1", claims.UserID)
	}
	if claims.Email != "user@test.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "user@test.com")
	}
	if claims.Name != "Test User" {
		t.Errorf("Name = %q, want %q", claims.Name, "Test User")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.ValidateToken("invalid.token.string")
	if err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc1 := NewAuthService(config.JWTConfig{Secret: "secret-1", ExpiryHours: 24})
	svc2 := NewAuthService(config.JWTConfig{Secret: "secret-2", ExpiryHours: 24})

	token, _ := svc1.GenerateToken(1, "user@test.com", "User")

	_, err := svc2.ValidateToken(token)
	if err == nil {
		t.Error("expected error when validating with wrong secret")
	}
}

func TestVerifyBearer(t *testing.T) {
	svc := newTestAuthService()
	token, _ := svc.GenerateToken(42, "driver@saferoad.app", "Driver")

	t.Run("valid header", func(t *testing.T) {
		claims, err := svc.VerifyBearer("Bearer " + token)
		if err != nil {
			t.Fatalf("VerifyBearer failed: %v", err)
		}
		if claims.UserID != 42 {
			t.Errorf("UserID = %d, want 42", claims.UserID)
		}
	})

	t.Run("lowercase scheme", func(t *testing.T) {
		if _, err := svc.VerifyBearer("bearer " + token); err != nil {
			t.Errorf("VerifyBearer rejected lowercase scheme: %v", err)
		}
	})

	t.Run("missing scheme", func(t *testing.T) {
		if _, err := svc.VerifyBearer(token); err == nil {
			t.Error("expected error for header without scheme")
		}
	})

	t.Run("wrong scheme", func(t *testing.T) {
		if _, err := svc.VerifyBearer("Basic " + token); err == nil {
			t.Error("expected error for non-bearer scheme")
		}
	})

	t.Run("empty header", func(t *testing.T) {
		if _, err := svc.VerifyBearer(""); err == nil {
			t.Error("expected error for empty header")
		}
	})
}

func TestHashPasswordDifferentEachTime(t *testing.T) {
	svc := newTestAuthService()

	hash1, _ := svc.HashPassword("same-password")
	hash2, _ := svc.HashPassword("same-password")

	if hash1 == hash2 {
		t.Error("bcrypt hashes should differ due to random salt")
	}

	// But both should validate
	if !svc.CheckPassword(hash1, "same-password") {
		t.Error("hash1 should validate")
	}
	if !svc.CheckPassword(hash2, "same-password") {
		t.Error("hash2 should validate")
	}
}
