package app

import (
	"testing"

	"github.com/form3tech-oss/jwt-go"
)

func TestGenerateStorageTokenRoundTrips(t *testing.T) {
	svc := NewStorageTokenService("test-secret", "tarot-server", "game-logs")

	signed, err := svc.GenerateToken(StorageRoleService)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	token, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		t.Fatal("token did not validate")
	}

	if claims["iss"] != "tarot-server" {
		t.Errorf("iss = %v, want tarot-server", claims["iss"])
	}
	if claims["role"] != StorageRoleService {
		t.Errorf("role = %v, want %s", claims["role"], StorageRoleService)
	}
	if claims["aud"] != "game-logs" {
		t.Errorf("aud = %v, want game-logs", claims["aud"])
	}
}

func TestGenerateStorageTokenValidation(t *testing.T) {
	if _, err := NewStorageTokenService("", "iss", "").GenerateToken(StorageRoleService); err == nil {
		t.Error("expected an error for a missing secret")
	}
	if _, err := NewStorageTokenService("s", "iss", "").GenerateToken("superuser"); err == nil {
		t.Error("expected an error for an unsupported role")
	}
}
