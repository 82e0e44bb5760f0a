package service

import (
	"testing"
	"time"

	"values-md/internal/domain"
)

func TestJWTService_GenerateParseAccess(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute, 30*time.Minute, NewMemoryRefreshTokenStore())
	admin := domain.AdminUser{
		ID:        "a1",
		Email:     "admin@values.md",
		CreatedAt: time.Now().UTC(),
	}

	pair, err := svc.GeneratePair(admin)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected tokens")
	}

	claims, err := svc.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.AdminID != "a1" || claims.Email != "admin@values.md" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_RefreshRotation(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute, 30*time.Minute, NewMemoryRefreshTokenStore())
	admin := domain.AdminUser{ID: "a1", Email: "admin@values.md"}

	pair, err := svc.GeneratePair(admin)
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	refreshed, err := svc.RefreshPair(pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh pair: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatalf("expected refreshed tokens")
	}

	// El refresh viejo queda revocado tras la rotación.
	if _, err := svc.RefreshPair(pair.RefreshToken); err == nil {
		t.Fatalf("expected old refresh token to be revoked")
	}
}

func TestJWTService_RejectsRefreshAsAccess(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute, 30*time.Minute, NewMemoryRefreshTokenStore())
	pair, err := svc.GeneratePair(domain.AdminUser{ID: "a1", Email: "admin@values.md"})
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	if _, err := svc.ParseAccessToken(pair.RefreshToken); err == nil {
		t.Fatalf("expected refresh token to be rejected as access token")
	}
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", 15*time.Minute, 30*time.Minute, NewMemoryRefreshTokenStore())
	verifier := NewJWTService("secret-b", 15*time.Minute, 30*time.Minute, NewMemoryRefreshTokenStore())

	pair, err := issuer.GeneratePair(domain.AdminUser{ID: "a1", Email: "admin@values.md"})
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}

	if _, err := verifier.ParseAccessToken(pair.AccessToken); err == nil {
		t.Fatalf("expected token signed with another secret to fail")
	}
}

func TestMemoryRefreshTokenStore_Expiry(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	if err := store.Store("jti-1", "a1", time.Millisecond); err != nil {
		t.Fatalf("store: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	ok, err := store.Exists("jti-1")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Fatalf("expected expired jti to be gone")
	}
}

func TestMemoryRefreshTokenStore_Revoke(t *testing.T) {
	store := NewMemoryRefreshTokenStore()

	if err := store.Store("jti-1", "a1", time.Hour); err != nil {
		t.Fatalf("store: %v", err)
	}
	if ok, _ := store.Exists("jti-1"); !ok {
		t.Fatalf("expected jti to exist")
	}
	if err := store.Revoke("jti-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := store.Exists("jti-1"); ok {
		t.Fatalf("expected jti to be revoked")
	}
}
