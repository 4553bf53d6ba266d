package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	token, exp, err := tm.GenerateToken(42, "carol@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if exp.IsZero() {
		t.Fatalf("expiry not set")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("user id want 42, got %d", claims.UserID)
	}
	if claims.Email != "carol@example.com" {
		t.Fatalf("email mismatch: %q", claims.Email)
	}
	if claims.Subject != "42" {
		t.Fatalf("subject want 42, got %q", claims.Subject)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 60).GenerateToken(1, "a@example.com")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := NewTokenManager("secret-b", 60).ParseToken(token); err == nil {
		t.Fatalf("expected parse failure with wrong secret")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	if _, err := tm.ParseToken("not-a-token"); err == nil {
		t.Fatalf("expected parse failure for malformed token")
	}
}

func TestPasswordHashAndCompare(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "hunter22" {
		t.Fatalf("password not hashed")
	}
	if err := ComparePassword(hash, "hunter22"); err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if err := ComparePassword(hash, "hunter23"); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
