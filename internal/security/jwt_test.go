package security

import (
	"strings"
	"testing"
	"time"

	"studentgigs/internal/common"
)

func TestJWTProviderRoundTrip(t *testing.T) {
	provider := NewJWTProvider("secret", time.Hour)
	userID := common.NewUUID()

	token, expiresAt, err := provider.Generate(userID, "alice@example.com", "Alice", "student")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected a three-part token, got %q", token)
	}
	if remaining := time.Until(expiresAt); remaining < 59*time.Minute || remaining > time.Hour {
		t.Fatalf("expected roughly one hour of validity, got %s", remaining)
	}

	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if claims.ID != userID.String() {
		t.Fatalf("expected id %s, got %s", userID, claims.ID)
	}
	if claims.Email != "alice@example.com" || claims.Name != "Alice" || claims.UserType != "student" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTProviderParse_WrongSecret(t *testing.T) {
	provider := NewJWTProvider("secret", time.Hour)
	other := NewJWTProvider("different", time.Hour)

	token, _, err := provider.Generate(common.NewUUID(), "alice@example.com", "Alice", "student")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := other.Parse(token); err == nil {
		t.Fatal("expected parse to fail with the wrong secret")
	}
}

func TestJWTProviderParse_Expired(t *testing.T) {
	provider := NewJWTProvider("secret", -time.Minute)

	token, _, err := provider.Generate(common.NewUUID(), "alice@example.com", "Alice", "student")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if _, err := provider.Parse(token); err == nil {
		t.Fatal("expected parse to reject an expired token")
	}
}

func TestJWTProviderParse_Garbage(t *testing.T) {
	provider := NewJWTProvider("secret", time.Hour)
	if _, err := provider.Parse("not.a.token"); err == nil {
		t.Fatal("expected parse to fail")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if hash == "password1" {
		t.Fatal("password stored in plaintext")
	}
	if !VerifyPassword(hash, "password1") {
		t.Fatal("expected hash to verify")
	}
	if VerifyPassword(hash, "password2") {
		t.Fatal("expected wrong password to fail")
	}
}

func TestValidPasswordLength(t *testing.T) {
	if ValidPasswordLength("short") {
		t.Fatal("expected short password to be rejected")
	}
	if !ValidPasswordLength("12345678") {
		t.Fatal("expected eight characters to pass")
	}
}
