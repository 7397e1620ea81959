package utils

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testJWTSecret = "devnetwork_test_jwt_secret_key_1234567890"

func TestMain(m *testing.M) {
	_ = os.Setenv("JWT_SECRET", testJWTSecret)
	SetPasswordCost(4)
	code := m.Run()
	os.Exit(code)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "Ann", "https://avatar")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.ID != "user-1" || claims.Name != "Ann" || claims.Avatar != "https://avatar" {
		t.Fatalf("unexpected claims %+v", claims)
	}

	ttl := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	if ttl != time.Hour {
		t.Fatalf("expected 1h expiry, got %s", ttl)
	}
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	claims := Claims{
		ID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    jwtIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another_secret_that_is_long_enough_!!"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	if _, err := ValidateToken(forged); err == nil {
		t.Fatalf("expected forged token to be rejected")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	secret, _ := loadSecret()
	past := time.Now().Add(-2 * time.Hour)
	claims := Claims{
		ID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	_, err = ValidateToken(expired)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenFromHeader(t *testing.T) {
	token, err := TokenFromHeader("Bearer abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Fatalf("unexpected result %q, %v", token, err)
	}

	for _, header := range []string{"", "Bearer", "Bearer ", "Token abc", "bearer abc", "Bearer a b"} {
		if _, err := TokenFromHeader(header); !errors.Is(err, ErrMissingBearer) {
			t.Fatalf("expected ErrMissingBearer for %q, got %v", header, err)
		}
	}
}

func TestBearerToken(t *testing.T) {
	if got := BearerToken("abc"); got != "Bearer abc" {
		t.Fatalf("unexpected bearer token %q", got)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret1" {
		t.Fatalf("digest must differ from the password")
	}
	if !CheckPasswordHash("secret1", hash) {
		t.Fatalf("expected password to verify")
	}
	if CheckPasswordHash("secret2", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestGravatarURL(t *testing.T) {
	got := GravatarURL("  Ann@X.com ")
	want := GravatarURL("ann@x.com")
	if got != want {
		t.Fatalf("expected normalised email to produce the same URL")
	}
	if !strings.HasPrefix(got, gravatarBaseURL) || !strings.Contains(got, "s=200") || !strings.Contains(got, "d=mm") {
		t.Fatalf("unexpected gravatar url %q", got)
	}
}
