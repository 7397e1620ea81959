package utils

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	jwtIssuer         = "devnetwork-api"
	minJWTSecretBytes = 32
	tokenTTL          = time.Hour
	bearerScheme      = "Bearer"
)

var (
	ErrMissingBearer = errors.New("authorization header must be in the format 'Bearer {token}'")
	ErrInvalidToken  = errors.New("invalid token")
)

// Claims carries the public identity of the token holder.
type Claims struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	jwt.RegisteredClaims
}

var loadSecret = sync.OnceValues(func() ([]byte, error) {
	raw := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	switch {
	case raw == "":
		return nil, errors.New("JWT_SECRET is required")
	case len(raw) < minJWTSecretBytes:
		return nil, errors.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretBytes)
	}
	return []byte(raw), nil
})

// EnsureJWTReady fails when JWT_SECRET is missing or too short.
func EnsureJWTReady() error {
	_, err := loadSecret()
	return err
}

// GenerateToken signs a token for the given identity, valid for one hour.
func GenerateToken(id, name, avatar string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", errors.New("token subject is empty")
	}

	secret, err := loadSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		ID:     id,
		Name:   name,
		Avatar: avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			Issuer:    jwtIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// BearerToken returns token in the form clients send back in the Authorization header.
func BearerToken(token string) string {
	return bearerScheme + " " + token
}

// TokenFromHeader extracts the raw token from an Authorization header value.
func TokenFromHeader(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || scheme != bearerScheme {
		return "", ErrMissingBearer
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsRune(token, ' ') {
		return "", ErrMissingBearer
	}
	return token, nil
}

// ValidateToken verifies signature, issuer and expiry and returns the claims.
// Every failure wraps ErrInvalidToken.
func ValidateToken(tokenString string) (*Claims, error) {
	secret, err := loadSecret()
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(jwtIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidToken, "%v", err)
	}

	if claims.ID == "" || claims.Subject != claims.ID {
		return nil, errors.Wrap(ErrInvalidToken, "subject does not match identity")
	}
	return claims, nil
}
