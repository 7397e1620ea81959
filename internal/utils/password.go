package utils

import "golang.org/x/crypto/bcrypt"

const DefaultPasswordCost = 10

var passwordCost = DefaultPasswordCost

// SetPasswordCost overrides the bcrypt cost; values outside bcrypt's range are ignored.
func SetPasswordCost(cost int) {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		passwordCost = cost
	}
}

// HashPassword returns the bcrypt digest of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether password matches the stored digest.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
