package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash of the given password, useful for
// generating an ADMIN_PASSWORD_HASH value.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyAdminPassword checks a login attempt against the configured admin
// credential. When a bcrypt hash is configured it takes precedence;
// otherwise the plain configured password is compared in constant time.
func VerifyAdminPassword(hash, plain, attempt string) bool {
	if hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(attempt)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(plain), []byte(attempt)) == 1
}
