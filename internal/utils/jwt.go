package utils // package utils provides helpers for admin token creation and credential checks

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// AdminToken represents a signed JWT for the administrative identity along
// with its expiry.  The Token field contains the serialized JWT string and
// is sent back to the client after a successful login; clients present it
// as a bearer credential on mutating catalog routes.
type AdminToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrInvalidToken is returned when a token fails signature or expiry
// checks, or does not carry a username claim.
var ErrInvalidToken = errors.New("invalid or expired token")

// NewAdminToken builds and signs an HS256 JWT for the single admin
// identity.  The username is the only application claim; exp and iat are
// standard.  Verification later is signature plus expiry only — there is
// no revocation list.
func NewAdminToken(secret, username string, ttlDays int) (AdminToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"username": username,
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{Token: signed, Exp: exp}, nil
}

// ParseAdminToken validates a raw bearer token and returns the username
// claim.  Tokens signed with anything but HMAC are rejected.
func ParseAdminToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", ErrInvalidToken
	}
	return username, nil
}
