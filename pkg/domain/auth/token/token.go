// Access tokens for the HTTP surface.
//
// Tokens are HS256-signed JWTs carrying the user's email and global role.
// The signing secret, algorithm and expiry come from configuration.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/modelplane/modelplane/pkg/domain"
)

type Issuer interface {
	// Issue signs a new access token for user.
	Issue(user domain.User) (string, error)

	// Verify parses and validates raw, returning the identity it carries.
	//
	// The returned user has only Email and Role set; database state such
	// as Id and PasswordHash is not recoverable from the token.
	Verify(raw string) (domain.User, error)
}

type issuer struct {
	secret []byte
	expiry time.Duration
}

var _ Issuer = &issuer{}

func New(secret string, expiry time.Duration) Issuer {
	return &issuer{secret: []byte(secret), expiry: expiry}
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (i *issuer) Issue(user domain.User) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: user.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
	})
	return t.SignedString(i.secret)
}

func (i *issuer) Verify(raw string) (domain.User, error) {
	parsed, err := jwt.ParseWithClaims(
		raw, &claims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return domain.User{}, err
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return domain.User{}, fmt.Errorf("invalid token")
	}

	role, err := domain.AsRole(c.Role)
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{Email: c.Subject, Role: role}, nil
}
