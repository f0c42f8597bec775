// Package session issues and verifies the signed bearer tokens that carry
// an authenticated identity between requests.
package session

import (
	"errors"
	"fmt"
	"time"

	"team-collab/internal/apperror"
	"team-collab/internal/models"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = time.Hour

// Claims is the token payload.
type Claims struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Issuer)

// WithClock overrides the issuance clock.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(secret string, ttl time.Duration, opts ...Option) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	i := &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Issue signs a token for identity that expires one TTL after issuance.
func (i *Issuer) Issue(identity models.Identity) (string, error) {
	issuedAt := i.now()
	claims := Claims{
		ID:    identity.UserID,
		Name:  identity.Name,
		Email: identity.Email,
		Role:  string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", apperror.Internal("Error generating token", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// identity it carries.
func (i *Issuer) Verify(tokenString string) (models.Identity, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return models.Identity{}, &apperror.Error{
				Kind: apperror.KindAuth, Key: apperror.ErrTokenExpired.Key, Message: apperror.ErrTokenExpired.Message, Err: err,
			}
		}
		return models.Identity{}, &apperror.Error{
			Kind: apperror.KindAuth, Key: apperror.ErrInvalidToken.Key, Message: apperror.ErrInvalidToken.Message, Err: err,
		}
	}
	if !token.Valid || claims.ExpiresAt == nil || claims.ID <= 0 {
		return models.Identity{}, apperror.ErrInvalidToken
	}

	return models.Identity{
		UserID: claims.ID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   models.Role(claims.Role),
	}, nil
}
