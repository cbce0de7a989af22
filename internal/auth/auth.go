package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")
var ErrNoStaff = errors.New("no staff identity in context")

// Staff is the back-office operator identity carried by tokens from the
// hosted authentication service.
type Staff struct {
	Uid   string
	Email string
	Role  string
}

type contextKey string

const staffKey contextKey = "staff"

// TokenValidator checks bearer tokens issued by the hosted auth service.
// This backend never issues tokens itself.
type TokenValidator struct {
	secret []byte
}

func NewTokenValidator(secret string) *TokenValidator {
	return &TokenValidator{secret: []byte(secret)}
}

// Validate parses and verifies an HS256 token and returns the staff identity
// from its claims.
func (v *TokenValidator) Validate(tokenString string) (Staff, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Staff{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Staff{}, ErrInvalidToken
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		return Staff{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return Staff{Uid: uid, Email: email, Role: role}, nil
}

// WithStaff stores the staff identity in the context.
func WithStaff(ctx context.Context, staff Staff) context.Context {
	return context.WithValue(ctx, staffKey, staff)
}

// CurrentStaff retrieves the staff identity from the context.
func CurrentStaff(ctx context.Context) (Staff, error) {
	staff, ok := ctx.Value(staffKey).(Staff)
	if !ok {
		return Staff{}, ErrNoStaff
	}
	return staff, nil
}
