package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenOptions carries the signing material shared by token minting and
// verification.
type TokenOptions struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// CreateToken signs an HS256 token for subject. The nickname claim is read by
// the user sync middleware.
func CreateToken(opts TokenOptions, subject, nickname string) (string, error) {
	if opts.Secret == "" {
		return "", errors.New("auth.go: JWT secret key not set")
	}
	ttl := opts.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"sub":      subject,
			"iss":      opts.Issuer,
			"aud":      []string{opts.Audience},
			"nickname": nickname,
			"iat":      now.Unix(),
			"exp":      now.Add(ttl).Unix(),
		})

	tokenString, err := token.SignedString([]byte(opts.Secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken checks signature, issuer, audience and expiry and returns the
// subject.
func VerifyToken(opts TokenOptions, tokenString string) (string, error) {
	if opts.Secret == "" {
		return "", fmt.Errorf("auth.go: JWT secret key not set")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(opts.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(opts.Issuer),
		jwt.WithAudience(opts.Audience),
	)
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if subject == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return subject, nil
}
