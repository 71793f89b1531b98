// Package auth issues and validates local development tokens. Production
// deployments validate Auth0-issued JWTs in middleware.EnsureValidToken; this
// path keeps the API usable without an Auth0 tenant.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"

	"github.com/cardfolio/cardfolio-api/middleware"
)

// CookieName is where the local token travels.
const CookieName = "auth_token"

// Claims is the payload of a local development token.
type Claims struct {
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

func secretKey() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set")
	}
	return []byte(secret), nil
}

// CreateToken signs a 24h HS256 token for a local user. The subject gets a
// "local|" prefix so it can never collide with an Auth0 subject.
func CreateToken(nickname string) (string, error) {
	secret, err := secretKey()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Nickname: nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "local|" + nickname,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	})

	return token.SignedString(secret)
}

// VerifyToken parses and validates a local token.
func VerifyToken(tokenString string) (*Claims, error) {
	secret, err := secretKey()
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// Middleware validates the auth_token cookie and attaches claims to the
// context in the same shape the Auth0 middleware uses, so the user-sync
// middleware works unchanged. Requests without a cookie pass through
// unauthenticated.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := VerifyToken(cookie.Value)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		validated := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{
				Subject: claims.Subject,
			},
			CustomClaims: &middleware.CustomClaims{Nickname: claims.Nickname},
		}
		ctx := context.WithValue(r.Context(), jwtmiddleware.ContextKey{}, validated)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
