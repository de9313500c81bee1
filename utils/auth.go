package utils

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JwtKey is the HS256 signing key, loaded from JWT_SECRET in main.
var JwtKey = []byte("your_secret_key")

// Claims is the access-token payload. Subject carries the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// GenerateJWT signs an access token for a user and returns the token with
// its expiry time.
func GenerateJWT(userID, email string, expiry time.Duration) (string, time.Time, error) {
	expires := time.Now().Add(expiry)
	claims := &Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			ExpiresAt: expires.Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(JwtKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expires, nil
}

// ParseJWT verifies a token string and returns its claims.
func ParseJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorClaimsInvalid)
	}
	return claims, nil
}
