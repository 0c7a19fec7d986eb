package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"shootday/config"
	"shootday/models"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "shootday-dev"
	}
	return []byte(secret)
}

// GenerateSessionToken creates a signed JWT carrying the minimal user
// record the client needs. The subject is the user's email.
func GenerateSessionToken(user models.Session, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.Email,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string. Session records
// are cached under the hash so raw tokens never land in Redis.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// SessionFromToken extracts the user record embedded in a valid session token.
func SessionFromToken(tokenString string) (models.Session, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Session{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Session{}, errors.New("invalid token")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if email == "" || name == "" {
		return models.Session{}, errors.New("token does not carry a session record")
	}
	return models.Session{Email: email, Name: name, Role: role}, nil
}
