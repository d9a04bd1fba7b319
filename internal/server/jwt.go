package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jonathan/talent-matcher/internal/server/middleware"
)

// Claims represents JWT claims with the caller's subject ID.
type Claims struct {
	SubjectID uuid.UUID `json:"subject_id"`
	jwt.RegisteredClaims
}

// GetSubject returns the subject ID from the claims.
// This implements the middleware.SubjectGetter interface.
func (c *Claims) GetSubject() uuid.UUID {
	return c.SubjectID
}

// JWTService provides JWT token generation and validation.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a new JWT service signing with the given secret.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &JWTService{secret: []byte(secret), ttl: ttl}
}

// AsTokenValidator returns a TokenValidator adapter for this JWTService.
// This allows the JWTService to be used with middleware without creating
// import cycles.
func (s *JWTService) AsTokenValidator() middleware.TokenValidator {
	return &jwtServiceValidator{service: s}
}

type jwtServiceValidator struct {
	service *JWTService
}

func (v *jwtServiceValidator) ValidateToken(tokenString string) (middleware.SubjectGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// GenerateToken generates a signed token for the given subject ID.
func (s *JWTService) GenerateToken(subjectID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &Claims{
		SubjectID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a token string and returns its claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return claims, nil
}
