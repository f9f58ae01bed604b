package services

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "expense-tracker"

type TokenClaims struct {
	Username string `json:"username"`
	UserID   uint   `json:"id"`
	jwt.RegisteredClaims
}

// TokenService mints and checks stateless HS256 session tokens. Nothing is
// persisted, so a token stays valid until it expires or the secret changes.
type TokenService struct {
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService returns a service signing with jwtSecret. A ttl of zero
// issues tokens without an expiry.
func NewTokenService(jwtSecret string, ttl time.Duration) *TokenService {
	return &TokenService{
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *TokenService) GenerateToken(userID uint, username string) (string, error) {
	now := s.now()
	claims := TokenClaims{
		Username: username,
		UserID:   userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatUint(uint64(userID), 10),
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   tokenIssuer,
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *TokenService) ValidateToken(tokenString string) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
