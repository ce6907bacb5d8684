package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"file-drive-api/internal/domain/identity"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid claims")
)

// Service signs and verifies HS256 tokens with a shared secret.
type Service struct {
	jwtSecret string
	issuer    string
}

func New(jwtSecret, issuer string) *Service {
	return &Service{jwtSecret: jwtSecret, issuer: issuer}
}

type Claims struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

func (s *Service) GenerateJWT(subject, name string, expiresIn time.Duration) (string, error) {
	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.jwtSecret))
}

func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

func (s *Service) Verify(tokenStr string) (*identity.Identity, error) {
	claims, err := s.ValidateToken(tokenStr)
	if err != nil {
		return nil, err
	}
	return claims.identity(s.issuer), nil
}

func (c *Claims) identity(defaultIssuer string) *identity.Identity {
	issuer := c.Issuer
	if issuer == "" {
		issuer = defaultIssuer
	}

	return &identity.Identity{
		TokenIdentifier: identity.TokenIdentifier(issuer, c.Subject),
		Issuer:          issuer,
		Subject:         c.Subject,
		Name:            c.Name,
		Email:           c.Email,
		PictureURL:      c.Picture,
	}
}
