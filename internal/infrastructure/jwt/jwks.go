package jwt

import (
	"context"
	"fmt"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	"file-drive-api/internal/domain/identity"
)

var asymmetricMethods = []string{
	jwt.SigningMethodRS256.Alg(),
	jwt.SigningMethodES256.Alg(),
}

// JWKSVerifier verifies tokens issued by an external identity provider
// against its published key set. Keys are refreshed in the background until
// ctx is cancelled.
type JWKSVerifier struct {
	keyfunc jwt.Keyfunc
	issuer  string
}

func NewJWKSVerifier(ctx context.Context, jwksURL, issuer string) (*JWKSVerifier, error) {
	k, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("load jwks %s: %w", jwksURL, err)
	}
	return newJWKSVerifier(k.Keyfunc, issuer), nil
}

func newJWKSVerifier(kf jwt.Keyfunc, issuer string) *JWKSVerifier {
	return &JWKSVerifier{keyfunc: kf, issuer: issuer}
}

func (v *JWKSVerifier) Verify(tokenStr string) (*identity.Identity, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods(asymmetricMethods), jwt.WithExpirationRequired()}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, v.keyfunc, opts...)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidClaims
	}
	return claims.identity(v.issuer), nil
}
