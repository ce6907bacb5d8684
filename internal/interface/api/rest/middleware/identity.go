package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-drive-api/internal/application/ports"
	"file-drive-api/internal/domain/identity"
)

const CtxIdentity = "identity"

// IdentityGate resolves the bearer token into an identity. Missing or
// unverifiable tokens leave the caller anonymous; handlers decide whether
// that is an error.
func IdentityGate(verifier ports.TokenVerifier, userService ports.UserService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		id, err := verifier.Verify(tokenStr)
		if err != nil {
			logger.Debug("bearer token rejected", zap.Error(err))
			c.Next()
			return
		}

		if err = userService.EnsureUser(c.Request.Context(), id); err != nil {
			logger.Error("EnsureUser() error",
				zap.String("token_identifier", id.TokenIdentifier),
				zap.Error(err),
			)
		}

		c.Set(CtxIdentity, id)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// IdentityFrom returns nil for anonymous callers.
func IdentityFrom(c *gin.Context) *identity.Identity {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*identity.Identity)
	return id
}
