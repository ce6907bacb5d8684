package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"file-drive-api/internal/application/ports"
	"file-drive-api/internal/domain"
	"file-drive-api/internal/domain/identity"
	"file-drive-api/internal/domain/user"
)

type AccessService struct {
	userRepository   user.Repository
	tokenOrgFallback bool
	logger           *zap.Logger
}

func NewAccessService(
	userRepository user.Repository,
	tokenOrgFallback bool,
	logger *zap.Logger,
) ports.AccessChecker {
	return &AccessService{
		userRepository:   userRepository,
		tokenOrgFallback: tokenOrgFallback,
		logger:           logger,
	}
}

// HasAccessToOrg is true when orgID is one of the user's organizations or,
// with the token fallback enabled, a substring of the user's token
// identifier. Lookup failures read as no access.
func (as *AccessService) HasAccessToOrg(ctx context.Context, id *identity.Identity, orgID string) bool {
	if id == nil || orgID == "" {
		return false
	}

	u, err := as.userRepository.FetchUserByToken(ctx, id.TokenIdentifier)
	if err != nil {
		as.logger.Warn("access check: user lookup failed",
			zap.String("org_id", orgID),
			zap.Error(err),
		)
		return false
	}
	if u == nil {
		return false
	}

	if u.InOrg(orgID) {
		return true
	}
	return as.tokenOrgFallback && strings.Contains(u.TokenIdentifier, orgID)
}

func (as *AccessService) Authorize(ctx context.Context, id *identity.Identity, orgID string) error {
	if id == nil {
		return domain.ErrLoginRequired
	}
	if !as.HasAccessToOrg(ctx, id, orgID) {
		return domain.ErrNoOrgAccess
	}
	return nil
}

func (as *AccessService) CanRead(ctx context.Context, id *identity.Identity, orgID string) bool {
	return id != nil && as.HasAccessToOrg(ctx, id, orgID)
}
