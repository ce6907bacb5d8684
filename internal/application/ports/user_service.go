package ports

import (
	"context"

	"file-drive-api/internal/domain/identity"
	"file-drive-api/internal/domain/user"
)

type UserService interface {
	EnsureUser(ctx context.Context, id *identity.Identity) error
	UpsertUser(ctx context.Context, u user.User) (*user.User, error)
	AddOrgMembership(ctx context.Context, tokenIdentifier, orgID string) (*user.User, error)
	RemoveOrgMembership(ctx context.Context, tokenIdentifier, orgID string) (*user.User, error)
}
