package ports

import (
	"context"

	"file-drive-api/internal/domain/identity"
)

// AccessChecker answers whether a caller may act on an organization's files.
type AccessChecker interface {
	HasAccessToOrg(ctx context.Context, id *identity.Identity, orgID string) bool
	// Authorize fails with an authentication or authorization error.
	Authorize(ctx context.Context, id *identity.Identity, orgID string) error
	// CanRead never fails; denied callers just see nothing.
	CanRead(ctx context.Context, id *identity.Identity, orgID string) bool
}
