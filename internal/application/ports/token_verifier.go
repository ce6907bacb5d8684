package ports

import "file-drive-api/internal/domain/identity"

type TokenVerifier interface {
	Verify(token string) (*identity.Identity, error)
}
