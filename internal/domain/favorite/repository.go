package favorite

import (
	"context"

	"file-drive-api/internal/domain/file"
	"file-drive-api/internal/domain/user"
)

type Repository interface {
	FetchUserFavorites(ctx context.Context, userID user.ID, orgID string) (Favorites, error)
	// ToggleFavorite flips the (user, org, file) favorite in one transaction and
	// reports whether the file is a favorite afterwards.
	ToggleFavorite(ctx context.Context, userID user.ID, orgID string, fileID file.ID) (bool, error)
}
