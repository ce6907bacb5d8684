package favorite

import (
	"time"

	"github.com/google/uuid"

	"file-drive-api/internal/domain/file"
	"file-drive-api/internal/domain/user"
)

type (
	Favorite struct {
		ID     uuid.UUID
		UserID user.ID
		OrgID  string
		FileID file.ID

		CreatedAt time.Time
	}
	Favorites []*Favorite
)

// FileIDs indexes the favorites by file for membership checks.
func (fs Favorites) FileIDs() map[file.ID]struct{} {
	ids := make(map[file.ID]struct{}, len(fs))
	for _, f := range fs {
		ids[f.FileID] = struct{}{}
	}
	return ids
}
