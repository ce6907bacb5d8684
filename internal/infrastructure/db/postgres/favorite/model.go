package favorite

import (
	"time"

	"github.com/google/uuid"
)

type (
	Favorite struct {
		ID     uuid.UUID
		UserID uuid.UUID
		OrgID  string
		FileID uuid.UUID

		CreatedAt time.Time
	}
	Favorites []*Favorite
)
