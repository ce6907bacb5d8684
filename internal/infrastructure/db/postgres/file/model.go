package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID        uuid.UUID
		Name      string
		Type      string
		OrgID     string
		StorageID string

		CreatedAt time.Time
	}
	Files []*File
)
