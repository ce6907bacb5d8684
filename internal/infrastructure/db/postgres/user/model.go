package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID              uuid.UUID
		TokenIdentifier string
		Name            string
		Image           string
		OrgIDs          []string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
