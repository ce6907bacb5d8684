package user

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type (
	ID   = uuid.UUID
	User struct {
		ID              ID
		TokenIdentifier string
		Name            string
		Image           string
		OrgIDs          []string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)

func (u *User) InOrg(orgID string) bool { return slices.Contains(u.OrgIDs, orgID) }
