package webhook

import (
	"strings"

	"file-drive-api/internal/domain/identity"
	"file-drive-api/internal/domain/user"
)

func ToDomainUser(issuer string, d UserData) user.User {
	return user.User{
		TokenIdentifier: identity.TokenIdentifier(issuer, d.ID),
		Name:            strings.TrimSpace(d.FirstName + " " + d.LastName),
		Image:           d.ImageURL,
	}
}
