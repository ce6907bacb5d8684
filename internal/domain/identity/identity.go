package identity

import "strings"

// Identity is the verified caller behind a request. A nil *Identity is an
// anonymous caller.
type Identity struct {
	TokenIdentifier string
	Issuer          string
	Subject         string
	Name            string
	Email           string
	PictureURL      string
}

// TokenIdentifier joins issuer and subject the same way the identity provider
// webhook does, so both paths resolve to the same user row.
func TokenIdentifier(issuer, subject string) string {
	return strings.TrimSuffix(issuer, "/") + "|" + subject
}
