package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   = uuid.UUID
	Type string
	File struct {
		ID        ID
		Name      string
		Type      Type
		OrgID     string
		StorageID string

		CreatedAt time.Time

		// per caller, never persisted
		IsFavorited bool
		DownloadURL string
	}
	Files []*File

	// ListQuery narrows an organization's files. Query matches names
	// case-insensitively; FavoritesOnly keeps the caller's favorites.
	ListQuery struct {
		OrgID         string
		Query         string
		FavoritesOnly bool
	}

	// UploadTicket is a short-lived direct-to-storage upload grant. The
	// StorageID is what the client sends back when creating the file.
	UploadTicket struct {
		URL       string
		StorageID string
		ExpiresAt time.Time
	}
)

const (
	TypeImage Type = "image"
	TypeCSV   Type = "csv"
	TypePDF   Type = "pdf"
)

var Types = []Type{TypeImage, TypeCSV, TypePDF}

func (t Type) Valid() bool {
	switch t {
	case TypeImage, TypeCSV, TypePDF:
		return true
	}
	return false
}
