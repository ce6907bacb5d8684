package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		ID          uuid.UUID `json:"id"`
		Name        string    `json:"name"`
		Type        string    `json:"type"`
		OrgID       string    `json:"org_id"`
		StorageID   string    `json:"storage_id"`
		IsFavorited bool      `json:"is_favorited"`
		DownloadURL string    `json:"download_url,omitempty"`
		CreatedAt   time.Time `json:"created_at"`
	}
	Files        []File
	ResponseData struct {
		Data Files `json:"data"`
	}
	UploadURL struct {
		UploadURL string    `json:"upload_url"`
		StorageID string    `json:"storage_id"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	FavoriteState struct {
		IsFavorited bool `json:"is_favorited"`
	}
)
