package ports

import (
	"context"

	"file-drive-api/internal/domain/file"
	"file-drive-api/internal/domain/identity"
)

type FileService interface {
	GenerateUploadURL(ctx context.Context, id *identity.Identity) (*file.UploadTicket, error)
	CreateFile(ctx context.Context, id *identity.Identity, req file.File) (*file.File, error)
	ListFiles(ctx context.Context, id *identity.Identity, q file.ListQuery) (file.Files, error)
	DeleteFile(ctx context.Context, id *identity.Identity, fileID file.ID) error
	ToggleFavorite(ctx context.Context, id *identity.Identity, fileID file.ID) (bool, error)
}
