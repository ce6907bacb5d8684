package ports

import (
	"context"

	"file-drive-api/internal/domain/file"
)

type S3Client interface {
	PresignUpload(ctx context.Context) (*file.UploadTicket, error)
	PresignDownload(ctx context.Context, key string) (string, error)
	RemoveObject(ctx context.Context, key string) error
	GetBucket() string
}
