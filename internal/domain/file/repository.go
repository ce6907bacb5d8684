package file

import (
	"context"
)

type Repository interface {
	CreateFile(ctx context.Context, req *File) (*File, error)
	// FetchFileByID returns (nil, nil) when the file does not exist.
	FetchFileByID(ctx context.Context, id ID) (*File, error)
	// FetchOrgFiles returns the organization's files in insertion order.
	FetchOrgFiles(ctx context.Context, orgID string) (Files, error)
	DeleteFile(ctx context.Context, id ID) (bool, error)
}
