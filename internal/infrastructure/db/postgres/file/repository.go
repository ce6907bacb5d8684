package file

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"file-drive-api/internal/domain/file"
	"file-drive-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) file.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateFile(ctx context.Context, req *file.File) (*file.File, error) {
	f := new(File)

	err := r.db.QueryRow(
		ctx,
		InsertFile,
		req.Name, string(req.Type), req.OrgID, req.StorageID,
	).Scan(
		&f.ID,
		&f.Name,
		&f.Type,
		&f.OrgID,
		&f.StorageID,

		&f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchFileByID(ctx context.Context, id file.ID) (*file.File, error) {
	f := new(File)
	err := r.db.QueryRow(ctx, SelectFileByID, id).Scan(
		&f.ID,
		&f.Name,
		&f.Type,
		&f.OrgID,
		&f.StorageID,

		&f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) FetchOrgFiles(ctx context.Context, orgID string) (file.Files, error) {
	rows, err := r.db.Query(ctx, SelectOrgFiles, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fs := Files{}
	for rows.Next() {
		f := new(File)

		if err = rows.Scan(
			&f.ID,
			&f.Name,
			&f.Type,
			&f.OrgID,
			&f.StorageID,

			&f.CreatedAt,
		); err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

// DeleteFile reports whether a row was removed. Favorites go with it via
// ON DELETE CASCADE.
func (r *Repository) DeleteFile(ctx context.Context, id file.ID) (bool, error) {
	tag, err := r.db.Exec(ctx, DeleteFileByID, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
