package favorite

import (
	"context"
	"fmt"

	"file-drive-api/internal/domain/favorite"
	"file-drive-api/internal/domain/file"
	"file-drive-api/internal/domain/user"
	"file-drive-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) favorite.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserFavorites(
	ctx context.Context,
	userID user.ID,
	orgID string,
) (favorite.Favorites, error) {
	rows, err := r.db.Query(ctx, SelectUserFavorites, userID, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fs := Favorites{}
	for rows.Next() {
		f := new(Favorite)

		if err = rows.Scan(
			&f.ID,
			&f.UserID,
			&f.OrgID,
			&f.FileID,

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

func (r *Repository) ToggleFavorite(
	ctx context.Context,
	userID user.ID,
	orgID string,
	fileID file.ID,
) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin toggle favorite: %w", err)
	}

	if _, err = tx.Exec(ctx, LockFavorite, userID, fileID); err != nil {
		_ = tx.Rollback(ctx)
		return false, fmt.Errorf("lock favorite: %w", err)
	}

	tag, err := tx.Exec(ctx, DeleteFavorite, userID, orgID, fileID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return false, fmt.Errorf("delete favorite: %w", err)
	}

	favorited := tag.RowsAffected() == 0
	if favorited {
		if _, err = tx.Exec(ctx, InsertFavorite, userID, orgID, fileID); err != nil {
			_ = tx.Rollback(ctx)
			if postgres.IsPgForeignKeyViolation(err) {
				return false, fmt.Errorf("insert favorite: file or user no longer exists: %w", err)
			}
			return false, fmt.Errorf("insert favorite: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit toggle favorite: %w", err)
	}

	return favorited, nil
}
