package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"file-drive-api/internal/domain/user"
	"file-drive-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByToken(ctx context.Context, tokenIdentifier string) (*user.User, error) {
	return r.queryUser(ctx, SelectUserByToken, tokenIdentifier)
}

func (r *Repository) EnsureUser(ctx context.Context, req user.User) error {
	_, err := r.db.Exec(ctx, EnsureUser, req.TokenIdentifier, req.Name, req.Image)
	return err
}

func (r *Repository) UpsertUser(ctx context.Context, req user.User) (*user.User, error) {
	return r.queryUser(ctx, UpsertUser, req.TokenIdentifier, req.Name, req.Image)
}

func (r *Repository) AddOrgID(ctx context.Context, tokenIdentifier, orgID string) (*user.User, error) {
	return r.queryUser(ctx, AddOrgID, tokenIdentifier, orgID)
}

func (r *Repository) RemoveOrgID(ctx context.Context, tokenIdentifier, orgID string) (*user.User, error) {
	return r.queryUser(ctx, RemoveOrgID, tokenIdentifier, orgID)
}

func (r *Repository) queryUser(ctx context.Context, query string, args ...any) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.TokenIdentifier,
		&u.Name,
		&u.Image,
		&u.OrgIDs,

		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}
