package user

import (
	"context"
)

// Repository lookups return (nil, nil) when no user matches.
type Repository interface {
	FetchUserByToken(ctx context.Context, tokenIdentifier string) (*User, error)
	EnsureUser(ctx context.Context, req User) error
	UpsertUser(ctx context.Context, req User) (*User, error)
	AddOrgID(ctx context.Context, tokenIdentifier, orgID string) (*User, error)
	RemoveOrgID(ctx context.Context, tokenIdentifier, orgID string) (*User, error)
}
