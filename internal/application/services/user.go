package services

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"file-drive-api/internal/application/ports"
	"file-drive-api/internal/domain"
	"file-drive-api/internal/domain/identity"
	domainUser "file-drive-api/internal/domain/user"
)

var ErrTokenIdentifierRequired = errors.New("token identifier is required")

type UserService struct {
	userRepository domainUser.Repository
	mCounter       *prometheus.CounterVec
}

func NewUserService(
	userRepository domainUser.Repository,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		mCounter:       mCounter,
	}
}

// EnsureUser creates the row for a first-time caller. Anonymous callers and
// known users are no-ops.
func (us *UserService) EnsureUser(ctx context.Context, id *identity.Identity) error {
	if id == nil {
		return nil
	}

	return us.userRepository.EnsureUser(ctx, domainUser.User{
		TokenIdentifier: id.TokenIdentifier,
		Name:            id.Name,
		Image:           id.PictureURL,
	})
}

func (us *UserService) UpsertUser(ctx context.Context, u domainUser.User) (*domainUser.User, error) {
	if u.TokenIdentifier == "" {
		return nil, ErrTokenIdentifierRequired
	}

	out, err := us.userRepository.UpsertUser(ctx, u)
	if err != nil {
		return nil, err
	}

	us.mCounter.WithLabelValues("users_upserted_total").Inc()

	return out, nil
}

func (us *UserService) AddOrgMembership(ctx context.Context, tokenIdentifier, orgID string) (*domainUser.User, error) {
	u, err := us.userRepository.AddOrgID(ctx, tokenIdentifier, orgID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}

	us.mCounter.WithLabelValues("org_memberships_added_total").Inc()

	return u, nil
}

func (us *UserService) RemoveOrgMembership(ctx context.Context, tokenIdentifier, orgID string) (*domainUser.User, error) {
	u, err := us.userRepository.RemoveOrgID(ctx, tokenIdentifier, orgID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}

	us.mCounter.WithLabelValues("org_memberships_removed_total").Inc()

	return u, nil
}
