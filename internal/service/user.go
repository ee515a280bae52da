package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/db"
)

type (
	// PublicUser is every user field except the password hash.
	PublicUser struct {
		ID        uint64
		Email     string
		FirstName *string
		LastName  *string
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	UserStore interface {
		CreateUser(ctx context.Context, user *db.User) error
		UserByEmail(ctx context.Context, email string) (*db.User, error)
		UpdateUser(ctx context.Context, id uint64, patch db.UserPatch) (*db.User, error)
	}

	Users struct {
		store  UserStore
		logger *zap.SugaredLogger
	}
)

func newPublicUser(u *db.User) *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func NewUsers(store UserStore, l *zap.SugaredLogger) *Users {
	return &Users{
		store:  store,
		logger: l,
	}
}

// Edit applies a partial profile update to the acting user.
func (s *Users) Edit(ctx context.Context, userID uint64, patch db.UserPatch) (*PublicUser, error) {
	user, err := s.store.UpdateUser(ctx, userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrDuplicate):
			return nil, ErrEmailAlreadyRegistered
		case errors.Is(err, db.ErrInvalidData):
			return nil, errors.Wrap(ErrBadRequest, "invalid user data")
		case errors.Is(err, db.ErrNotFound):
			return nil, ErrInvalidToken
		}
		s.logger.Errorw("edit user", "user_id", userID, "error", err)
		return nil, ErrInternal
	}
	return newPublicUser(user), nil
}
