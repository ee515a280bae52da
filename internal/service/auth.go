package service

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/auth"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/db"
)

type (
	PasswordHasher interface {
		Hash(password string) (string, error)
		Verify(hash, password string) (bool, error)
	}

	TokenIssuer interface {
		Issue(userID uint64, email string) (string, error)
		Verify(token string) (*auth.Claims, error)
	}

	Auth struct {
		store  UserStore
		hasher PasswordHasher
		tokens TokenIssuer
		logger *zap.SugaredLogger

		dummyOnce sync.Once
		dummyHash string
	}
)

func NewAuth(store UserStore, hasher PasswordHasher, tokens TokenIssuer, l *zap.SugaredLogger) *Auth {
	return &Auth{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: l,
	}
}

func (s *Auth) Signup(ctx context.Context, email, password string) (*PublicUser, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Errorw("hash password", "error", err)
		return nil, ErrInternal
	}

	user := db.User{
		Email: email,
		Hash:  hash,
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		switch {
		case errors.Is(err, db.ErrDuplicate):
			s.logger.Infow("signup with registered email")
			return nil, ErrEmailAlreadyRegistered
		case errors.Is(err, db.ErrInvalidData):
			s.logger.Warnw("signup rejected by store", "error", err)
			return nil, errors.Wrap(ErrBadRequest, "invalid user data")
		}
		s.logger.Errorw("create user", "error", err)
		return nil, ErrInternal
	}

	return newPublicUser(&user), nil
}

// Login returns an access token. Unknown emails and wrong passwords fail the same way.
func (s *Auth) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			s.burnVerification(password)
			return "", ErrInvalidCredentials
		}
		s.logger.Errorw("find user", "error", err)
		return "", ErrInternal
	}

	ok, err := s.hasher.Verify(user.Hash, password)
	if err != nil {
		s.logger.Errorw("verify password", "user_id", user.ID, "error", err)
		return "", ErrInternal
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Errorw("issue token", "user_id", user.ID, "error", err)
		return "", ErrInternal
	}
	return token, nil
}

// Authenticate resolves a bearer token to the user named by its email claim.
func (s *Auth) Authenticate(ctx context.Context, token string) (*PublicUser, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, errors.Wrap(ErrUnauthenticated, err.Error())
	}

	user, err := s.store.UserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		s.logger.Errorw("find token user", "error", err)
		return nil, ErrInternal
	}

	return newPublicUser(user), nil
}

// burnVerification spends one verification on a throwaway hash so that
// unknown emails cost as much as wrong passwords.
func (s *Auth) burnVerification(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("bookmarker-dummy-password")
		if err != nil {
			s.logger.Errorw("hash dummy password", "error", err)
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash == "" {
		return
	}
	_, _ = s.hasher.Verify(s.dummyHash, password)
}
