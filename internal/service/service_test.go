package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/auth"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/db/dbtest"
)

var cheapParams = auth.Params{Time: 1, Memory: 1024, Threads: 1, SaltLen: 16, KeyLen: 32}

type fixture struct {
	store     *db.Store
	auth      *Auth
	users     *Users
	bookmarks *Bookmarks
	issuer    *auth.Issuer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := dbtest.NewStore(t)
	l := zap.NewNop().Sugar()
	issuer := auth.NewIssuer([]byte("service-test-secret"), 15*time.Minute)
	return &fixture{
		store:     store,
		auth:      NewAuth(store, auth.NewArgon2Hasher(cheapParams), issuer, l),
		users:     NewUsers(store, l),
		bookmarks: NewBookmarks(store, l),
		issuer:    issuer,
	}
}

func (f *fixture) signup(t *testing.T, email string) *PublicUser {
	t.Helper()
	u, err := f.auth.Signup(context.Background(), email, "password")
	require.NoError(t, err)
	return u
}

func strPtr(s string) *string { return &s }
