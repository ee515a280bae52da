package transport

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/steinfletcher/apitest"
	jsonpath "github.com/steinfletcher/apitest-jsonpath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/auth"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/db"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/db/dbtest"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/service"
)

var testSecret = []byte("transport-test-secret")

type testApp struct {
	server    *HTTPServer
	store     *db.Store
	auth      *service.Auth
	bookmarks *service.Bookmarks
	issuer    *auth.Issuer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithLogger(t, zap.NewNop().Sugar())
}

func newTestAppWithLogger(t *testing.T, l *zap.SugaredLogger) *testApp {
	t.Helper()
	store := dbtest.NewStore(t)
	issuer := auth.NewIssuer(testSecret, 15*time.Minute)
	hasher := auth.NewArgon2Hasher(auth.Params{Time: 1, Memory: 1024, Threads: 1, SaltLen: 16, KeyLen: 32})

	a := service.NewAuth(store, hasher, issuer, l)
	b := service.NewBookmarks(store, l)
	return &testApp{
		server:    NewHTTPServer(a, service.NewUsers(store, l), b, l),
		store:     store,
		auth:      a,
		bookmarks: b,
		issuer:    issuer,
	}
}

func (a *testApp) api() *apitest.APITest {
	return apitest.New().Handler(a.server)
}

// bearer signs up email and returns an Authorization header value for it.
func (a *testApp) bearer(t *testing.T, email string) (*service.PublicUser, string) {
	t.Helper()
	ctx := context.Background()
	u, err := a.auth.Signup(ctx, email, "password")
	require.NoError(t, err)
	token, err := a.auth.Login(ctx, email, "password")
	require.NoError(t, err)
	return u, "Bearer " + token
}

func (a *testApp) createBookmark(t *testing.T, user *service.PublicUser) *db.Bookmark {
	t.Helper()
	d := "D"
	b, err := a.bookmarks.Create(context.Background(), user.ID, service.BookmarkInput{Title: "T", Description: &d, Link: "https://x"})
	require.NoError(t, err)
	return b
}

func TestPing(t *testing.T) {
	newTestApp(t).api().
		Get("/ping").
		Expect(t).
		Status(http.StatusOK).
		Body("pong").
		End()
}

func TestSignup(t *testing.T) {
	app := newTestApp(t)

	t.Run("successful signup", func(t *testing.T) {
		app.api().
			Post("/auth/signup").
			JSON(`{"email": "test@gmail.com", "password": "111111111111"}`).
			Expect(t).
			Status(http.StatusCreated).
			Assert(jsonpath.Equal("$.email", "test@gmail.com")).
			Assert(jsonpath.Present("$.id")).
			Assert(jsonpath.NotPresent("$.hash")).
			Assert(jsonpath.NotPresent("$.password")).
			End()
	})

	t.Run("duplicate email", func(t *testing.T) {
		app.api().
			Post("/auth/signup").
			JSON(`{"email": "test@gmail.com", "password": "222222222222"}`).
			Expect(t).
			Status(http.StatusConflict).
			Assert(jsonpath.Equal("$.message", "the email is already registered")).
			End()
	})

	t.Run("bad body", func(t *testing.T) {
		for _, body := range []string{
			`{"something": "???"}`,
			`{"password": "111111111111"}`,
			`{"email": "test2@gmail.com"}`,
			`{"email": "not-an-email", "password": "111111111111"}`,
			`{"email": `,
		} {
			app.api().
				Post("/auth/signup").
				JSON(body).
				Expect(t).
				Status(http.StatusBadRequest).
				End()
		}
	})
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	app.bearer(t, "test@gmail.com")

	app.api().
		Post("/auth/login").
		JSON(`{"email": "test@gmail.com", "password": "password"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Present("$.access_token")).
		End()

	invalid := `{"message":"the user was not found or the password is incorrect"}`
	app.api().
		Post("/auth/login").
		JSON(`{"email": "test@gmail.com", "password": "wrong"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(invalid).
		End()
	app.api().
		Post("/auth/login").
		JSON(`{"email": "nobody@gmail.com", "password": "password"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(invalid).
		End()
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp(t)
	u, header := app.bearer(t, "test@gmail.com")

	expired, err := app.issuer.
		WithClock(func() time.Time { return time.Now().Add(-16 * time.Minute) }).
		Issue(u.ID, u.Email)
	require.NoError(t, err)

	forged, err := auth.NewIssuer([]byte("some-other-secret"), time.Minute).Issue(u.ID, u.Email)
	require.NoError(t, err)

	for _, path := range []string{"/users/me", "/bookmarks"} {
		app.api().Get(path).Expect(t).Status(http.StatusUnauthorized).End()
		app.api().Get(path).Header("Authorization", "Bearer").Expect(t).Status(http.StatusUnauthorized).End()
		app.api().Get(path).Header("Authorization", "Basic dXNlcjpwYXNz").Expect(t).Status(http.StatusUnauthorized).End()
		app.api().Get(path).Header("Authorization", "Bearer not.a.jwt").Expect(t).Status(http.StatusUnauthorized).End()
		app.api().Get(path).Header("Authorization", "Bearer "+expired).Expect(t).Status(http.StatusUnauthorized).End()
		app.api().Get(path).Header("Authorization", "Bearer "+forged).Expect(t).Status(http.StatusUnauthorized).End()
		app.api().Get(path).Header("Authorization", header).Expect(t).Status(http.StatusOK).End()
	}

	t.Run("scheme is case insensitive", func(t *testing.T) {
		token := header[len("Bearer "):]
		app.api().Get("/users/me").Header("Authorization", "bearer "+token).Expect(t).Status(http.StatusOK).End()
	})

	t.Run("token of a vanished user", func(t *testing.T) {
		ghost, err := app.issuer.Issue(9999, "ghost@gmail.com")
		require.NoError(t, err)
		app.api().
			Get("/users/me").
			Header("Authorization", "Bearer "+ghost).
			Expect(t).
			Status(http.StatusBadRequest).
			End()
	})
}

func TestUsers(t *testing.T) {
	app := newTestApp(t)
	u, header := app.bearer(t, "test@gmail.com")
	app.bearer(t, "taken@gmail.com")

	app.api().
		Get("/users/me").
		Header("Authorization", header).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.id", float64(u.ID))).
		Assert(jsonpath.Equal("$.email", "test@gmail.com")).
		Assert(jsonpath.NotPresent("$.hash")).
		End()

	app.api().
		Patch("/users").
		Header("Authorization", header).
		JSON(`{"first_name": "Name", "last_name": "Last"}`).
		Expect(t).
		Status(http.StatusOK).
		Assert(jsonpath.Equal("$.first_name", "Name")).
		Assert(jsonpath.Equal("$.last_name", "Last")).
		Assert(jsonpath.Equal("$.email", "test@gmail.com")).
		Assert(jsonpath.NotPresent("$.hash")).
		End()

	app.api().
		Patch("/users").
		Header("Authorization", header).
		JSON(`{"email": "not-an-email"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	app.api().
		Patch("/users").
		Header("Authorization", header).
		JSON(`{"email": "taken@gmail.com"}`).
		Expect(t).
		Status(http.StatusConflict).
		End()
}

func TestBookmarks(t *testing.T) {
	app := newTestApp(t)
	alice, aliceHeader := app.bearer(t, "alice@gmail.com")
	_, bobHeader := app.bearer(t, "bob@gmail.com")

	t.Run("empty list", func(t *testing.T) {
		app.api().
			Get("/bookmarks").
			Header("Authorization", aliceHeader).
			Expect(t).
			Status(http.StatusOK).
			Body(`[]`).
			End()
	})

	t.Run("create", func(t *testing.T) {
		app.api().
			Post("/bookmarks").
			Header("Authorization", aliceHeader).
			JSON(`{"title": "TITLE", "description": "This is a desc", "link": "https://fake.link.com"}`).
			Expect(t).
			Status(http.StatusCreated).
			Assert(jsonpath.Equal("$.title", "TITLE")).
			Assert(jsonpath.Equal("$.description", "This is a desc")).
			Assert(jsonpath.Equal("$.link", "https://fake.link.com")).
			Assert(jsonpath.Equal("$.user_id", float64(alice.ID))).
			End()

		app.api().
			Get("/bookmarks").
			Header("Authorization", aliceHeader).
			Expect(t).
			Status(http.StatusOK).
			Assert(jsonpath.Len("$", 1)).
			End()
	})

	t.Run("create validation", func(t *testing.T) {
		for _, body := range []string{
			`{"link": "https://fake.link.com"}`,
			`{"title": "TITLE"}`,
			`{"title": "TITLE", "link": "not a link"}`,
		} {
			app.api().
				Post("/bookmarks").
				Header("Authorization", aliceHeader).
				JSON(body).
				Expect(t).
				Status(http.StatusBadRequest).
				End()
		}
	})

	t.Run("edit keeps unspecified fields", func(t *testing.T) {
		b := app.createBookmark(t, alice)
		path := fmt.Sprintf("/bookmarks/%d", b.ID)

		app.api().
			Patch(path).
			Header("Authorization", aliceHeader).
			JSON(`{"title": "T2"}`).
			Expect(t).
			Status(http.StatusOK).
			Assert(jsonpath.Equal("$.title", "T2")).
			End()

		app.api().
			Get(path).
			Header("Authorization", aliceHeader).
			Expect(t).
			Status(http.StatusOK).
			Assert(jsonpath.Equal("$.title", "T2")).
			Assert(jsonpath.Equal("$.description", "D")).
			Assert(jsonpath.Equal("$.link", "https://x")).
			End()

		// null leaves the field as it is
		app.api().
			Patch(path).
			Header("Authorization", aliceHeader).
			JSON(`{"description": null}`).
			Expect(t).
			Status(http.StatusOK).
			Assert(jsonpath.Equal("$.description", "D")).
			End()
	})

	t.Run("other users", func(t *testing.T) {
		b := app.createBookmark(t, alice)
		path := fmt.Sprintf("/bookmarks/%d", b.ID)

		app.api().Patch(path).Header("Authorization", bobHeader).JSON(`{"title": "mine"}`).
			Expect(t).Status(http.StatusNotFound).End()
		app.api().Delete(path).Header("Authorization", bobHeader).
			Expect(t).Status(http.StatusNotFound).End()

		// reads are not owner scoped
		app.api().Get(path).Header("Authorization", bobHeader).
			Expect(t).Status(http.StatusOK).Assert(jsonpath.Equal("$.title", "T")).End()

		got, err := app.store.BookmarkByID(context.Background(), b.ID)
		require.NoError(t, err)
		assert.Equal(t, "T", got.Title)
	})

	t.Run("delete", func(t *testing.T) {
		b := app.createBookmark(t, alice)
		path := fmt.Sprintf("/bookmarks/%d", b.ID)

		app.api().Delete(path).Header("Authorization", aliceHeader).
			Expect(t).Status(http.StatusNoContent).End()
		app.api().Get(path).Header("Authorization", aliceHeader).
			Expect(t).Status(http.StatusNotFound).End()
		app.api().Delete(path).Header("Authorization", aliceHeader).
			Expect(t).Status(http.StatusNotFound).End()
	})

	t.Run("invalid id", func(t *testing.T) {
		app.api().Get("/bookmarks/abc").Header("Authorization", aliceHeader).
			Expect(t).Status(http.StatusBadRequest).End()
		app.api().Get("/bookmarks/-1").Header("Authorization", aliceHeader).
			Expect(t).Status(http.StatusBadRequest).End()

		huge := "/bookmarks/18446744073709551615"
		invalid := `{"message":"invalid path param 'id'"}`
		app.api().Get(huge).Header("Authorization", aliceHeader).
			Expect(t).Status(http.StatusBadRequest).Body(invalid).End()
		app.api().Patch(huge).Header("Authorization", aliceHeader).JSON(`{"title": "T"}`).
			Expect(t).Status(http.StatusBadRequest).Body(invalid).End()
		app.api().Delete(huge).Header("Authorization", aliceHeader).
			Expect(t).Status(http.StatusBadRequest).Body(invalid).End()
	})
}

func TestRequestLogStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := newTestAppWithLogger(t, zap.New(core).Sugar())
	_, header := app.bearer(t, "test@gmail.com")

	app.api().Get("/users/me").Expect(t).Status(http.StatusUnauthorized).End()
	app.api().Get("/bookmarks/404").Header("Authorization", header).Expect(t).Status(http.StatusNotFound).End()
	app.api().Get("/users/me").Header("Authorization", header).Expect(t).Status(http.StatusOK).End()

	entries := logs.FilterMessage("request").AllUntimed()
	require.Len(t, entries, 3)

	var got []int64
	for _, e := range entries {
		got = append(got, e.ContextMap()["status"].(int64))
	}
	assert.Equal(t, []int64{http.StatusUnauthorized, http.StatusNotFound, http.StatusOK}, got)
}

func TestCensorBody(t *testing.T) {
	b := `{
		"email": "email@email.com",
		"password": "123456789123"
	}`

	got := censorBody([]byte(b))
	assert.JSONEq(t, `{
		"email": "email@email.com",
		"password": "$censored"
	}`, string(got))

	got = censorBody([]byte(`{"access_token": "eyJhbGciOi"}`))
	assert.JSONEq(t, `{"access_token": "$censored"}`, string(got))

	assert.Equal(t, "pong", string(censorBody([]byte("pong"))))
	assert.Equal(t, `[{"password":"x"}]`, string(censorBody([]byte(`[{"password":"x"}]`))))
}
