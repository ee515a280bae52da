package transport

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/config"
	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/service"
)

const userKey = "user"

type (
	CustomValidator struct {
		validator *validator.Validate
	}

	HTTPServer struct {
		e         *echo.Echo
		auth      *service.Auth
		users     *service.Users
		bookmarks *service.Bookmarks
		logger    *zap.SugaredLogger
	}
)

var Module = fx.Provide(NewLifecycleHTTPServer)

func NewHTTPServer(auth *service.Auth, users *service.Users, bookmarks *service.Bookmarks, logger *zap.SugaredLogger) *HTTPServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	instance := HTTPServer{
		e:         e,
		auth:      auth,
		users:     users,
		bookmarks: bookmarks,
		logger:    logger,
	}

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = instance.errorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(instance.requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if logger.Desugar().Core().Enabled(zap.DebugLevel) {
		e.Use(middleware.BodyDump(instance.dumpBody))
	}

	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	authG := e.Group("/auth")
	authG.POST("/signup", instance.Signup)
	authG.POST("/login", instance.Login)

	userG := e.Group("/users", instance.AuthMiddleware)
	userG.GET("/me", instance.CurrentUser)
	userG.PATCH("", instance.UserEdit)

	bookmarkG := e.Group("/bookmarks", instance.AuthMiddleware)
	bookmarkG.GET("", instance.BookmarkList)
	bookmarkG.GET("/:id", instance.BookmarkGet)
	bookmarkG.POST("", instance.BookmarkCreate)
	bookmarkG.PATCH("/:id", instance.BookmarkUpdate)
	bookmarkG.DELETE("/:id", instance.BookmarkDelete)

	return &instance
}

func NewLifecycleHTTPServer(lc fx.Lifecycle, cfg *config.Config, auth *service.Auth, users *service.Users, bookmarks *service.Bookmarks, logger *zap.SugaredLogger) *HTTPServer {
	instance := NewHTTPServer(auth, users, bookmarks, logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			listen := cfg.HTTPAddr()
			go func() {
				logger.Infow("Starting HTTP server.", "addr", listen)
				if err := instance.e.Start(listen); err != nil && err != http.ErrServerClosed {
					logger.Fatalw("shutting down the server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server.")
			return instance.e.Shutdown(ctx)
		},
	})

	return instance
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

////////

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func BindAndValidate(c echo.Context, v interface{}) error {
	var err error
	if err = c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	if err = c.Validate(v); err != nil {
		return err
	}
	return nil
}

func GetUserFromContext(c echo.Context) (*service.PublicUser, error) {
	user, ok := c.Get(userKey).(*service.PublicUser)
	if !ok || user == nil {
		return nil, errors.New("no user found in context")
	}
	return user, nil
}

func GetParam(c echo.Context, name string) (string, error) {
	value := c.Param(name)
	if value == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return value, nil
}

func GetAndParseParam(c echo.Context, name string) (uint64, error) {
	v, e := GetParam(c, name)
	if e != nil {
		return 0, e
	}
	// ids are BIGINT columns
	vv, e := strconv.ParseUint(v, 10, 63)
	if e != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid path param '"+name+"'")
	}
	return vv, nil
}
