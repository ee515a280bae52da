package transport

import (
	"encoding/json"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/bookmarker-api/internal/service"
)

var (
	bearerTokenRE = regexp.MustCompile(`^(?i:bearer)\s+(\S+)$`)

	censoredKeys = []string{"password", "access_token"}
)

const censored = "$censored"

// AuthMiddleware resolves the bearer token and stores the user under userKey.
func (s *HTTPServer) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		groups := bearerTokenRE.FindStringSubmatch(c.Request().Header.Get(echo.HeaderAuthorization))
		if len(groups) == 0 {
			return service.ErrUnauthenticated
		}

		user, err := s.auth.Authenticate(c.Request().Context(), groups[1])
		if err != nil {
			return err
		}

		c.Set(userKey, user)
		return next(c)
	}
}

// errorHandler maps service errors to status codes and hands the result to
// echo's default JSON renderer.
func (s *HTTPServer) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he := toHTTPError(err)
	if he.Code >= http.StatusInternalServerError {
		s.logger.Errorw("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
	}
	s.e.DefaultHTTPErrorHandler(he, c)
}

func toHTTPError(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusBadRequest, errors.Cause(err).Error())
	case errors.Is(err, service.ErrBadRequest):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		return echo.NewHTTPError(http.StatusConflict, service.ErrEmailAlreadyRegistered.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, service.ErrNotFound.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func (s *HTTPServer) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Infow("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
				"remote_ip", v.RemoteIP,
			)
			return nil
		},
	})
}

func (s *HTTPServer) dumpBody(c echo.Context, reqBody, resBody []byte) {
	s.logger.Debugw("body dump",
		"path", c.Path(),
		"request", string(censorBody(reqBody)),
		"response", string(censorBody(resBody)),
	)
}

// censorBody replaces secret values of a top level JSON object. Anything else
// is returned as is.
func censorBody(body []byte) []byte {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return body
	}

	changed := false
	for _, key := range censoredKeys {
		if _, ok := fields[key]; ok {
			fields[key] = json.RawMessage(`"` + censored + `"`)
			changed = true
		}
	}
	if !changed {
		return body
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return body
	}
	return out
}
