package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/massiliadrive/backend/internal/errs"
	"github.com/massiliadrive/backend/internal/server"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
//
// Why a struct?
//   - So middleware functions can read shared app dependencies from
//     *server.Server, mostly config (CORS origins, env) and the logger.
type GlobalMiddlewares struct {
	server *server.Server
}

// NewGlobalMiddlewares constructs the middleware bundle.
// It keeps a pointer to the application container so every global
// middleware reads the same config.
func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

// CORS returns Echo's CORS middleware configured from server config.
//
// What it does:
//   - Allows the public site, which posts the contact form cross-origin,
//     to reach the API from the configured origins only.
//   - Allows GET (health, docs), POST (contact) and the OPTIONS preflight.
//   - Allows the Content-Type and X-Request-ID request headers.
//
// If CORSAllowedOrigins is wrong, the browser blocks the form submission
// before it ever reaches the handler.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: global.server.Config.Server.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, RequestIDHeader},
	})
}

// RequestLogger returns Echo's request logger middleware with a custom
// LogValuesFunc.
//
// Behavior:
//   - Writes exactly one "API" line per request through the request-scoped
//     zerolog logger set by ContextEnhancer.
//   - Picks the level from the final status: 5xx -> Error, 4xx -> Warn,
//     anything else -> Info.
//   - Derives the status from the returned error when there is one, since
//     the global error handler writes the real status after this runs.
//   - Adds request_id, latency, method, uri, host, ip and user agent.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		// LogValuesFunc is called at the end of request handling.
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := v.Status

			// When a handler returns an error, Echo has not written the
			// final status yet; avoid logging 200 for a failed request.
			// https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			if v.Error != nil {
				statusCode = statusOf(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			// Correlation: request id (if RequestID middleware ran).
			if requestID := GetRequestID(c); requestID != "" {
				e = e.Str("request_id", requestID)
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover returns Echo's panic recovery middleware.
//
// A handler panic becomes an error that reaches GlobalErrorHandler and is
// answered with a 500 instead of crashing the process.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

// Secure returns Echo's secure headers middleware.
//
// Adds X-XSS-Protection, X-Content-Type-Options and X-Frame-Options to
// every response.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// BodyLimit caps request bodies at 64 KiB.
//
// A contact payload is a handful of short strings plus a bounded message,
// so anything larger is refused with 413 before it is decoded.
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit("64K")
}

// GlobalErrorHandler is the final error funnel for the entire HTTP server.
//
// Behavior:
//   - Every error returned by a handler or middleware ends up here.
//   - *errs.HTTPError is rendered as is: {"error": ...}, plus "details"
//     for mail transport failures.
//   - Echo's own errors keep their status; a route 404 becomes
//     "Route not found".
//   - Anything else is an unknown failure and becomes a bare 500; the
//     real error is only logged.
//   - 5xx is logged at Error, 4xx at Warn, through the request logger.
//   - HEAD requests get the status without a body.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := toHTTPError(err)

	// Log the original error, not the sanitized one sent to the client.
	logger := GetLogger(c)
	event := logger.Error()
	if httpErr.Status < 500 {
		event = logger.Warn()
	}
	event.Stack().
		Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	// Only write a response if nothing has been written yet.
	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(httpErr.Status)
		return
	}
	_ = c.JSON(httpErr.Status, httpErr.Body())
}

// toHTTPError classifies err into the response error.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found")
		}

		// Echo's message can be any type; normalize it to a string.
		message, ok := echoErr.Message.(string)
		if !ok {
			message = http.StatusText(echoErr.Code)
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	return errs.NewInternalServerError()
}

func statusOf(err error) int {
	return toHTTPError(err).Status
}
