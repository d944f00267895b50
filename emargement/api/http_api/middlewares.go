package http_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	. "github.com/labstack/echo/v4"

	"github.com/Sorolassina/mca-api/common"
	cs "github.com/Sorolassina/mca-api/emargement/api/http_api/context_service"
	"github.com/Sorolassina/mca-api/emargement/modules/metrics"
)

func contextServiceMiddleware(next HandlerFunc) HandlerFunc {
	return func(ctx Context) error {
		return next(cs.New(ctx))
	}
}

// metricsMiddleware observes the request duration once the response status is known
func metricsMiddleware(next HandlerFunc) HandlerFunc {
	return func(c Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).
			Observe(time.Since(start).Seconds())
		return nil
	}
}

// Custom error handler
func newHTTPErrorHandler(logger common.Logger) HTTPErrorHandler {
	return func(err error, c Context) {
		var (
			csError *cs.CSErrorResp
			he      *HTTPError
		)
		switch {
		case errors.As(err, &csError):
		case errors.As(err, &he):
			csError = cs.NewErrorResp(he.Code, fmt.Errorf("%v", he.Message))
		default:
			csError = cs.NewErrorResp(http.StatusInternalServerError, errors.New(http.StatusText(http.StatusInternalServerError)))
		}

		code := csError.Code()
		if code >= http.StatusInternalServerError {
			logger.Error("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, csError)
			}
			if err != nil {
				logger.Error("failed to write error response: %v", err)
			}
		}
	}
}
