package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
	"github.com/roadrescue/dispatch-system/internal/portal/client"
)

// NewHTTPErrorHandler maps portal errors to responses. Dispatch API failures
// pass through with their original status so the browser sees what the API
// decided; everything unexpected collapses to a generic 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		var reqErr *client.RequestError

		code := http.StatusInternalServerError
		msg := "internal server error"

		switch {
		case errors.As(err, &he):
			code, msg = he.Code, fmt.Sprintf("%v", he.Message)
		case errors.As(err, &reqErr):
			code, msg = reqErr.StatusCode, reqErr.Message
		case errors.Is(err, domain.ErrForbidden):
			code, msg = http.StatusForbidden, "access forbidden"
		case errors.Is(err, domain.ErrOrderNotFound):
			code, msg = http.StatusNotFound, "order not found"
		case errors.Is(err, context.DeadlineExceeded):
			code, msg = http.StatusGatewayTimeout, "dispatch api timed out"
		default:
			log.Error().Err(err).Str("path", c.Path()).Msg("unhandled portal error")
		}

		_ = c.JSON(code, map[string]string{"error": msg})
	}
}
