package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

const maxLoggedStack = 8 << 10

type panicBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// Recovery turns a handler panic into a 500 that carries the request ID,
// so a user report can be matched to the logged stack. http.ErrAbortHandler
// is re-raised for net/http to handle.
func Recovery(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if e, ok := v.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(v)
				}
				err = recovered(c, log, v)
			}()
			return next(c)
		}
	}
}

func recovered(c echo.Context, log *slog.Logger, v any) error {
	stack := debug.Stack()
	if len(stack) > maxLoggedStack {
		stack = stack[:maxLoggedStack]
	}

	req := c.Request()
	id := RequestID(c)
	log.ErrorContext(req.Context(), "handler panicked",
		"panic", fmt.Sprint(v),
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", id,
		"stack", string(stack),
	)

	// Part of a response may already be on the wire.
	if c.Response().Committed {
		return nil
	}
	return c.JSON(http.StatusInternalServerError, panicBody{Error: "internal server error", RequestID: id})
}
