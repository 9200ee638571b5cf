package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/localized-problems/internal/adapters/http/dto"
	"github.com/jsamuelsen/localized-problems/internal/platform/logging"
)

// FaultBoundary returns middleware that converts panics raised by any later
// middleware into the generic 500 problem response. Panics and errors of the
// route handlers are converted earlier by Problems, so the request log and
// metrics record the 500.
//
// The panic value and the stack are logged at ERROR level; the client only
// receives dto.FaultProblem. When the response was already written the
// boundary logs and aborts without writing.
//
// FaultBoundary must run before every other problem-producing middleware.
func FaultBoundary() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				recoverFault(c, r)
			}
		}()

		c.Next()
	}
}

// recoverFault logs a recovered panic and writes the generic 500.
// http.ErrAbortHandler is re-raised for net/http.
func recoverFault(c *gin.Context, r any) {
	if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
		panic(r)
	}

	logging.FromContext(c.Request.Context()).Error("panic recovered",
		slog.String("error", fmt.Sprint(r)),
		slog.String("stack", string(debug.Stack())),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)

	writeFault(c)
}

// failRequest logs technical errors reported by the handlers and writes the
// generic 500.
func failRequest(c *gin.Context, errs []*gin.Error) {
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Error()
	}

	logging.FromContext(c.Request.Context()).Error("request failed",
		slog.Any("errors", messages),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
	)

	writeFault(c)
}

func writeFault(c *gin.Context) {
	if c.Writer.Written() {
		c.Abort()
		return
	}

	problemResponses.WithLabelValues(kindFault, "").Inc()
	dto.AbortWithProblem(c, dto.FaultProblem())
}
