package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/localized-problems/internal/adapters/http/middleware"
)

func TestFault(t *testing.T) {
	t.Parallel()

	router := newRouter(t, func(e *gin.Engine, _ middleware.Translations) {
		e.Any("/api/error", Fault)
	})

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			t.Parallel()

			w := do(router, method, "/api/error", "fr-BE", nil)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t,
				`{"title":"An error occurred while processing your request.","status":500,"type":"https://tools.ietf.org/html/rfc7231#section-6.6.1"}`,
				w.Body.String())
		})
	}
}
