package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/localized-problems/internal/adapters/http/dto"
	"github.com/jsamuelsen/localized-problems/internal/adapters/http/middleware"
	"github.com/jsamuelsen/localized-problems/internal/platform/i18n"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testTranslations(t *testing.T) middleware.Translations {
	t.Helper()

	catalog, err := i18n.Load("", i18n.EnglishUS, i18n.FrenchBE)
	require.NoError(t, err)

	return middleware.NewTranslations(catalog, i18n.WithLogger(slog.New(slog.DiscardHandler)))
}

// newRouter wraps the routes registered by register in the problem chain.
func newRouter(t *testing.T, register func(*gin.Engine, middleware.Translations)) *gin.Engine {
	t.Helper()

	tr := testTranslations(t)

	router := gin.New()
	router.Use(
		middleware.FaultBoundary(),
		middleware.Localization(middleware.LocalizationConfig{
			Negotiator: i18n.MustNewNegotiator(i18n.EnglishUS, i18n.FrenchBE),
		}),
		middleware.Problems(middleware.ProblemsConfig{Translations: tr}),
	)

	register(router, tr)

	return router
}

func do(router http.Handler, method, target, acceptLanguage string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequestWithContext(context.Background(), method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) dto.Problem {
	t.Helper()

	require.Equal(t, dto.ContentTypeProblem, w.Header().Get("Content-Type"))

	var p dto.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))

	return p
}
