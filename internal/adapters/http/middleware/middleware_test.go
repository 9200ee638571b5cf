package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/localized-problems/internal/adapters/http/dto"
	"github.com/jsamuelsen/localized-problems/internal/platform/i18n"
	"github.com/jsamuelsen/localized-problems/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testNegotiator = i18n.MustNewNegotiator(i18n.EnglishUS, i18n.FrenchBE)

// testTranslations returns resolvers over the embedded catalog.
func testTranslations(t testing.TB) Translations {
	t.Helper()

	catalog, err := i18n.Load("", i18n.EnglishUS, i18n.FrenchBE)
	require.NoError(t, err)

	return NewTranslations(catalog, i18n.WithLogger(slog.New(slog.DiscardHandler)))
}

// withLogger installs logger as the context logger of every request.
func withLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))
		c.Next()
	}
}

// newTestRouter builds the problem-producing chain in production order.
func newTestRouter(t testing.TB, logBuf *bytes.Buffer) *gin.Engine {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	if logBuf != nil {
		logger = slog.New(slog.NewJSONHandler(logBuf, nil))
	}

	tr := testTranslations(t)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		withLogger(logger),
		FaultBoundary(),
		Localization(LocalizationConfig{Negotiator: testNegotiator, ApplyToResponseHeaders: true}),
		Problems(ProblemsConfig{Translations: tr}),
	)
	router.NoRoute(StatusProblem(tr, http.StatusNotFound, TitleNotFound))
	router.NoMethod(StatusProblem(tr, http.StatusMethodNotAllowed, TitleMethodNotAllowed))

	return router
}

func serve(router http.Handler, method, target, acceptLanguage string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if acceptLanguage != "" {
		req.Header.Set(HeaderAcceptLanguage, acceptLanguage)
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
