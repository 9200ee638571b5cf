//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	httpadapter "github.com/jsamuelsen/localized-problems/internal/adapters/http"
	"github.com/jsamuelsen/localized-problems/internal/adapters/http/dto"
	"github.com/jsamuelsen/localized-problems/internal/adapters/http/handlers"
	"github.com/jsamuelsen/localized-problems/internal/adapters/http/middleware"
	"github.com/jsamuelsen/localized-problems/internal/adapters/storage/memory"
	"github.com/jsamuelsen/localized-problems/internal/adapters/storage/postgres"
	"github.com/jsamuelsen/localized-problems/internal/app"
	"github.com/jsamuelsen/localized-problems/internal/domain"
	"github.com/jsamuelsen/localized-problems/internal/platform/config"
	"github.com/jsamuelsen/localized-problems/internal/platform/i18n"
	"github.com/jsamuelsen/localized-problems/internal/ports"
)

var errStep = errors.New("step failed")

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	baseURL        string
	client         *http.Client
	acceptLanguage string
	response       *http.Response
	responseBody   []byte
}

func (tc *testContext) reset() {
	tc.acceptLanguage = ""
	tc.response = nil
	tc.responseBody = nil
}

// newInProcessServer serves the real router over the embedded catalog, the
// in-memory city directory and the unreachable default forecast database.
func newInProcessServer() (*httptest.Server, error) {
	gin.SetMode(gin.TestMode)

	quiet := slog.New(slog.DiscardHandler)
	cultures := []i18n.Culture{i18n.EnglishUS, i18n.FrenchBE}

	catalog, err := i18n.Load("", cultures...)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	store, err := postgres.NewForecastStore(config.DefaultForecastDSN, time.Second)
	if err != nil {
		return nil, fmt.Errorf("creating forecast store: %w", err)
	}

	registry := ports.NewHealthRegistry()
	if err := registry.Register(i18n.NewCompletenessCheck(catalog, i18n.BundleBusiness, cultures, domain.CodeNames()...)); err != nil {
		return nil, fmt.Errorf("registering catalog check: %w", err)
	}

	tr := middleware.NewTranslations(catalog, i18n.WithLogger(quiet))

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Negotiator:             i18n.MustNewNegotiator(i18n.EnglishUS, i18n.FrenchBE),
		ApplyToResponseHeaders: true,
		Translations:           tr,
		BusinessTypeBase:       config.DefaultBusinessTypeBase,
		HealthHandler:          handlers.NewHealthHandler(registry, handlers.NewBuildInfo("integration", "", "")),
		CityHandler: handlers.NewCityHandler(
			app.NewCityService(app.CityServiceConfig{Directory: memory.NewCityDirectory(), Logger: quiet}),
			tr,
		),
		ForecastHandler: handlers.NewForecastHandler(
			app.NewForecastService(app.ForecastServiceConfig{Store: store, Logger: quiet}),
		),
	})

	return httptest.NewServer(engine), nil
}

// initializeScenario registers step definitions against baseURL.
func initializeScenario(baseURL string) func(*godog.ScenarioContext) {
	return func(ctx *godog.ScenarioContext) {
		tc := &testContext{
			baseURL: baseURL,
			client:  &http.Client{Timeout: 10 * time.Second},
		}

		ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
		ctx.Step(`^the preferred language is "([^"]*)"$`, tc.thePreferredLanguageIs)
		ctx.Step(`^I send (GET|POST|PUT|PATCH|DELETE) "([^"]*)"$`, tc.iSend)
		ctx.Step(`^I send (GET|POST|PUT|PATCH|DELETE) "([^"]*)" with body:$`, tc.iSendWithBody)
		ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
		ctx.Step(`^the response should be a problem$`, tc.theResponseShouldBeAProblem)
		ctx.Step(`^the response header "([^"]*)" should be "([^"]*)"$`, tc.theResponseHeaderShouldBe)
		ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
		ctx.Step(`^the response should not contain "([^"]*)"$`, tc.theResponseShouldNotContain)
		ctx.Step(`^the problem title should be "([^"]*)"$`, tc.theProblemTitleShouldBe)
		ctx.Step(`^the problem type should be "([^"]*)"$`, tc.theProblemTypeShouldBe)
		ctx.Step(`^the problem should have no field errors$`, tc.theProblemShouldHaveNoFieldErrors)
		ctx.Step(`^the field "([^"]*)" should have the error "([^"]*)"$`, tc.theFieldShouldHaveTheError)
	}
}

func (tc *testContext) theServiceIsRunning() error {
	if err := tc.send(http.MethodGet, "/-/live", ""); err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.baseURL, err)
	}

	return tc.theResponseStatusShouldBe(http.StatusOK)
}

func (tc *testContext) thePreferredLanguageIs(culture string) error {
	tc.acceptLanguage = culture
	return nil
}

func (tc *testContext) iSend(method, path string) error {
	return tc.send(method, path, "")
}

func (tc *testContext) iSendWithBody(method, path string, body *godog.DocString) error {
	return tc.send(method, path, body.Content)
}

func (tc *testContext) send(method, path, body string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+path, bytes.NewBufferString(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if tc.acceptLanguage != "" {
		req.Header.Set("Accept-Language", tc.acceptLanguage)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp

	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	return nil
}

func (tc *testContext) theResponseStatusShouldBe(expected int) error {
	if tc.response == nil {
		return fmt.Errorf("%w: no response received", errStep)
	}

	if tc.response.StatusCode != expected {
		return fmt.Errorf("%w: expected status %d, got %d. Body: %s",
			errStep, expected, tc.response.StatusCode, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseShouldBeAProblem() error {
	return tc.theResponseHeaderShouldBe("Content-Type", dto.ContentTypeProblem)
}

func (tc *testContext) theResponseHeaderShouldBe(name, expected string) error {
	if got := tc.response.Header.Get(name); got != expected {
		return fmt.Errorf("%w: expected header %s %q, got %q", errStep, name, expected, got)
	}

	return nil
}

func (tc *testContext) theResponseShouldContain(text string) error {
	if !strings.Contains(string(tc.responseBody), text) {
		return fmt.Errorf("%w: response body does not contain %q.\nBody: %s", errStep, text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseShouldNotContain(text string) error {
	if strings.Contains(string(tc.responseBody), text) {
		return fmt.Errorf("%w: response body contains %q.\nBody: %s", errStep, text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) problem() (*dto.Problem, error) {
	var p dto.Problem
	if err := json.Unmarshal(tc.responseBody, &p); err != nil {
		return nil, fmt.Errorf("decoding problem: %w", err)
	}

	return &p, nil
}

func (tc *testContext) theProblemTitleShouldBe(expected string) error {
	p, err := tc.problem()
	if err != nil {
		return err
	}

	if p.Title != expected {
		return fmt.Errorf("%w: expected title %q, got %q", errStep, expected, p.Title)
	}

	return nil
}

func (tc *testContext) theProblemTypeShouldBe(expected string) error {
	p, err := tc.problem()
	if err != nil {
		return err
	}

	if p.Type != expected {
		return fmt.Errorf("%w: expected type %q, got %q", errStep, expected, p.Type)
	}

	return nil
}

func (tc *testContext) theProblemShouldHaveNoFieldErrors() error {
	return tc.theResponseShouldNotContain(`"errors"`)
}

func (tc *testContext) theFieldShouldHaveTheError(field, message string) error {
	p, err := tc.problem()
	if err != nil {
		return err
	}

	for _, got := range p.Errors[field] {
		if got == message {
			return nil
		}
	}

	return fmt.Errorf("%w: field %s has errors %q, want %q", errStep, field, p.Errors[field], message)
}

// TestFeatures runs the GoDog BDD suite. It targets BASE_URL when set and an
// in-process server otherwise.
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		srv, err := newInProcessServer()
		if err != nil {
			t.Fatalf("starting in-process server: %v", err)
		}
		defer srv.Close()

		baseURL = srv.URL
	}

	suite := godog.TestSuite{
		ScenarioInitializer: initializeScenario(baseURL),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
