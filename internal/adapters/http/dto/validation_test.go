package dto

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/localized-problems/internal/platform/i18n"
)

type cityPayload struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

var testCitySchema = NewSchema(
	NewField("Name", func(p *cityPayload) any { return p.Name },
		Required("MandatoryField"),
		MinLength(2, "FieldNotLongEnough"),
		MaxLength(255, "FieldTooLong"),
	),
	NewField("CountryCode", func(p *cityPayload) any { return p.CountryCode },
		Required("MandatoryField"),
		MinLength(2, "FieldNotLongEnough"),
		MaxLength(3, "FieldTooLong"),
	),
)

func validationLocalizer(t *testing.T) *i18n.Localizer {
	t.Helper()

	catalog, err := i18n.Load("", i18n.EnglishUS, i18n.FrenchBE)
	require.NoError(t, err)

	return catalog.Localizer(i18n.BundleValidation, i18n.WithLogger(slog.New(slog.DiscardHandler)))
}

// emptyResolver never finds a translation.
type emptyResolver struct{}

func (emptyResolver) Resolve(_ i18n.Culture, key string) (string, bool) {
	return key, false
}

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name     string
		payload  cityPayload
		expected []Violation
	}{
		{
			name:    "valid payload",
			payload: cityPayload{Name: "Liège", CountryCode: "BE"},
		},
		{
			name:    "short name and missing country code",
			payload: cityPayload{Name: "N"},
			expected: []Violation{
				{Field: "Name", RuleKey: "FieldNotLongEnough", Tag: "min", Param: "2"},
				{Field: "CountryCode", RuleKey: "MandatoryField", Tag: "notblank"},
			},
		},
		{
			name:    "blank name only reports required",
			payload: cityPayload{Name: "   ", CountryCode: "BEL"},
			expected: []Violation{
				{Field: "Name", RuleKey: "MandatoryField", Tag: "notblank"},
			},
		},
		{
			name:    "too long values",
			payload: cityPayload{Name: strings.Repeat("a", 256), CountryCode: "BELG"},
			expected: []Violation{
				{Field: "Name", RuleKey: "FieldTooLong", Tag: "max", Param: "255"},
				{Field: "CountryCode", RuleKey: "FieldTooLong", Tag: "max", Param: "3"},
			},
		},
		{
			name:    "length counts characters not bytes",
			payload: cityPayload{Name: "Ÿ", CountryCode: "BE"},
			expected: []Violation{
				{Field: "Name", RuleKey: "FieldNotLongEnough", Tag: "min", Param: "2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := testCitySchema.Validate(&tt.payload)

			require.Len(t, violations, len(tt.expected))
			for i, expected := range tt.expected {
				assert.Equal(t, expected.Field, violations[i].Field)
				assert.Equal(t, expected.RuleKey, violations[i].RuleKey)
				assert.Equal(t, expected.Tag, violations[i].Tag)
				assert.Equal(t, expected.Param, violations[i].Param)
			}
		})
	}
}

func TestSchema_Validate_CollectsEveryRuleOfAField(t *testing.T) {
	schema := NewSchema(
		NewField("Code", func(p *cityPayload) any { return p.CountryCode },
			MinLength(3, "FieldNotLongEnough"),
			Rule{Tag: "numeric", RuleKey: "MustBeNumeric"},
		),
	)

	violations := schema.Validate(&cityPayload{CountryCode: "B"})

	require.Len(t, violations, 2)
	assert.Equal(t, "min", violations[0].Tag)
	assert.Equal(t, "numeric", violations[1].Tag)
}

func TestLocalize_EveryCulture(t *testing.T) {
	localizer := validationLocalizer(t)
	violations := testCitySchema.Validate(&cityPayload{Name: "N"})

	for _, culture := range []i18n.Culture{i18n.EnglishUS, i18n.FrenchBE} {
		t.Run(string(culture), func(t *testing.T) {
			fieldErrors := Localize(violations, localizer, culture)

			require.Contains(t, fieldErrors, "Name")
			require.Contains(t, fieldErrors, "CountryCode")

			for field, messages := range fieldErrors {
				require.NotEmpty(t, messages, field)
				for _, msg := range messages {
					assert.NotEmpty(t, msg)
					assert.NotContains(t, msg, "{field}")
					assert.NotContains(t, msg, "{param}")
				}
			}
		})
	}
}

func TestLocalize_Messages(t *testing.T) {
	localizer := validationLocalizer(t)
	violations := testCitySchema.Validate(&cityPayload{Name: "N"})

	en := Localize(violations, localizer, i18n.EnglishUS)
	assert.Equal(t, []string{"The Name field must be at least 2 characters long."}, en["Name"])
	assert.Equal(t, []string{"The CountryCode field is required."}, en["CountryCode"])

	fr := Localize(violations, localizer, i18n.FrenchBE)
	assert.Equal(t, []string{"Le champ Name doit contenir au moins 2 caractères."}, fr["Name"])
	assert.Equal(t, []string{"Le champ CountryCode est obligatoire."}, fr["CountryCode"])
}

func TestLocalize_FallbackWhenTranslationMissing(t *testing.T) {
	violations := testCitySchema.Validate(&cityPayload{Name: "N", CountryCode: "BELG"})

	fieldErrors := Localize(violations, emptyResolver{}, i18n.EnglishUS)

	assert.Equal(t, []string{"must be at least 2 characters"}, fieldErrors["Name"])
	assert.Equal(t, []string{"must be at most 3 characters"}, fieldErrors["CountryCode"])
}

func TestLocalize_NilResolver(t *testing.T) {
	violations := []Violation{{Field: "Name", RuleKey: "MandatoryField", Tag: "notblank"}}

	fieldErrors := Localize(violations, nil, i18n.EnglishUS)

	assert.Equal(t, []string{"this field is required"}, fieldErrors["Name"])
}

func TestLocalize_NoViolations(t *testing.T) {
	assert.Empty(t, Localize(nil, emptyResolver{}, i18n.EnglishUS))
}

func TestFallbackMessage(t *testing.T) {
	tests := []struct {
		name      string
		violation Violation
		expected  string
	}{
		{
			name:      "known tag with param",
			violation: Violation{Tag: "oneof", Param: "a b"},
			expected:  "must be one of: a b",
		},
		{
			name:      "json body",
			violation: Violation{Tag: "json"},
			expected:  "must be a valid JSON document",
		},
		{
			name:      "unknown tag",
			violation: Violation{Tag: "custom"},
			expected:  "failed validation: custom",
		},
		{
			name:      "numeric min",
			violation: Violation{Tag: "min", Param: "5"},
			expected:  "must be at least 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fallbackMessage(tt.violation))
		})
	}
}

func TestBindJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid body", body: `{"name":"Namur","countryCode":"BE"}`},
		{name: "malformed body", body: `{"name":`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
		{name: "wrong type", body: `{"name":42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodPost, "/cities", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var payload cityPayload
			err := BindJSON(c, &payload)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrBinding)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Namur", payload.Name)
		})
	}
}
