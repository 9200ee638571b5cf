package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jsamuelsen/localized-problems/internal/platform/i18n"
)

// ErrBinding indicates JSON binding failed.
var ErrBinding = errors.New("binding failed")

// Rule keys shared by every schema.
const (
	// RuleKeyInvalidBody is the rule key reported when the body cannot be bound.
	RuleKeyInvalidBody = "InvalidBody"

	// FieldBody is the field name reported when the body cannot be bound.
	FieldBody = "body"
)

var (
	// validate is the singleton validator instance.
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the singleton validator instance.
// It initializes the validator with custom validations on first call.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()

		_ = validate.RegisterValidation("notblank", validateNotBlank)
	})

	return validate
}

// MessageResolver resolves localized texts of one bundle.
// *i18n.Localizer implements it.
type MessageResolver interface {
	Resolve(culture i18n.Culture, key string) (string, bool)
}

// Rule is one declarative constraint on a field.
type Rule struct {
	// Tag is the validator tag evaluated against the field value,
	// e.g. "notblank" or "omitempty,min=2".
	Tag string

	// RuleKey is the key of the localized message in the validation bundle.
	RuleKey string
}

// Required rejects empty and whitespace-only values.
func Required(ruleKey string) Rule {
	return Rule{Tag: "notblank", RuleKey: ruleKey}
}

// MinLength rejects values shorter than n characters. Empty values pass;
// combine with Required to reject them.
func MinLength(n int, ruleKey string) Rule {
	return Rule{Tag: fmt.Sprintf("omitempty,min=%d", n), RuleKey: ruleKey}
}

// MaxLength rejects values longer than n characters.
func MaxLength(n int, ruleKey string) Rule {
	return Rule{Tag: fmt.Sprintf("omitempty,max=%d", n), RuleKey: ruleKey}
}

// Field declares the rules of one field of T.
type Field[T any] struct {
	// Name is the field name reported in the errors map.
	Name string

	// Value extracts the field value from the payload.
	Value func(*T) any

	// Rules are evaluated in order; every failing rule is reported.
	Rules []Rule
}

// NewField creates a field declaration.
func NewField[T any](name string, value func(*T) any, rules ...Rule) Field[T] {
	return Field[T]{Name: name, Value: value, Rules: rules}
}

// Schema is an explicit list of field constraints for payloads of type T.
type Schema[T any] struct {
	fields []Field[T]
}

// NewSchema creates a schema from field declarations.
func NewSchema[T any](fields ...Field[T]) *Schema[T] {
	return &Schema[T]{fields: fields}
}

// Violation is one broken constraint of one field.
type Violation struct {
	Field   string
	RuleKey string

	// Tag is the failing validator tag. It selects the fallback message when
	// RuleKey has no translation.
	Tag   string
	Param string
	Kind  reflect.Kind
}

// Validate evaluates every rule of every field and returns all violations,
// in field then rule order. A nil result means the payload is valid.
func (s *Schema[T]) Validate(payload *T) []Violation {
	var violations []Violation

	for _, field := range s.fields {
		value := field.Value(payload)

		for _, rule := range field.Rules {
			err := Validator().Var(value, rule.Tag)
			if err == nil {
				continue
			}

			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				violations = append(violations, Violation{Field: field.Name, RuleKey: rule.RuleKey, Tag: rule.Tag})
				continue
			}

			for _, fe := range fieldErrs {
				violations = append(violations, Violation{
					Field:   field.Name,
					RuleKey: rule.RuleKey,
					Tag:     fe.Tag(),
					Param:   fe.Param(),
					Kind:    fe.Kind(),
				})
			}
		}
	}

	return violations
}

// BindJSON binds the JSON body to v.
func BindJSON(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return nil
}

// Localize converts violations into the errors map of a validation problem.
// Messages for one field keep the order of the violations. Every message is
// non-empty: a missing translation falls back to a generic English template.
func Localize(violations []Violation, resolver MessageResolver, culture i18n.Culture) map[string][]string {
	fieldErrors := make(map[string][]string)

	for _, v := range violations {
		fieldErrors[v.Field] = append(fieldErrors[v.Field], violationMessage(v, resolver, culture))
	}

	return fieldErrors
}

// violationMessage returns the localized message for a violation.
func violationMessage(v Violation, resolver MessageResolver, culture i18n.Culture) string {
	if v.RuleKey != "" && resolver != nil {
		if text, ok := resolver.Resolve(culture, v.RuleKey); ok && text != "" {
			return formatMessage(text, v)
		}
	}

	return fallbackMessage(v)
}

// formatMessage substitutes the {field} and {param} placeholders.
func formatMessage(template string, v Violation) string {
	return strings.NewReplacer("{field}", v.Field, "{param}", v.Param).Replace(template)
}

// validationMessages maps validation tags to fallback message templates.
// Use {param} as placeholder for the validation parameter.
var validationMessages = map[string]string{
	"required": "this field is required",
	"notblank": "this field is required",
	"json":     "must be a valid JSON document",
	"email":    "must be a valid email address",
	"url":      "must be a valid URL",
	"gte":      "must be greater than or equal to {param}",
	"lte":      "must be less than or equal to {param}",
	"len":      "must be exactly {param} characters",
	"oneof":    "must be one of: {param}",
}

// fallbackMessage returns a generic message for a violation.
func fallbackMessage(v Violation) string {
	if v.Tag == "min" || v.Tag == "max" {
		return minMaxMessage(v.Tag, v.Param, v.Kind)
	}

	if msg, ok := validationMessages[v.Tag]; ok {
		return strings.ReplaceAll(msg, "{param}", v.Param)
	}

	return "failed validation: " + v.Tag
}

// minMaxMessage returns the appropriate message for min/max validation.
func minMaxMessage(tag, param string, kind reflect.Kind) string {
	suffix := ""
	if kind == reflect.String {
		suffix = " characters"
	}

	if tag == "min" {
		return "must be at least " + param + suffix
	}

	return "must be at most " + param + suffix
}

// validateNotBlank validates that a string is not empty after trimming whitespace.
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
