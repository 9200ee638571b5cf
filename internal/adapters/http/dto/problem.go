// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"net/http"
	"slices"

	"github.com/jsamuelsen/localized-problems/internal/domain"
)

// ContentTypeProblem is the media type of problem responses (RFC 7807).
const ContentTypeProblem = "application/problem+json"

// Problem type URIs.
const (
	// DefaultBusinessTypeBase prefixes the type URI of business problems.
	// The error code is appended as a fragment.
	DefaultBusinessTypeBase = "https://apps.myapp.be/ordering/errors/business/"

	// TypeBadRequest is the type of validation problems.
	TypeBadRequest = "https://tools.ietf.org/html/rfc7231#section-6.5.1"

	// TypeNotFound is the type of 404 problems.
	TypeNotFound = "https://tools.ietf.org/html/rfc7231#section-6.5.4"

	// TypeMethodNotAllowed is the type of 405 problems.
	TypeMethodNotAllowed = "https://tools.ietf.org/html/rfc7231#section-6.5.5"

	// TypeInternal is the type of generic fault problems.
	TypeInternal = "https://tools.ietf.org/html/rfc7231#section-6.6.1"
)

// FaultTitle is the title of generic fault problems. It is deliberately not
// localized and never carries error details.
const FaultTitle = "An error occurred while processing your request."

// statusTypes maps statuses to their RFC 7231 type URI.
var statusTypes = map[int]string{
	http.StatusBadRequest:          TypeBadRequest,
	http.StatusNotFound:            TypeNotFound,
	http.StatusMethodNotAllowed:    TypeMethodNotAllowed,
	http.StatusInternalServerError: TypeInternal,
}

// Problem is the standard error envelope for all error responses.
// A Problem is built once per failed request and not mutated afterwards,
// except for WithTraceID before it is written.
type Problem struct {
	// Title is a short, localized, human-readable summary.
	Title string `json:"title"`

	// Status is the HTTP status code.
	Status int `json:"status"`

	// Type is a URI identifying the problem type. For business problems it
	// embeds the error code.
	Type string `json:"type"`

	// Errors holds localized messages per field for validation problems.
	Errors map[string][]string `json:"errors,omitempty"`

	// TraceID is the OpenTelemetry trace ID when the request is traced.
	TraceID string `json:"traceId,omitempty"`
}

// NewProblem creates a problem. fieldErrors is copied; when it is empty the
// errors member is omitted from the payload.
func NewProblem(status int, title, typeURI string, fieldErrors map[string][]string) *Problem {
	p := &Problem{
		Title:  title,
		Status: status,
		Type:   typeURI,
	}

	if len(fieldErrors) > 0 {
		p.Errors = make(map[string][]string, len(fieldErrors))
		for field, messages := range fieldErrors {
			p.Errors[field] = slices.Clone(messages)
		}
	}

	return p
}

// BusinessErrorType returns the type URI of a business problem:
// base + "#" + code.
func BusinessErrorType(base string, code domain.ErrorCode) string {
	if base == "" {
		base = DefaultBusinessTypeBase
	}

	return base + "#" + string(code)
}

// BusinessProblem creates the 400 problem for a business-rule violation.
func BusinessProblem(base string, code domain.ErrorCode, title string) *Problem {
	return NewProblem(http.StatusBadRequest, title, BusinessErrorType(base, code), nil)
}

// ValidationProblem creates the 400 problem for field validation failures.
func ValidationProblem(title string, fieldErrors map[string][]string) *Problem {
	return NewProblem(http.StatusBadRequest, title, TypeBadRequest, fieldErrors)
}

// FaultProblem creates the generic 500 problem for unexpected failures.
func FaultProblem() *Problem {
	return NewProblem(http.StatusInternalServerError, FaultTitle, TypeInternal, nil)
}

// StatusProblem creates a problem for a plain HTTP status.
// Statuses without a dedicated type use "about:blank".
func StatusProblem(status int, title string) *Problem {
	typeURI, ok := statusTypes[status]
	if !ok {
		typeURI = "about:blank"
	}

	if title == "" {
		title = http.StatusText(status)
	}

	return NewProblem(status, title, typeURI, nil)
}

// WithTraceID adds a trace ID to the problem.
func (p *Problem) WithTraceID(traceID string) *Problem {
	p.TraceID = traceID
	return p
}
