package domain

import "slices"

// ErrorCode is a stable identifier for a business-rule violation.
// Codes are part of the public contract: clients match on them through the
// problem type URI, so existing values must never be renamed.
type ErrorCode string

// Registered error codes.
const (
	// CodeDuplicateCity indicates a city with the same name already exists.
	CodeDuplicateCity ErrorCode = "DuplicateCity"

	// CodePersistentCity indicates the city is protected and cannot be removed.
	CodePersistentCity ErrorCode = "PersistentCity"
)

// registry lists every code in declaration order.
var registry = []ErrorCode{
	CodeDuplicateCity,
	CodePersistentCity,
}

// Codes returns all registered error codes.
func Codes() []ErrorCode {
	return slices.Clone(registry)
}

// CodeNames returns the names of the registered codes, in registration order.
// They are the keys of the business translation bundle.
func CodeNames() []string {
	codes := Codes()

	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = string(code)
	}

	return names
}

// Valid reports whether the code is registered.
func (c ErrorCode) Valid() bool {
	return slices.Contains(registry, c)
}

// String implements fmt.Stringer.
func (c ErrorCode) String() string {
	return string(c)
}
