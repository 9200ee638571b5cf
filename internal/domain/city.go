package domain

import "strings"

// City is a named city within a country.
type City struct {
	// Name is the display name of the city.
	Name string

	// CountryCode is the ISO 3166 alpha-2 or alpha-3 country code.
	CountryCode string
}

// SameName reports whether the city is named name, ignoring case.
// Surrounding whitespace is significant: " namur " is another city.
func (c City) SameName(name string) bool {
	return strings.EqualFold(c.Name, name)
}
