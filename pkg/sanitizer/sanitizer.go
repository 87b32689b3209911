// Package sanitizer normalizes identifiers before they are looked up or
// stored. Every function is idempotent.
package sanitizer

import "strings"

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func lower(s string) string {
	return strings.ToLower(s)
}

// SanitizeEmail lower-cases and trims. Users are stored and looked up by
// this form.
func SanitizeEmail(email string) string {
	return Pipeline{trim, lower}.Apply(email)
}

// SanitizeID trims an opaque key taken from a path or query.
func SanitizeID(id string) string {
	return trim(id)
}
