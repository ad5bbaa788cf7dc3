package util

import (
	"regexp"
	"strings"
)

const countryCodeBR = "55"

var nonDigits = regexp.MustCompile(`\D+`)

// NormalizePhone reduces user input to digits and prefixes the Brazilian
// country code when the number looks like DDD + subscriber (10/11 digits).
// Anything else is returned as bare digits; this is a heuristic, not a validator.
func NormalizePhone(raw string) string {
	s := nonDigits.ReplaceAllString(raw, "")
	if s == "" {
		return ""
	}

	// already 55 + DDD + number
	if strings.HasPrefix(s, countryCodeBR) && (len(s) == 12 || len(s) == 13) {
		return s
	}
	// DDD + number, no country code
	if len(s) == 10 || len(s) == 11 {
		return countryCodeBR + s
	}

	return s
}
