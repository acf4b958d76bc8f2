// Package phone normalizes the phone numbers stored on client records.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Numbers without a country code are read as Dutch.
const defaultRegion = "NL"

// NormalizeE164 formats a phone number to E.164 ("+31612345678").
// Input that does not parse as a valid number is kept as typed, only
// trimmed, so a vague note in the phone field is not lost.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}
	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}
