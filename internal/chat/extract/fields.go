package extract

import (
	"regexp"
	"strings"
	"time"
)

var (
	clientNameKeyRe = regexp.MustCompile(`(?i)\b(?:voor|for)\s+`)
	amountRe     = regexp.MustCompile(`(?i)(?:bedrag|amount|€)\s*:?\s*(\d+(?:[.,]\d+)?)`)
	emailRe      = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	postalCodeRe = regexp.MustCompile(`\b(\d{4})\s?([A-Za-z]{2})\b`)
	kvkRe        = regexp.MustCompile(`(?i)\bkvk(?:-nummer)?\s*:?\s*(\d{8})\b`)
	btwIDRe      = regexp.MustCompile(`(?i)\b(NL\d{9}B\d{2})\b`)
	dayCountRe   = regexp.MustCompile(`(?i)\b(\d{1,3})\s*dagen\b`)
	phoneRe      = regexp.MustCompile(`(\+?\d[\d\s\-]{7,}\d)`)
	dateTokenRe  = regexp.MustCompile(`(?i)\b(\d{2}-\d{2}-\d{4}|\d{2}/\d{2}/\d{4}|\d{4}-\d{2}-\d{2}|vandaag|gisteren|morgen|today|tomorrow|yesterday)\b`)
)

// ClientName pulls a trailing name from "voor X" / "for X" phrasing.
// Each occurrence of the keyword is considered, last one first, since
// names tend to close the sentence ("factuur voor 3 uur werk voor
// Jansen"). Candidates that start with a digit or carry a currency or
// email marker are rejected.
func ClientName(message string) (string, bool) {
	locations := clientNameKeyRe.FindAllStringIndex(message, -1)
	for i := len(locations) - 1; i >= 0; i-- {
		rest := message[locations[i][1]:]
		if end := strings.IndexAny(rest, ",;.\n"); end >= 0 {
			rest = rest[:end]
		}

		candidate := strings.TrimSpace(rest)
		if candidate == "" {
			continue
		}
		if candidate[0] >= '0' && candidate[0] <= '9' {
			continue
		}
		if strings.ContainsAny(candidate, "€@") {
			continue
		}
		return candidate, true
	}
	return "", false
}

// Amount pulls a bare monetary amount introduced by "bedrag", "amount"
// or a euro sign. Used when no line items were found.
func Amount(message string) (float64, bool) {
	m := amountRe.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	return Decimal(m[1])
}

// Email returns the first email address in the message.
func Email(message string) (string, bool) {
	m := emailRe.FindString(message)
	if m == "" {
		return "", false
	}
	return m, true
}

// PostalCode returns the first Dutch postal code, normalized to "1234 AB".
func PostalCode(message string) (string, bool) {
	m := postalCodeRe.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[1] + " " + strings.ToUpper(m[2]), true
}

// KvkNumber returns an eight-digit KvK registration number.
func KvkNumber(message string) (string, bool) {
	m := kvkRe.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// BtwID returns a Dutch VAT identification number (NL123456789B01).
func BtwID(message string) (string, bool) {
	m := btwIDRe.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

// DayCount pulls a "binnen N dagen" style day count.
func DayCount(message string) (int, bool) {
	m := dayCountRe.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	value, ok := Decimal(m[1])
	if !ok || value <= 0 {
		return 0, false
	}
	return int(value), true
}

// Phone returns the first phone-number-looking digit run.
func Phone(message string) (string, bool) {
	m := strings.TrimSpace(phoneRe.FindString(message))
	if m == "" {
		return "", false
	}
	return m, true
}

// DateIn scans the message for the first date token (relative literal
// or a supported layout) and normalizes it.
func DateIn(message string, now time.Time) (time.Time, bool) {
	m := dateTokenRe.FindString(message)
	if m == "" {
		return time.Time{}, false
	}
	return Date(m, now)
}

// LooksLikeBareName reports whether a short, email-free, digit-free
// message is plausibly just a name. Used on the client intent so a reply
// of "Jan de Vries" fills the name field directly.
func LooksLikeBareName(message string) bool {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" || len(trimmed) > 60 {
		return false
	}
	if strings.ContainsAny(trimmed, "@€0123456789") {
		return false
	}
	return len(strings.Fields(trimmed)) <= 4
}
