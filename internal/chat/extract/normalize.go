// Package extract contains the deterministic normalizers and field
// extractors of the drafting engine. Every function in this package
// follows the same contract: it returns a value plus an ok flag and
// never returns an error. Unparseable input is simply "not found",
// leaving the field absent so the controller can ask for it.
package extract

import (
	"strconv"
	"strings"
	"time"
)

// Measurement units recognized on line items.
const (
	UnitStuk     = "STUK"
	UnitUur      = "UUR"
	UnitStop     = "STOP"
	UnitKm       = "KM"
	UnitProject  = "PROJECT"
	UnitLicentie = "LICENTIE"
)

// The three legal Dutch VAT rates. Every parsed percentage is bucketed
// into one of these.
const (
	VATHigh = "21"
	VATLow  = "9"
	VATZero = "0"
)

// Decimal parses a numeric token accepting both the Dutch comma and the
// dot as decimal separator: "1,25" and "1.25" both yield 1.25.
func Decimal(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, "€$ \t")
	if cleaned == "" {
		return 0, false
	}

	// "1.234,56" style: dots are thousand separators.
	if strings.Contains(cleaned, ",") && strings.Contains(cleaned, ".") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// VATRate buckets a percentage-like token into one of the three legal
// Dutch rates using inclusive tolerance ranges: 20-22 maps to "21",
// 8-10 to "9" and exactly zero to "0". Fractions (0.20-0.22) are scaled
// up first. Anything else defaults to "21"; free text is noisy and the
// domain has only three rates.
func VATRate(raw string) string {
	token := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	value, ok := Decimal(token)
	if !ok {
		return VATHigh
	}

	if value > 0 && value < 1 {
		value *= 100
	}

	switch {
	case value >= 20 && value <= 22:
		return VATHigh
	case value >= 8 && value <= 10:
		return VATLow
	case value == 0:
		return VATZero
	default:
		return VATHigh
	}
}

var dateLayouts = []string{"02-01-2006", "02/01/2006", "2006-01-02"}

// Date recognizes the relative literals vandaag/today, gisteren/yesterday
// and morgen/tomorrow plus DD-MM-YYYY, DD/MM/YYYY and ISO dates.
// The reference time is injected so callers and tests stay deterministic.
func Date(raw string, now time.Time) (time.Time, bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	// Midnight in the reference time's own location; truncating to a UTC
	// day would shift "vandaag" to the previous date for Dutch users in
	// the first hours after midnight.
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	switch token {
	case "vandaag", "today":
		return day, true
	case "gisteren", "yesterday":
		return day.AddDate(0, 0, -1), true
	case "morgen", "tomorrow":
		return day.AddDate(0, 0, 1), true
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, token); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}

// unitTokens maps exact lowercase word tokens to units. Matching is
// token-exact: "stops" is not the STOP unit (stopcontact), it is just a
// description word, so unrecognized tokens fall back to STUK.
var unitTokens = map[string]string{
	"uur":           UnitUur,
	"uren":          UnitUur,
	"stop":          UnitStop,
	"stopcontact":   UnitStop,
	"stopcontacten": UnitStop,
	"km":            UnitKm,
	"kilometer":     UnitKm,
	"kilometers":    UnitKm,
	"project":       UnitProject,
	"projecten":     UnitProject,
	"licentie":      UnitLicentie,
	"licenties":     UnitLicentie,
	"stuk":          UnitStuk,
	"stuks":         UnitStuk,
}

// Unit infers the measurement unit from the words of a clause,
// defaulting to STUK.
func Unit(text string) string {
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if unit, ok := unitTokens[strings.Trim(word, ".,;:")]; ok {
			return unit
		}
	}
	return UnitStuk
}
