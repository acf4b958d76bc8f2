package extract

import (
	"regexp"
	"strings"
)

// LineItem is one billable row extracted from free text.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	VATRate     string  `json:"vatRate"`
}

const number = `(\d+(?:[.,]\d+)?)`

const unitWords = `uren|uur|stopcontacten|stopcontact|stop|kilometers|kilometer|km|projecten|project|licenties|licentie|stuks|stuk`

// Three increasingly permissive clause patterns, tried in order:
//  1. <qty> <unit-word> @/x/à <price>       ("5 uur à 75")
//  2. <qty> <description...> <connector> <price>  ("320 stops price 1.25")
//  3. <qty> x <price> [description]          ("3 x 25 schilderwerk")
var (
	patternUnitPrice = regexp.MustCompile(`(?i)\b` + number + `\s*(` + unitWords + `)\b\s*(?:[@xà]|a\b|voor\b|tegen\b)\s*€?\s*` + number)
	patternDescPrice = regexp.MustCompile(`(?i)^\s*` + number + `\s+(.+?)\s+(?:prijs|price|à|@|voor|van|a|x)\s*:?\s*€?\s*` + number + `\s*$`)
	patternQtyPrice  = regexp.MustCompile(`(?i)\b` + number + `\s*[x*]\s*€?\s*` + number + `\s*(.*)$`)

	vatToken = regexp.MustCompile(`(?i)\bbtw\s*:?\s*(\d+(?:[.,]\d+)?)\s*%?`)
)

// ExplicitVATRate returns the bucketed rate of the first "btw NN%"
// token in the message, if any.
func ExplicitVATRate(message string) (string, bool) {
	m := vatToken.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return VATRate(m[1]), true
}

// FirstDecimal returns the first standalone numeric token in the
// message. "btw NN%" tokens are ignored so the rate is not mistaken
// for the amount in "hoeveel btw 21 over 500".
func FirstDecimal(message string) (float64, bool) {
	cleaned := vatToken.ReplaceAllString(message, " ")
	for _, field := range strings.Fields(cleaned) {
		if value, ok := Decimal(strings.Trim(field, ".,;:?")); ok {
			return value, true
		}
	}
	return 0, false
}

// LineItems splits a message into clauses on commas, semicolons and
// newlines, and matches each clause against the patterns above. Clauses
// that match none of the patterns are silently skipped.
func LineItems(message string) []LineItem {
	var items []LineItem

	for _, clause := range splitClauses(message) {
		if item, ok := lineItemFromClause(clause); ok {
			items = append(items, item)
		}
	}

	return items
}

// splitClauses breaks a message on semicolons, newlines and commas. A
// comma between two digits is a Dutch decimal separator ("35,50") and
// does not end the clause.
func splitClauses(message string) []string {
	var clauses []string
	var current strings.Builder

	runes := []rune(message)
	for i, r := range runes {
		switch r {
		case ';', '\n':
			clauses = append(clauses, current.String())
			current.Reset()
		case ',':
			if i > 0 && i+1 < len(runes) && isDigit(runes[i-1]) && isDigit(runes[i+1]) {
				current.WriteRune(r)
			} else {
				clauses = append(clauses, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	clauses = append(clauses, current.String())

	return clauses
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func lineItemFromClause(clause string) (LineItem, bool) {
	clause = strings.TrimSpace(clause)
	if clause == "" {
		return LineItem{}, false
	}

	// An embedded "btw NN%" token sets the line's VAT bucket; strip it so
	// its digits cannot be mistaken for a quantity or price.
	rate := VATHigh
	if m := vatToken.FindStringSubmatch(clause); m != nil {
		rate = VATRate(m[1])
		clause = strings.TrimSpace(vatToken.ReplaceAllString(clause, ""))
	}

	if m := patternUnitPrice.FindStringSubmatch(clause); m != nil {
		return buildLineItem(m[2], m[1], m[3], rate)
	}
	if m := patternDescPrice.FindStringSubmatch(clause); m != nil {
		return buildLineItem(m[2], m[1], m[3], rate)
	}
	if m := patternQtyPrice.FindStringSubmatch(clause); m != nil {
		description := strings.TrimSpace(m[3])
		if description == "" {
			description = "dienst"
		}
		return buildLineItem(description, m[1], m[2], rate)
	}

	return LineItem{}, false
}

func buildLineItem(description, rawQty, rawPrice, rate string) (LineItem, bool) {
	quantity, ok := Decimal(rawQty)
	if !ok || quantity <= 0 {
		return LineItem{}, false
	}
	price, ok := Decimal(rawPrice)
	if !ok || price < 0 {
		return LineItem{}, false
	}

	description = strings.TrimSpace(description)

	return LineItem{
		Description: description,
		Quantity:    quantity,
		Price:       price,
		Unit:        Unit(description),
		VATRate:     rate,
	}, true
}
