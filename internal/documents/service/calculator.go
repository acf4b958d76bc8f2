package service

import (
	"math"
	"sort"
)

// CalcLine is one billable row entering the totals calculation.
type CalcLine struct {
	Description string
	Quantity    float64
	Unit        string
	Price       float64
	VATRatePct  int
}

// LineTotal is the per-line result in cents.
type LineTotal struct {
	UnitPriceCents int64
	SubtotalCents  int64
	VATCents       int64
}

// VATBreakdown is the VAT owed per rate.
type VATBreakdown struct {
	RatePct   int
	BaseCents int64
	VATCents  int64
}

// Totals is the full calculation result.
type Totals struct {
	Lines         []LineTotal
	SubtotalCents int64
	VATCents      int64
	TotalCents    int64
	Breakdown     []VATBreakdown
}

// Calculate computes document totals in cents. Each line's subtotal is
// rounded to whole cents first; VAT is then computed per rate over the
// summed base, so a document with many small lines does not accumulate
// per-line rounding drift.
func Calculate(lines []CalcLine) Totals {
	totals := Totals{Lines: make([]LineTotal, 0, len(lines))}
	basePerRate := make(map[int]int64)

	for _, line := range lines {
		unitPriceCents := roundCents(line.Price * 100)
		subtotalCents := roundCents(line.Quantity * line.Price * 100)

		totals.Lines = append(totals.Lines, LineTotal{
			UnitPriceCents: unitPriceCents,
			SubtotalCents:  subtotalCents,
		})
		totals.SubtotalCents += subtotalCents
		basePerRate[line.VATRatePct] += subtotalCents
	}

	rates := make([]int, 0, len(basePerRate))
	for rate := range basePerRate {
		rates = append(rates, rate)
	}
	sort.Ints(rates)

	for _, rate := range rates {
		base := basePerRate[rate]
		vat := roundCents(float64(base) * float64(rate) / 100)
		totals.VATCents += vat
		totals.Breakdown = append(totals.Breakdown, VATBreakdown{
			RatePct:   rate,
			BaseCents: base,
			VATCents:  vat,
		})
	}

	// Attribute line VAT for display, from the same rounded rate math.
	for i, line := range lines {
		totals.Lines[i].VATCents = roundCents(float64(totals.Lines[i].SubtotalCents) * float64(line.VATRatePct) / 100)
	}

	totals.TotalCents = totals.SubtotalCents + totals.VATCents
	return totals
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
