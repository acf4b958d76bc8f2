package service

import (
	"testing"
	"time"
)

func TestCalculate_SingleHighRateLine(t *testing.T) {
	totals := Calculate([]CalcLine{
		{Description: "stops", Quantity: 320, Price: 1.25, VATRatePct: 21},
	})

	if totals.SubtotalCents != 40000 {
		t.Fatalf("subtotal = %d, want 40000", totals.SubtotalCents)
	}
	if totals.VATCents != 8400 {
		t.Fatalf("vat = %d, want 8400", totals.VATCents)
	}
	if totals.TotalCents != 48400 {
		t.Fatalf("total = %d, want 48400", totals.TotalCents)
	}
}

func TestCalculate_MixedRates(t *testing.T) {
	totals := Calculate([]CalcLine{
		{Quantity: 5, Price: 75, VATRatePct: 21},
		{Quantity: 2, Price: 50, VATRatePct: 9},
		{Quantity: 1, Price: 100, VATRatePct: 0},
	})

	if totals.SubtotalCents != 57500 {
		t.Fatalf("subtotal = %d", totals.SubtotalCents)
	}
	// 375.00 * 21% = 78.75, 100.00 * 9% = 9.00, 100.00 * 0% = 0
	if totals.VATCents != 7875+900 {
		t.Fatalf("vat = %d", totals.VATCents)
	}
	if len(totals.Breakdown) != 3 {
		t.Fatalf("breakdown = %+v", totals.Breakdown)
	}
	if totals.Breakdown[0].RatePct != 0 || totals.Breakdown[2].RatePct != 21 {
		t.Fatalf("breakdown order = %+v", totals.Breakdown)
	}
}

func TestCalculate_RoundsPerLineThenPerRate(t *testing.T) {
	// 3 * 0.333 = 0.999 -> 100 cents after rounding.
	totals := Calculate([]CalcLine{
		{Quantity: 3, Price: 0.333, VATRatePct: 21},
	})

	if totals.SubtotalCents != 100 {
		t.Fatalf("subtotal = %d", totals.SubtotalCents)
	}
	if totals.VATCents != 21 {
		t.Fatalf("vat = %d", totals.VATCents)
	}
}

func TestCalculate_Empty(t *testing.T) {
	totals := Calculate(nil)
	if totals.TotalCents != 0 || len(totals.Breakdown) != 0 {
		t.Fatalf("totals = %+v", totals)
	}
}

func TestStartOfDay_KeepsLocalDate(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	afterMidnight := time.Date(2026, 3, 10, 0, 30, 0, 0, cet)

	got := startOfDay(afterMidnight)
	if got.Format("2006-01-02") != "2026-03-10" {
		t.Fatalf("startOfDay = %s, want 2026-03-10", got.Format("2006-01-02"))
	}
	if got.Hour() != 0 || got.Location() != cet {
		t.Fatalf("startOfDay = %v, want local midnight", got)
	}
}
