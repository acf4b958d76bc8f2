package extract

import (
	"testing"
	"time"
)

func TestDecimal_CommaAndDotAgree(t *testing.T) {
	comma, ok := Decimal("1,25")
	if !ok {
		t.Fatalf("expected '1,25' to parse")
	}
	dot, ok := Decimal("1.25")
	if !ok {
		t.Fatalf("expected '1.25' to parse")
	}
	if comma != dot || comma != 1.25 {
		t.Fatalf("expected both separators to yield 1.25, got %v and %v", comma, dot)
	}
}

func TestDecimal(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"320", 320, true},
		{"1.234,56", 1234.56, true},
		{"€ 75,50", 75.50, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
	}

	for _, tt := range tests {
		got, ok := Decimal(tt.raw)
		if ok != tt.ok {
			t.Errorf("Decimal(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Decimal(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestVATRate_Buckets(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"21", VATHigh},
		{"20", VATHigh},
		{"22", VATHigh},
		{"21%", VATHigh},
		{"9", VATLow},
		{"8", VATLow},
		{"10", VATLow},
		{"0", VATZero},
		{"0.21", VATHigh},
		{"0,21", VATHigh},
		{"0.20", VATHigh},
		{"0.22", VATHigh},
		{"0.09", VATLow},
		{"6", VATHigh},  // old low rate, no longer legal
		{"19", VATHigh}, // outside tolerance, default
		{"onzin", VATHigh},
	}

	for _, tt := range tests {
		if got := VATRate(tt.raw); got != tt.want {
			t.Errorf("VATRate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"vandaag", "2026-03-15", true},
		{"gisteren", "2026-03-14", true},
		{"morgen", "2026-03-16", true},
		{"today", "2026-03-15", true},
		{"15-03-2026", "2026-03-15", true},
		{"15/03/2026", "2026-03-15", true},
		{"2026-03-15", "2026-03-15", true},
		{"volgende week", "", false},
	}

	for _, tt := range tests {
		got, ok := Date(tt.raw, now)
		if ok != tt.ok {
			t.Errorf("Date(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if ok && got.Format("2006-01-02") != tt.want {
			t.Errorf("Date(%q) = %s, want %s", tt.raw, got.Format("2006-01-02"), tt.want)
		}
	}
}

func TestDate_LocalMidnightBoundary(t *testing.T) {
	// Half past midnight in Amsterdam is still the previous day in UTC;
	// "vandaag" must follow the local calendar.
	cet := time.FixedZone("CET", 3600)
	now := time.Date(2026, 3, 10, 0, 30, 0, 0, cet)

	got, ok := Date("vandaag", now)
	if !ok {
		t.Fatalf("expected 'vandaag' to parse")
	}
	if got.Format("2006-01-02") != "2026-03-10" {
		t.Fatalf("Date(vandaag) = %s, want 2026-03-10", got.Format("2006-01-02"))
	}

	got, ok = Date("gisteren", now)
	if !ok {
		t.Fatalf("expected 'gisteren' to parse")
	}
	if got.Format("2006-01-02") != "2026-03-09" {
		t.Fatalf("Date(gisteren) = %s, want 2026-03-09", got.Format("2006-01-02"))
	}
}

func TestUnit(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"5 uur installatiewerk", UnitUur},
		{"12 stopcontacten plaatsen", UnitStop},
		{"40 km reiskosten", UnitKm},
		{"1 project", UnitProject},
		{"3 licenties", UnitLicentie},
		{"stops", UnitStuk}, // not an exact unit token
		{"lampen", UnitStuk},
	}

	for _, tt := range tests {
		if got := Unit(tt.text); got != tt.want {
			t.Errorf("Unit(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
