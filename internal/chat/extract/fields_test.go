package extract

import "testing"

func TestClientName(t *testing.T) {
	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		{"maak een offerte voor Riza", "Riza", true},
		{"factuur voor Jansen BV graag", "Jansen BV graag", true},
		{"maak een factuur voor 3 uur werk voor Pietersen", "Pietersen", true},
		{"invoice for Acme Ltd", "Acme Ltd", true},
		{"factuur voor € 500", "", false},
		{"maak een factuur", "", false},
	}

	for _, tt := range tests {
		got, ok := ClientName(tt.message)
		if ok != tt.ok {
			t.Errorf("ClientName(%q) ok = %v, want %v", tt.message, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ClientName(%q) = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		message string
		want    float64
		ok      bool
	}{
		{"bedrag 500", 500, true},
		{"bedrag: 1.234,56", 1234.56, true},
		{"€ 75,50", 75.50, true},
		{"amount 99", 99, true},
		{"geen getal hier", 0, false},
	}

	for _, tt := range tests {
		got, ok := Amount(tt.message)
		if ok != tt.ok {
			t.Errorf("Amount(%q) ok = %v, want %v", tt.message, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Amount(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestEmail(t *testing.T) {
	got, ok := Email("de klant is bereikbaar op jan@voorbeeld.nl, bel anders")
	if !ok || got != "jan@voorbeeld.nl" {
		t.Fatalf("Email = %q ok=%v", got, ok)
	}
	if _, ok := Email("geen adres"); ok {
		t.Fatalf("expected no email")
	}
}

func TestPostalCode(t *testing.T) {
	got, ok := PostalCode("Hoofdstraat 1, 1234ab Amsterdam")
	if !ok || got != "1234 AB" {
		t.Fatalf("PostalCode = %q ok=%v", got, ok)
	}
}

func TestDayCount(t *testing.T) {
	got, ok := DayCount("betaling binnen 14 dagen")
	if !ok || got != 14 {
		t.Fatalf("DayCount = %d ok=%v", got, ok)
	}
}

func TestLooksLikeBareName(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"Jan de Vries", true},
		{"Riza", true},
		{"maak een nieuwe klant aan voor mij alsjeblieft vandaag", false},
		{"jan@voorbeeld.nl", false},
		{"Kerkstraat 12", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := LooksLikeBareName(tt.message); got != tt.want {
			t.Errorf("LooksLikeBareName(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}
