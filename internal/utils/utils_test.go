package utils

import (
	"testing"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/domain"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"3000":       "ETB 3,000.00",
		"999.5":      "ETB 999.50",
		"1234567.89": "ETB 1,234,567.89",
		"-1500":      "ETB -1,500.00",
	}
	for in, want := range cases {
		m, err := domain.ParseMoney(in)
		if err != nil {
			t.Fatalf("parse %s: %v", in, err)
		}
		if got := FormatMoney(m, "ETB"); got != want {
			t.Fatalf("FormatMoney(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestSafeFilename(t *testing.T) {
	cases := map[string]string{
		"passport.pdf":         "passport.pdf",
		"../../etc/passwd":     "passwd",
		`C:\Users\me\visa.png`: "visa.png",
		"bad\"name\r\n.jpg":    "badname.jpg",
		"":                     "document",
	}
	for in, want := range cases {
		if got := SafeFilename(in); got != want {
			t.Fatalf("SafeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDateTime(t *testing.T) {
	for _, in := range []string{"2026-12-01T08:30:00Z", "2026-12-01 08:30:00", "2026-12-01 08:30"} {
		got, err := ParseDateTime(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got.Minute() != 30 {
			t.Fatalf("unexpected time %v", got)
		}
	}
	if _, err := ParseDateTime("tomorrow"); err == nil {
		t.Fatalf("expected error")
	}
}
