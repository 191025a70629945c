package utils

import (
	"testing"
	"time"
)

func TestTrimOrEmpty(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  IBAN-1  ", "IBAN-1"},
		{"\t\n", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := TrimOrEmpty(tc.in); got != tc.want {
			t.Fatalf("TrimOrEmpty(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSpace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Mogadishu   ", "Mogadishu"},
		{"Baidoa\t City", "Baidoa City"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeSpace(tc.in); got != tc.want {
			t.Fatalf("NormalizeSpace(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	at := time.Date(2026, 8, 30, 9, 15, 5, 0, time.Local)
	if got := FormatDateTime(at); got != "2026-08-30 09:15:05" {
		t.Fatalf("FormatDateTime = %q", got)
	}
}

func TestNowUTCIsUTC(t *testing.T) {
	if loc := NowUTC().Location(); loc != time.UTC {
		t.Fatalf("NowUTC location = %v", loc)
	}
}
