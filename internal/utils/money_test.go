package utils

import "testing"

func TestSplitFee(t *testing.T) {
	cases := []struct {
		total    float64
		fee      float64
		earnings float64
	}{
		{60, 6, 54},
		{0, 0, 0},
		{45.5, 4.55, 40.95},
		{99.99, 10, 89.99},
	}
	for _, tc := range cases {
		fee, earnings := SplitFee(tc.total)
		if fee != tc.fee {
			t.Fatalf("SplitFee(%v) fee = %v, want %v", tc.total, fee, tc.fee)
		}
		if earnings != tc.earnings {
			t.Fatalf("SplitFee(%v) earnings = %v, want %v", tc.total, earnings, tc.earnings)
		}
	}
}

func TestParseSeats(t *testing.T) {
	if got := ParseSeats("3"); got != 3 {
		t.Fatalf("ParseSeats(\"3\") = %d", got)
	}
	if got := ParseSeats(" 12 "); got != 12 {
		t.Fatalf("ParseSeats with spaces = %d", got)
	}
	for _, s := range []string{"", "abc", "-2", "1.5"} {
		if got := ParseSeats(s); got != 0 {
			t.Fatalf("ParseSeats(%q) = %d, want 0", s, got)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	if got := FormatUSD(60); got != "$60.00" {
		t.Fatalf("FormatUSD(60) = %q", got)
	}
	if got := FormatUSD(-3.5); got != "-$3.50" {
		t.Fatalf("FormatUSD(-3.5) = %q", got)
	}
}

func TestPaymentMethodLabel(t *testing.T) {
	if got := PaymentMethodLabel("evcplus"); got != "EVC Plus" {
		t.Fatalf("evcplus label = %q", got)
	}
	if got := PaymentMethodLabel("bank"); got != "Bank Transfer" {
		t.Fatalf("bank label = %q", got)
	}
	if got := PaymentMethodLabel("anything"); got != "Bank Transfer" {
		t.Fatalf("unknown label = %q", got)
	}
}
