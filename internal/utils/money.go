package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SystemFeeRate is the platform share retained from every booking total.
const SystemFeeRate = 0.10

// RoundCents rounds a dollar amount to two decimals, half away from zero.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatUSD renders an amount with a dollar sign, e.g. "$60.00".
func FormatUSD(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}

// SplitFee returns the platform fee and owner earnings for a booking total.
// Fee is 10% of the total rounded to cents; earnings are the remainder.
func SplitFee(total float64) (fee, earnings float64) {
	fee = RoundCents(total * SystemFeeRate)
	earnings = RoundCents(total - fee)
	return fee, earnings
}

// ParseSeats parses a seat-count input. Empty or non-numeric input counts
// as zero seats rather than an error.
func ParseSeats(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
