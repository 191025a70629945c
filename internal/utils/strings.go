package utils

import (
	"strings"
)

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// PaymentMethodLabel maps wire payment-method values to display labels.
// Only two methods exist; anything unknown renders as a bank transfer.
func PaymentMethodLabel(method string) string {
	if strings.TrimSpace(strings.ToLower(method)) == "evcplus" {
		return "EVC Plus"
	}
	return "Bank Transfer"
}
