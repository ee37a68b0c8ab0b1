package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrNotPositive = errors.New("amount must be greater than zero")

// plain digits with an optional fraction; no sign, exponent or grouping
var amountPattern = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// ParseAmount reads a user-typed amount. Both "12.50" and "12,50" are accepted.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	if strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrNotPositive
	}
	if !amountPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("amount %q is not a number", raw)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q is not a number", raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}
	return amount, nil
}

// FormatMoney renders an amount with the currency prefix used across the client.
func FormatMoney(amount decimal.Decimal) string {
	return "R$ " + amount.StringFixed(2)
}
