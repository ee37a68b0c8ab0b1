package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
		ok       bool
	}{
		{raw: "50", expected: "50", ok: true},
		{raw: " 12.75 ", expected: "12.75", ok: true},
		{raw: "0,01", expected: "0.01", ok: true},
		{raw: "0", ok: false},
		{raw: "-5", ok: false},
		{raw: "", ok: false},
		{raw: "abc", ok: false},
		{raw: "1,000.50", ok: false},
		{raw: "NaN", ok: false},
		{raw: "1e400", ok: false},
		{raw: "1e-400", ok: false},
		{raw: "+5", ok: false},
		{raw: "12345678901234567.89", expected: "12345678901234567.89", ok: true},
		{raw: ".5", expected: "0.5", ok: true},
	}
	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			amount, err := ParseAmount(c.raw)
			if !c.ok {
				assert.Error(t, err)
				return
			}
			assert.Nil(t, err)
			assert.True(t, decimal.RequireFromString(c.expected).Equal(amount))
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "R$ 150.00", FormatMoney(decimal.NewFromInt(150)))
	assert.Equal(t, "R$ 0.50", FormatMoney(decimal.RequireFromString("0.5")))
}
