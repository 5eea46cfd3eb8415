// Package core provides the domain types shared by both dashboard views.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between paise and rupee representations.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToPaise converts a decimal amount string to paise with
// half-up rounding on the third decimal place. Both dot (12.34) and
// comma (12,34) separators are accepted. The result must be positive.
//
// Examples:
//
//	ParseDecimalToPaise("500")    -> 50000, nil
//	ParseDecimalToPaise("12,34")  -> 1234, nil
//	ParseDecimalToPaise("12.346") -> 1235, nil (rounds up)
func ParseDecimalToPaise(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracPaise int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracPaise = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracPaise += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracPaise++
			}
		}
	}
	paise := iv*100 + fracPaise
	if paise <= 0 {
		return 0, ErrInvalidAmount
	}
	return paise, nil
}

// MoneyFromRupees converts a rupee value as received from the backend
// (JSON number) to Money, rounding half away from zero.
func MoneyFromRupees(v float64) Money {
	return Money{Paise: int64(math.Round(v * 100))}
}

// Rupees returns the rupee value as a float64 for serialization and
// display. Use paise for arithmetic to avoid floating-point drift.
func (m Money) Rupees() float64 {
	return float64(m.Paise) / 100.0
}

// DecimalString renders the amount as a plain decimal string with two
// digits, e.g. "500.00". Used for CSV rows and message text.
func (m Money) DecimalString() string {
	neg := m.Paise < 0
	p := m.Paise
	if neg {
		p = -p
	}
	s := strconv.FormatInt(p/100, 10) + "." + pad2(p%100)
	if neg {
		return "-" + s
	}
	return s
}

// String renders the amount with the rupee sign, e.g. "₹500.00".
func (m Money) String() string {
	if m.Paise < 0 {
		return "-₹" + Money{Paise: -m.Paise}.DecimalString()
	}
	return "₹" + m.DecimalString()
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
