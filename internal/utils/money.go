package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ParseAmount parses a user-supplied amount into whole Naira. The card
// price has no minor units, so decimals beyond ".00" are rejected.
// Thousands separators ("30,000") are tolerated.
func ParseAmount(amount string) (int64, error) {
	value := strings.TrimSpace(amount)
	if value == "" {
		return 0, errors.New("amount is empty")
	}

	if strings.Contains(value, ",") && strings.Contains(value, ".") {
		return 0, errors.New("use a single separator style")
	}
	value = strings.ReplaceAll(value, ",", "")

	if strings.Contains(value, ".") {
		parts := strings.Split(value, ".")
		if len(parts) != 2 {
			return 0, errors.New("invalid decimal format")
		}
		intPart, fracPart := parts[0], parts[1]
		if intPart == "" {
			intPart = "0"
		}
		if !isDigits(intPart) || !isDigits(fracPart) {
			return 0, errors.New("amount must contain only digits")
		}
		for _, r := range fracPart {
			if r != '0' {
				return 0, errors.New("amount must be whole Naira")
			}
		}
		value = intPart
	}

	if !isDigits(value) {
		return 0, errors.New("amount must contain only digits")
	}
	naira, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid amount")
	}
	if naira < 0 {
		return 0, errors.New("amount must not be negative")
	}
	return naira, nil
}

// FormatNaira renders a whole-Naira amount as "₦30,000.00".
func FormatNaira(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "₦" + b.String() + ".00"
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
