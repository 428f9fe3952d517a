package services

import (
	"strconv"
	"strings"
)

var rutWeights = [...]int{2, 3, 4, 5, 6, 7}

// CleanRUT keeps only digits and K, uppercased. "12.345.678-5" becomes "123456785".
func CleanRUT(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteByte('K')
		}
	}
	return b.String()
}

// RUTCheckDigit computes the modulo 11 check character for a numeric body.
// It returns false when body is empty or contains anything but ASCII digits.
func RUTCheckDigit(body string) (string, bool) {
	if body == "" {
		return "", false
	}

	sum := 0
	weight := 0
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return "", false
		}
		sum += int(c-'0') * rutWeights[weight]
		weight = (weight + 1) % len(rutWeights)
	}

	switch res := 11 - sum%11; res {
	case 11:
		return "0", true
	case 10:
		return "K", true
	default:
		return strconv.Itoa(res), true
	}
}

// ValidateRUT reports whether raw, once cleaned, carries a correct check character.
func ValidateRUT(raw string) bool {
	r := CleanRUT(raw)
	if len(r) < 2 {
		return false
	}

	body, dv := r[:len(r)-1], r[len(r)-1:]
	expected, ok := RUTCheckDigit(body)
	if !ok {
		return false
	}
	return expected == dv
}
