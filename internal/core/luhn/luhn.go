// Package luhn implements the mod-10 checksum used to validate card numbers
package luhn

import (
	perr "snipjar/internal/platform/errors"
)

// Valid reports whether digits passes the Luhn check
// digits must contain only ASCII decimal digits; anything else is a rejection
func Valid(digits string) bool {
	if digits == "" {
		return false
	}
	sum, ok := checksum(digits, false)
	return ok && sum%10 == 0
}

// CheckDigit returns the digit that makes payload+digit pass Valid
func CheckDigit(payload string) (byte, error) {
	if payload == "" {
		return 0, perr.InvalidArgf("luhn: empty payload")
	}
	sum, ok := checksum(payload, true)
	if !ok {
		return 0, perr.InvalidArgf("luhn: payload must be decimal digits")
	}
	return byte('0' + (10-sum%10)%10), nil
}

// checksum walks digits right to left doubling every second position
// when shifted is true the rightmost digit is treated as position 1, leaving room for a check digit
func checksum(digits string, shifted bool) (int, bool) {
	sum := 0
	double := shifted
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int(c - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum, true
}
