package luhn

import (
	"math/rand"
	"strings"
	"testing"
)

func TestValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"4532015112830366", true},
		{"4532015112830367", false},
		{"4111111111111111", true},
		{"5555555555554444", true},
		{"79927398713", true},
		{"79927398710", false},
		{"", false},
		{"4532-0151-1283-0366", false}, // caller strips separators
		{"453201511283036a", false},
		{"０", false}, // fullwidth digit is not ASCII
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			if got := Valid(tc.in); got != tc.want {
				t.Fatalf("Valid(%q)=%v want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCheckDigit(t *testing.T) {
	d, err := CheckDigit("453201511283036")
	if err != nil {
		t.Fatalf("CheckDigit: %v", err)
	}
	if d != '6' {
		t.Fatalf("check digit = %c want 6", d)
	}
	if _, err := CheckDigit(""); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := CheckDigit("12a4"); err == nil {
		t.Fatalf("expected error for non-digit payload")
	}
}

func TestRoundTripAndCheckDigitFlip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		n := 12 + rng.Intn(7) // payload 12..18, full number 13..19
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteByte(byte('0' + rng.Intn(10)))
		}
		payload := b.String()
		d, err := CheckDigit(payload)
		if err != nil {
			t.Fatalf("CheckDigit(%q): %v", payload, err)
		}
		full := payload + string(d)
		if !Valid(full) {
			t.Fatalf("round trip failed for %q", full)
		}
		// any other check digit must fail
		wrong := byte('0' + (int(d-'0')+1+rng.Intn(9))%10)
		if Valid(payload + string(wrong)) {
			t.Fatalf("flipped check digit accepted: %q", payload+string(wrong))
		}
	}
}
