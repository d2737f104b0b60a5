package langhint

import "testing"

func TestScript(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"-.-", ""},
		{"4532 0151 1283 0366", Digits},
		{"홍길동", "Hangul"},
		{"서울특별시 강남구 테헤란로 152", "Hangul"},
		{"user@example.com", "Latin"},
		{"12가3456", "Hangul"},
		{"東京タワー", "Katakana"},
		{"Москва", "Cyrillic"},
		{"ab가나", "Hangul"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			if got := Script(tc.in); got != tc.want {
				t.Fatalf("Script(%q) = %q want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestLang(t *testing.T) {
	if Lang("Hangul") != "ko" || Lang("Katakana") != "ja" {
		t.Fatalf("unexpected mapping")
	}
	if Lang("Latin") != "" || Lang(Digits) != "" || Lang("") != "" {
		t.Fatalf("ambiguous scripts must not map")
	}
}
