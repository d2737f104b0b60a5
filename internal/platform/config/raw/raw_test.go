package raw

import "testing"

func TestRaw(t *testing.T) {
	t.Setenv("LOG_LEVEL", " warn ")
	t.Setenv("LOG_CALLER", "YES")
	t.Setenv("LOG_COLOR", "off")
	t.Setenv("LOG_SAMPLE_EVERY", "10")
	t.Setenv("LOG_BAD", "-3")

	c := New().Prefix("LOG_")
	cases := []struct {
		name string
		got  any
		want any
	}{
		{"get", c.Get("LEVEL", "info"), "warn"},
		{"get default", c.Get("FORMAT", "console"), "console"},
		{"bool yes", c.GetBool("CALLER", false), true},
		{"bool other", c.GetBool("COLOR", true), false},
		{"bool default", c.GetBool("MISSING", true), true},
		{"int", c.GetInt("SAMPLE_EVERY", 0), 10},
		{"int negative", c.GetInt("BAD", 1), 1},
		{"int missing", c.GetInt("MISSING", 2), 2},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if tc.got != tc.want {
				t.Fatalf("got %v want %v", tc.got, tc.want)
			}
		})
	}
}
