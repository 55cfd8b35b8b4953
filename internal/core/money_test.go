package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"3500", 350000, true},
		{" 0.5 ", 50, true},
		{"12.345", 1235, true}, // half-up on the third decimal
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-5", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			m, err := ParseAmount(tc.in)
			if tc.ok && err != nil {
				t.Fatalf("ParseAmount(%q) error: %v", tc.in, err)
			}
			if !tc.ok {
				if err != ErrInvalidAmount {
					t.Fatalf("ParseAmount(%q) = %v, want ErrInvalidAmount", tc.in, err)
				}
				return
			}
			if m.Cents != tc.cents {
				t.Fatalf("ParseAmount(%q) = %d cents, want %d", tc.in, m.Cents, tc.cents)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	if s := (Money{Cents: 1234}).String(); s != "12.34" {
		t.Fatalf("String() = %q, want 12.34", s)
	}
	if s := (Money{Cents: -70}).String(); s != "-0.70" {
		t.Fatalf("String() = %q, want -0.70", s)
	}
}
