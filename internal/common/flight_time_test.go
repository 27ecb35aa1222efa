package common

import "testing"

func TestParseFlightTime(t *testing.T) {
	str := func(s string) *string { return &s }

	cases := []struct {
		name    string
		input   *string
		want    int
		wantErr bool
	}{
		{"nil means zero", nil, 0, false},
		{"empty means zero", str(""), 0, false},
		{"ninety minutes", str("01:30"), 90, false},
		{"zero", str("00:00"), 0, false},
		{"long flight", str("12:05"), 725, false},
		{"four digit hours", str("1234:59"), 74099, false},
		{"missing leading zero on minutes", str("1:5"), 0, true},
		{"minutes overflow", str("01:60"), 0, true},
		{"no separator", str("0130"), 0, true},
		{"prose", str("90 minutes"), 0, true},
		{"negative", str("-1:30"), 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFlightTime(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("Expected %d minutes, got %d", tc.want, got)
			}
		})
	}
}

func TestFormatDecimalHours(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "0.00"},
		{90, "1.50"},
		{45, "0.75"},
		{60, "1.00"},
		{100, "1.67"},
		{725, "12.08"},
	}

	for _, tc := range cases {
		if got := FormatDecimalHours(tc.minutes); got != tc.want {
			t.Errorf("FormatDecimalHours(%d): expected %s, got %s", tc.minutes, tc.want, got)
		}
	}
}

func TestIntOrZero(t *testing.T) {
	if got := IntOrZero(nil); got != 0 {
		t.Errorf("Expected 0 for nil, got %d", got)
	}
	v := 7
	if got := IntOrZero(&v); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
}
