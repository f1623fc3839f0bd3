package utils

import (
	"testing"
)

func TestFormatPace(t *testing.T) {
	cases := []struct {
		secondsPerKm float64
		expected     string
	}{
		{233.3, "3:53"},
		{240, "4:00"},
		{359.6, "6:00"},
		{61, "1:01"},
		{0, "-"},
		{-10, "-"},
	}

	for _, c := range cases {
		if got := FormatPace(c.secondsPerKm); got != c.expected {
			t.Errorf("FormatPace(%v) = %q, expected %q", c.secondsPerKm, got, c.expected)
		}
	}
}

func TestFormatVelocity(t *testing.T) {
	if got := FormatVelocity(4.2857); got != "4.29 m/s" {
		t.Errorf("Expected 4.29 m/s, got %q", got)
	}
	if got := FormatVelocity(0); got != "-" {
		t.Errorf("Expected placeholder for zero velocity, got %q", got)
	}
}
