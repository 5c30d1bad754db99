package main

import "testing"

func TestNormalizeDelayFlag(t *testing.T) {
	tests := []struct {
		name          string
		set           bool
		value         int
		configDefault int
		expected      int
	}{
		{"Unset uses config default", false, -1, 5, 5},
		{"Explicit zero is manual mode", true, 0, 5, 0},
		{"Explicit in range", true, 7, 3, 7},
		{"Explicit negative clamps to zero", true, -3, 3, 0},
		{"Explicit too large clamps to max", true, 42, 3, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizeDelayFlag(tt.set, tt.value, tt.configDefault)
			if result != tt.expected {
				t.Errorf("normalizeDelayFlag(%v, %d, %d) = %d, want %d",
					tt.set, tt.value, tt.configDefault, result, tt.expected)
			}
		})
	}
}

func TestNormalizeStartFlag(t *testing.T) {
	tests := []struct {
		name     string
		set      bool
		value    int
		expected int
	}{
		{"Unset keeps sentinel", false, -1, -1},
		{"Explicit zero", true, 0, 0},
		{"Explicit positive", true, 12, 12},
		{"Explicit negative falls back to zero", true, -3, 0},
		{"Explicit minus one is not the sentinel", true, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := normalizeStartFlag(tt.set, tt.value)
			if result != tt.expected {
				t.Errorf("normalizeStartFlag(%v, %d) = %d, want %d",
					tt.set, tt.value, result, tt.expected)
			}
		})
	}
}
