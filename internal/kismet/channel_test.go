package kismet

import "testing"

func TestFrequencyToChannel(t *testing.T) {
	tests := []struct {
		name string
		freq float64
		want int
	}{
		{"2.4GHz ch1 kHz", 2412000, 1},
		{"2.4GHz ch6 kHz", 2437000, 6},
		{"2.4GHz ch11 MHz", 2462, 11},
		{"2.4GHz ch14", 2484000, 14},
		{"5GHz ch36", 5180000, 36},
		{"5GHz ch157", 5785000, 157},
		{"6GHz ch1", 5955000, 1},
		{"6GHz ch233", 7115000, 233},
		{"below bands", 900000, 0},
		{"between bands", 3000000, 0},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FrequencyToChannel(tt.freq); got != tt.want {
				t.Errorf("FrequencyToChannel(%v) = %d, want %d", tt.freq, got, tt.want)
			}
		})
	}
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"6", 6},
		{"11", 11},
		{"36", 36},
		{"157", 157},
		{"6W5", 6},
		{"157-6e", 157},
		{"", 0},
		{"n/a", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseChannel(tt.in); got != tt.want {
				t.Errorf("parseChannel(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFrequencyMHz(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{2437000, 2437},
		{2437, 2437},
		{0, 0},
	}
	for _, tt := range tests {
		if got := frequencyMHz(tt.in); got != tt.want {
			t.Errorf("frequencyMHz(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
