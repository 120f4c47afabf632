package kismet

// frequencyMHz normalizes a Kismet frequency value to MHz. Kismet stores
// kHz, but older captures carry MHz directly; values above 10000 are
// treated as kHz.
func frequencyMHz(freq float64) float64 {
	if freq > 10000 {
		return freq / 1000
	}
	return freq
}

// FrequencyToChannel converts a frequency (kHz or MHz) to an 802.11 channel
// number. Returns 0 for frequencies outside the 2.4, 5, and 6 GHz bands.
func FrequencyToChannel(freq float64) int {
	mhz := frequencyMHz(freq)

	switch {
	case mhz >= 2412 && mhz <= 2484:
		if mhz == 2484 {
			return 14 // Japan-only channel, not on the 5 MHz grid
		}
		return int((mhz - 2407) / 5)
	case mhz >= 5170 && mhz <= 5825:
		return int((mhz - 5000) / 5)
	case mhz >= 5955 && mhz <= 7115:
		return int((mhz - 5950) / 5)
	default:
		return 0
	}
}
