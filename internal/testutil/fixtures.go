package testutil

import (
	"github.com/Liz4rd04/wifi-sort-tool/pkg/models"
)

// NewRecord returns a DeviceRecord with sensible defaults, suitable for
// test fixtures. Override individual fields via options.
func NewRecord(opts ...func(*models.DeviceRecord)) models.DeviceRecord {
	d := models.DeviceRecord{
		MAC:          "AA:BB:CC:DD:EE:FF",
		SSID:         "TestNet",
		Type:         "Wi-Fi AP",
		Manufacturer: "TestCorp",
		Encryption:   "WPA2/PSK",
		Channel:      6,
		FrequencyMHz: 2437,
		SignalLast:   -60,
		SignalMin:    -82,
		SignalMax:    -48,
		PacketsTotal: 120,
		PacketsData:  40,
		DataBytes:    8192,
		FirstSeen:    "2026-03-01 10:00:00",
		LastSeen:     "2026-03-01 10:30:00",
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// WithSSID sets the record's SSID. An empty string models a hidden network.
func WithSSID(ssid string) func(*models.DeviceRecord) {
	return func(d *models.DeviceRecord) { d.SSID = ssid }
}

// WithMAC sets the record's MAC address.
func WithMAC(mac string) func(*models.DeviceRecord) {
	return func(d *models.DeviceRecord) { d.MAC = mac }
}

// WithType sets the record's device type.
func WithType(t string) func(*models.DeviceRecord) {
	return func(d *models.DeviceRecord) { d.Type = t }
}

// WithLocation sets the record's GPS coordinates.
func WithLocation(lat, lon float64) func(*models.DeviceRecord) {
	return func(d *models.DeviceRecord) {
		d.Latitude = &lat
		d.Longitude = &lon
	}
}
