// Package models defines the data types shared across the wifisort pipeline.
package models

// Category is the report bucket assigned to a device record.
type Category string

const (
	// CategoryClient holds devices whose SSID matched a client pattern.
	CategoryClient Category = "client-named"
	// CategoryNonClient holds devices with an SSID that matched nothing.
	CategoryNonClient Category = "non-client-named"
	// CategoryUnknown holds devices broadcasting no SSID.
	CategoryUnknown Category = "unknown-device"
)

// DeviceRecord is one wireless device extracted from a capture database.
// Records are read-only after extraction; classification only inspects SSID
// and forwards the record whole.
type DeviceRecord struct {
	MAC          string
	SSID         string
	Type         string
	Manufacturer string
	Encryption   string
	Channel      int
	FrequencyMHz float64
	SignalLast   int
	SignalMin    int
	SignalMax    int
	PacketsTotal int64
	PacketsData  int64
	DataBytes    int64
	FirstSeen    string
	LastSeen     string
	Latitude     *float64
	Longitude    *float64
	AltitudeM    *float64
}

// HasSSID reports whether the device broadcast a network name.
func (d DeviceRecord) HasSSID() bool {
	return d.SSID != ""
}
