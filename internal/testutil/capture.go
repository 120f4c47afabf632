package testutil

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// NewCapture writes a minimal Kismet capture database into the test's temp
// directory, with one devices row per JSON document, and returns its path.
// The file is removed with the temp dir when the test completes.
func NewCapture(t *testing.T, devices ...map[string]any) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "capture.kismet")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("testutil.NewCapture: open: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE devices (
			first_time INT,
			last_time INT,
			devkey TEXT,
			phyname TEXT,
			devmac TEXT,
			strongest_signal INT,
			min_lat REAL,
			min_lon REAL,
			max_lat REAL,
			max_lon REAL,
			avg_lat REAL,
			avg_lon REAL,
			bytes_data INT,
			type TEXT,
			device BLOB
		)`)
	if err != nil {
		t.Fatalf("testutil.NewCapture: create schema: %v", err)
	}

	for _, dev := range devices {
		blob, err := json.Marshal(dev)
		if err != nil {
			t.Fatalf("testutil.NewCapture: marshal device: %v", err)
		}
		mac, _ := dev["kismet.device.base.macaddr"].(string)
		phy, _ := dev["kismet.device.base.phyname"].(string)
		if _, err := db.Exec(
			"INSERT INTO devices (devmac, phyname, device) VALUES (?, ?, ?)",
			mac, phy, blob,
		); err != nil {
			t.Fatalf("testutil.NewCapture: insert device: %v", err)
		}
	}

	return path
}

// WiFiDevice builds a Kismet device JSON document for an 802.11 device with
// the given MAC and advertised SSID. Pass an empty SSID for a hidden
// network. Extra top-level fields can be merged in via overrides.
func WiFiDevice(mac, ssid string, overrides ...map[string]any) map[string]any {
	dot11 := map[string]any{}
	if ssid != "" {
		dot11["dot11.device.advertised_ssid_map"] = []any{
			map[string]any{
				"dot11.advertisedssid.ssid":      ssid,
				"dot11.advertisedssid.crypt_set": float64(0x08 | 0x200), // WPA2/PSK
			},
		}
	}

	dev := map[string]any{
		"kismet.device.base.phyname":       "IEEE802.11",
		"kismet.device.base.macaddr":       mac,
		"kismet.device.base.type":          "Wi-Fi AP",
		"kismet.device.base.manuf":         "TestCorp",
		"kismet.device.base.channel":       "6",
		"kismet.device.base.frequency":     float64(2437000),
		"kismet.device.base.first_time":    float64(1740000000),
		"kismet.device.base.last_time":     float64(1740003600),
		"kismet.device.base.packets.total": float64(100),
		"kismet.device.base.packets.data":  float64(25),
		"kismet.device.base.datasize":      float64(4096),
		"kismet.device.base.signal": map[string]any{
			"kismet.common.signal.last_signal": float64(-61),
			"kismet.common.signal.min_signal":  float64(-85),
			"kismet.common.signal.max_signal":  float64(-50),
		},
		"dot11.device": dot11,
	}
	for _, o := range overrides {
		for k, v := range o {
			dev[k] = v
		}
	}
	return dev
}
