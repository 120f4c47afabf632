package kismet

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Liz4rd04/wifi-sort-tool/internal/testutil"
)

func TestMerge_DeduplicatesByMAC(t *testing.T) {
	first := testutil.NewCapture(t,
		testutil.WiFiDevice("AA:BB:CC:00:00:01", "HomeNet", map[string]any{
			"kismet.device.base.first_time":    float64(1000),
			"kismet.device.base.last_time":     float64(2000),
			"kismet.device.base.packets.total": float64(100),
			"kismet.device.base.packets.data":  float64(30),
			"kismet.device.base.datasize":      float64(512),
			"kismet.device.base.signal": map[string]any{
				"kismet.common.signal.last_signal": float64(-70),
				"kismet.common.signal.min_signal":  float64(-80),
				"kismet.common.signal.max_signal":  float64(-60),
			},
		}),
		testutil.WiFiDevice("AA:BB:CC:00:00:02", "OnlyInFirst"),
	)
	second := testutil.NewCapture(t,
		testutil.WiFiDevice("AA:BB:CC:00:00:01", "HomeNet", map[string]any{
			"kismet.device.base.first_time":    float64(1500),
			"kismet.device.base.last_time":     float64(3000),
			"kismet.device.base.packets.total": float64(50),
			"kismet.device.base.packets.data":  float64(20),
			"kismet.device.base.datasize":      float64(256),
			"kismet.device.base.signal": map[string]any{
				"kismet.common.signal.last_signal": float64(-55),
				"kismet.common.signal.min_signal":  float64(-90),
				"kismet.common.signal.max_signal":  float64(-45),
			},
		}),
	)

	output := filepath.Join(t.TempDir(), "merged.kismet")
	stats, err := Merge(context.Background(), []string{first, second}, output, testutil.Logger())
	require.NoError(t, err)

	if stats.FilesRead != 2 {
		t.Errorf("FilesRead = %d, want 2", stats.FilesRead)
	}
	if stats.TotalEntries != 3 {
		t.Errorf("TotalEntries = %d, want 3", stats.TotalEntries)
	}
	if stats.UniqueDevices != 2 {
		t.Errorf("UniqueDevices = %d, want 2", stats.UniqueDevices)
	}

	// The merged output is itself a readable capture.
	r := openTestReader(t, output)
	records, err := r.Devices(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	merged := records[0]
	if merged.MAC != "AA:BB:CC:00:00:01" {
		t.Fatalf("first record MAC = %q, want the duplicated device", merged.MAC)
	}
	if merged.PacketsTotal != 150 {
		t.Errorf("PacketsTotal = %d, want 150 (summed)", merged.PacketsTotal)
	}
	if merged.PacketsData != 50 {
		t.Errorf("PacketsData = %d, want 50 (summed)", merged.PacketsData)
	}
	if merged.DataBytes != 768 {
		t.Errorf("DataBytes = %d, want 768 (summed)", merged.DataBytes)
	}
	if merged.SignalMax != -45 {
		t.Errorf("SignalMax = %d, want -45 (best)", merged.SignalMax)
	}
	if merged.SignalMin != -90 {
		t.Errorf("SignalMin = %d, want -90 (worst)", merged.SignalMin)
	}
	// Second sighting is more recent, so its last signal wins.
	if merged.SignalLast != -55 {
		t.Errorf("SignalLast = %d, want -55 (most recent)", merged.SignalLast)
	}
}

func TestMerge_TimestampsWiden(t *testing.T) {
	early := testutil.NewCapture(t,
		testutil.WiFiDevice("AA:BB:CC:00:00:01", "Net", map[string]any{
			"kismet.device.base.first_time": float64(1740000000),
			"kismet.device.base.last_time":  float64(1740001000),
		}),
	)
	late := testutil.NewCapture(t,
		testutil.WiFiDevice("AA:BB:CC:00:00:01", "Net", map[string]any{
			"kismet.device.base.first_time": float64(1740000500),
			"kismet.device.base.last_time":  float64(1740009000),
		}),
	)

	output := filepath.Join(t.TempDir(), "merged.kismet")
	_, err := Merge(context.Background(), []string{late, early}, output, testutil.Logger())
	require.NoError(t, err)

	db := openTestReader(t, output)
	records, err := db.Devices(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	// Earliest first_time (from the "early" capture) and latest last_time
	// (from the "late" one), regardless of file order.
	wantFirst := time.Unix(1740000000, 0).Format("2006-01-02 15:04:05")
	wantLast := time.Unix(1740009000, 0).Format("2006-01-02 15:04:05")
	if records[0].FirstSeen != wantFirst {
		t.Errorf("FirstSeen = %q, want %q", records[0].FirstSeen, wantFirst)
	}
	if records[0].LastSeen != wantLast {
		t.Errorf("LastSeen = %q, want %q", records[0].LastSeen, wantLast)
	}
}

func TestMerge_WritesKismetMetadata(t *testing.T) {
	first := testutil.NewCapture(t, testutil.WiFiDevice("AA:BB:CC:00:00:01", "NetA"))
	second := testutil.NewCapture(t, testutil.WiFiDevice("AA:BB:CC:00:00:02", "NetB"))
	output := filepath.Join(t.TempDir(), "merged.kismet")

	_, err := Merge(context.Background(), []string{first, second}, output, testutil.Logger())
	require.NoError(t, err)

	db, err := sql.Open("sqlite", output)
	require.NoError(t, err)
	defer db.Close()

	var tables int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='KISMET'").Scan(&tables)
	require.NoError(t, err)
	if tables != 1 {
		t.Fatal("merged output has no KISMET metadata table")
	}

	var version, uuid string
	var dbVersion int
	err = db.QueryRow("SELECT kismet_version, build_uuid, db_version FROM KISMET").Scan(&version, &uuid, &dbVersion)
	require.NoError(t, err)
	if version != "merged" {
		t.Errorf("kismet_version = %q, want merged", version)
	}
	if uuid != "wifi-sort-merge" {
		t.Errorf("build_uuid = %q, want wifi-sort-merge", uuid)
	}
	if dbVersion != 6 {
		t.Errorf("db_version = %d, want 6", dbVersion)
	}
}

func TestMerge_SingleInput(t *testing.T) {
	input := testutil.NewCapture(t,
		testutil.WiFiDevice("AA:BB:CC:00:00:01", "NetA"),
		testutil.WiFiDevice("AA:BB:CC:00:00:02", "NetB"),
	)
	output := filepath.Join(t.TempDir(), "merged.kismet")

	stats, err := Merge(context.Background(), []string{input}, output, testutil.Logger())
	require.NoError(t, err)

	if stats.UniqueDevices != 2 {
		t.Errorf("UniqueDevices = %d, want 2", stats.UniqueDevices)
	}

	r := openTestReader(t, output)
	records, err := r.Devices(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestMerge_NoDevices(t *testing.T) {
	empty := testutil.NewCapture(t)
	output := filepath.Join(t.TempDir(), "merged.kismet")

	_, err := Merge(context.Background(), []string{empty}, output, testutil.Logger())
	if err == nil {
		t.Fatal("Merge with no devices returned nil error")
	}
}

func TestMerge_MissingInput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "merged.kismet")
	_, err := Merge(context.Background(), []string{filepath.Join(t.TempDir(), "nope.kismet")}, output, testutil.Logger())
	if err == nil {
		t.Fatal("Merge with missing input returned nil error")
	}
}
