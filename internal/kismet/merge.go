package kismet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// MergeStats summarizes one merge run.
type MergeStats struct {
	FilesRead     int
	TotalEntries  int
	UniqueDevices int
}

// Merge combines several capture databases into one, deduplicating devices
// by MAC. Duplicate devices get their packet counts summed, timestamps
// widened to earliest/latest, and best signal values kept. The output file
// is replaced if it exists.
//
// The device JSON is merged as raw maps so fields the reader never decodes
// survive the round trip.
func Merge(ctx context.Context, inputs []string, output string, logger *zap.Logger) (MergeStats, error) {
	var stats MergeStats

	merged := make(map[string]map[string]any)
	var order []string

	for _, input := range inputs {
		n, err := mergeFile(ctx, input, merged, &order)
		if err != nil {
			return stats, fmt.Errorf("merge %q: %w", input, err)
		}
		logger.Debug("merged capture", zap.String("file", input), zap.Int("devices", n))
		stats.FilesRead++
		stats.TotalEntries += n
	}

	if len(merged) == 0 {
		return stats, fmt.Errorf("no devices found in %d input file(s)", len(inputs))
	}
	stats.UniqueDevices = len(merged)

	if err := writeMerged(ctx, output, merged, order); err != nil {
		return stats, fmt.Errorf("write merged capture %q: %w", output, err)
	}
	return stats, nil
}

// mergeFile folds one capture's devices into the accumulator, returning the
// number of device rows read.
func mergeFile(ctx context.Context, path string, merged map[string]map[string]any, order *[]string) (int, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("ping: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT device FROM devices")
	if err != nil {
		return 0, fmt.Errorf("query devices: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return count, fmt.Errorf("scan: %w", err)
		}

		var dev map[string]any
		if err := json.Unmarshal(blob, &dev); err != nil {
			continue
		}
		mac, _ := dev["kismet.device.base.macaddr"].(string)
		if mac == "" {
			continue
		}

		if existing, ok := merged[mac]; ok {
			merged[mac] = mergeDevice(existing, dev)
		} else {
			merged[mac] = dev
			*order = append(*order, mac)
		}
		count++
	}
	return count, rows.Err()
}

// mergeDevice folds a duplicate sighting into the existing device JSON.
func mergeDevice(existing, next map[string]any) map[string]any {
	for _, key := range []string{
		"kismet.device.base.packets.total",
		"kismet.device.base.packets.data",
		"kismet.device.base.datasize",
	} {
		existing[key] = jsonNumber(existing[key]) + jsonNumber(next[key])
	}

	// Earliest non-zero first_time.
	if ft := jsonNumber(next["kismet.device.base.first_time"]); ft > 0 {
		cur := jsonNumber(existing["kismet.device.base.first_time"])
		if cur == 0 || ft < cur {
			existing["kismet.device.base.first_time"] = ft
		}
	}

	// Latest last_time.
	lastExisting := jsonNumber(existing["kismet.device.base.last_time"])
	lastNext := jsonNumber(next["kismet.device.base.last_time"])
	if lastNext > lastExisting {
		existing["kismet.device.base.last_time"] = lastNext
	}

	mergeSignal(existing, next, lastNext >= lastExisting)

	// Keep the first location fix seen.
	if loc, ok := existing["kismet.device.base.location"].(map[string]any); !ok || loc["kismet.common.location.avg_loc"] == nil {
		if nextLoc, ok := next["kismet.device.base.location"].(map[string]any); ok && nextLoc["kismet.common.location.avg_loc"] != nil {
			existing["kismet.device.base.location"] = nextLoc
		}
	}

	return existing
}

// mergeSignal keeps the best max signal, the worst min signal, and the last
// signal from whichever sighting is more recent.
func mergeSignal(existing, next map[string]any, nextIsNewer bool) {
	nextSig, ok := next["kismet.device.base.signal"].(map[string]any)
	if !ok {
		return
	}
	sig, ok := existing["kismet.device.base.signal"].(map[string]any)
	if !ok {
		existing["kismet.device.base.signal"] = nextSig
		return
	}

	if v, ok := nextSig["kismet.common.signal.max_signal"]; ok {
		if cur, curOK := sig["kismet.common.signal.max_signal"]; !curOK || jsonNumber(v) > jsonNumber(cur) {
			sig["kismet.common.signal.max_signal"] = v
		}
	}
	if v, ok := nextSig["kismet.common.signal.min_signal"]; ok {
		if cur, curOK := sig["kismet.common.signal.min_signal"]; !curOK || jsonNumber(v) < jsonNumber(cur) {
			sig["kismet.common.signal.min_signal"] = v
		}
	}
	if nextIsNewer {
		if v, ok := nextSig["kismet.common.signal.last_signal"]; ok {
			sig["kismet.common.signal.last_signal"] = v
		}
	}
}

// logDBVersion is the Kismet log schema version written to the KISMET
// metadata table; Kismet's own tooling reads it to validate the file.
const logDBVersion = 6

// devicesSchema matches the devices table Kismet itself creates.
const devicesSchema = `
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
	)`

var devicesIndexes = []string{
	"CREATE INDEX devices_devkey ON devices (devkey)",
	"CREATE INDEX devices_devmac ON devices (devmac)",
	"CREATE INDEX devices_first_time ON devices (first_time)",
	"CREATE INDEX devices_last_time ON devices (last_time)",
	"CREATE INDEX devices_phyname ON devices (phyname)",
	"CREATE INDEX devices_type ON devices (type)",
}

// writeMerged creates a fresh output database and inserts the merged
// devices in first-seen order.
func writeMerged(ctx context.Context, path string, merged map[string]map[string]any, order []string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing output: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, devicesSchema); err != nil {
		return fmt.Errorf("create devices table: %w", err)
	}
	for _, idx := range devicesIndexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	for _, mac := range order {
		if err := insertDevice(ctx, tx, merged[mac]); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert device %s: %w", mac, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	return writeMetadata(ctx, db)
}

// writeMetadata creates the KISMET metadata table and its single row.
func writeMetadata(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS KISMET (
			kismet_version TEXT,
			build_uuid TEXT,
			build_compile TEXT,
			db_version INT
		)`)
	if err != nil {
		return fmt.Errorf("create KISMET table: %w", err)
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO KISMET (kismet_version, build_uuid, build_compile, db_version) VALUES (?, ?, ?, ?)",
		"merged", "wifi-sort-merge", time.Now().Format(time.RFC3339), logDBVersion,
	)
	if err != nil {
		return fmt.Errorf("insert KISMET metadata: %w", err)
	}
	return nil
}

func insertDevice(ctx context.Context, tx *sql.Tx, dev map[string]any) error {
	blob, err := json.Marshal(dev)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	var strongest float64
	if sig, ok := dev["kismet.device.base.signal"].(map[string]any); ok {
		strongest = jsonNumber(sig["kismet.common.signal.max_signal"])
	}

	loc, _ := dev["kismet.device.base.location"].(map[string]any)
	avgLat, avgLon := geopoint(loc, "kismet.common.location.avg_loc")
	minLat, minLon := geopoint(loc, "kismet.common.location.min_loc")
	maxLat, maxLon := geopoint(loc, "kismet.common.location.max_loc")

	_, err = tx.ExecContext(ctx, `
		INSERT INTO devices
		(first_time, last_time, devkey, phyname, devmac, strongest_signal,
		 min_lat, min_lon, max_lat, max_lon, avg_lat, avg_lon, bytes_data, type, device)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(jsonNumber(dev["kismet.device.base.first_time"])),
		int64(jsonNumber(dev["kismet.device.base.last_time"])),
		stringField(dev, "kismet.device.base.key"),
		stringField(dev, "kismet.device.base.phyname"),
		stringField(dev, "kismet.device.base.macaddr"),
		int64(strongest),
		minLat, minLon, maxLat, maxLon,
		avgLat, avgLon,
		int64(jsonNumber(dev["kismet.device.base.datasize"])),
		stringField(dev, "kismet.device.base.type"),
		blob,
	)
	return err
}

// geopoint extracts (lat, lon) from a named location entry; missing data
// yields zeros, matching what Kismet writes for devices without a GPS fix.
func geopoint(loc map[string]any, key string) (lat, lon float64) {
	entry, ok := loc[key].(map[string]any)
	if !ok {
		return 0, 0
	}
	gp, ok := entry["kismet.common.location.geopoint"].([]any)
	if !ok || len(gp) < 2 {
		return 0, 0
	}
	return jsonNumber(gp[1]), jsonNumber(gp[0])
}

// jsonNumber coerces a decoded JSON value to float64; non-numbers are 0.
func jsonNumber(v any) float64 {
	f, _ := v.(float64)
	return f
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
