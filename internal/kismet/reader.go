// Package kismet reads and merges Kismet capture databases.
//
// A .kismet file is a SQLite database whose devices table stores one JSON
// blob per observed device. Only the fields the report needs are decoded;
// everything else in the blob is ignored.
package kismet

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver

	"github.com/Liz4rd04/wifi-sort-tool/internal/oui"
	"github.com/Liz4rd04/wifi-sort-tool/pkg/models"
)

// phyWiFi is the Kismet phy name for 802.11 devices; all other phys
// (Bluetooth, RF sensors, ...) are skipped.
const phyWiFi = "IEEE802.11"

// timeLayout is the timestamp format used in report cells.
const timeLayout = "2006-01-02 15:04:05"

// Reader extracts WiFi device records from one capture database.
type Reader struct {
	db     *sql.DB
	vendor *oui.Table
	logger *zap.Logger
}

// Open opens a capture database read-only. The file must already exist;
// sql.Open alone would happily create an empty database.
func Open(path string, logger *zap.Logger) (*Reader, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open capture %q: %w", path, err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping capture %q: %w", path, err)
	}

	// modernc.org/sqlite takes pragmas as SQL statements, not DSN params.
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}

	return &Reader{db: db, vendor: oui.NewTable(), logger: logger}, nil
}

// Close closes the underlying database connection.
func (r *Reader) Close() error {
	return r.db.Close()
}

// Devices returns every 802.11 device in the capture, in database row
// order. Rows whose JSON cannot be decoded are logged and skipped, never
// fatal.
func (r *Reader) Devices(ctx context.Context) ([]models.DeviceRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT device FROM devices")
	if err != nil {
		return nil, fmt.Errorf("query devices table: %w", err)
	}
	defer rows.Close()

	var records []models.DeviceRecord
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("scan device row: %w", err)
		}

		var dev baseDevice
		if err := json.Unmarshal(blob, &dev); err != nil {
			r.logger.Debug("skipping undecodable device row", zap.Error(err))
			continue
		}
		if dev.Phyname != phyWiFi {
			continue
		}

		records = append(records, r.toRecord(dev))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate devices table: %w", err)
	}

	r.logger.Debug("extracted devices", zap.Int("count", len(records)))
	return records, nil
}

// baseDevice mirrors the slice of the Kismet device JSON the report uses.
type baseDevice struct {
	Phyname      string      `json:"kismet.device.base.phyname"`
	MAC          string      `json:"kismet.device.base.macaddr"`
	Type         string      `json:"kismet.device.base.type"`
	Manuf        string      `json:"kismet.device.base.manuf"`
	Channel      string      `json:"kismet.device.base.channel"`
	FrequencyKHz float64     `json:"kismet.device.base.frequency"`
	FirstTime    int64       `json:"kismet.device.base.first_time"`
	LastTime     int64       `json:"kismet.device.base.last_time"`
	PacketsTotal int64       `json:"kismet.device.base.packets.total"`
	PacketsData  int64       `json:"kismet.device.base.packets.data"`
	DataSize     int64       `json:"kismet.device.base.datasize"`
	Signal       signalInfo  `json:"kismet.device.base.signal"`
	Location     locationMap `json:"kismet.device.base.location"`
	Dot11        dot11Device `json:"dot11.device"`
}

type signalInfo struct {
	Last int `json:"kismet.common.signal.last_signal"`
	Min  int `json:"kismet.common.signal.min_signal"`
	Max  int `json:"kismet.common.signal.max_signal"`
}

type locationMap struct {
	Avg geoLocation `json:"kismet.common.location.avg_loc"`
}

type geoLocation struct {
	// Geopoint is [longitude, latitude].
	Geopoint []float64 `json:"kismet.common.location.geopoint"`
	Alt      *float64  `json:"kismet.common.location.alt"`
}

type dot11Device struct {
	AdvertisedSSIDs []advertisedSSID `json:"dot11.device.advertised_ssid_map"`
	ProbedSSIDs     []probedSSID     `json:"dot11.device.probed_ssid_map"`
}

type advertisedSSID struct {
	SSID     string `json:"dot11.advertisedssid.ssid"`
	CryptSet int64  `json:"dot11.advertisedssid.crypt_set"`
}

type probedSSID struct {
	SSID string `json:"dot11.probedssid.ssid"`
}

// toRecord flattens a decoded device into a report record.
func (r *Reader) toRecord(dev baseDevice) models.DeviceRecord {
	rec := models.DeviceRecord{
		MAC:          dev.MAC,
		SSID:         dev.Dot11.bestSSID(),
		Type:         dev.Type,
		Manufacturer: dev.Manuf,
		Encryption:   dev.Dot11.encryption(),
		FrequencyMHz: frequencyMHz(dev.FrequencyKHz),
		SignalLast:   dev.Signal.Last,
		SignalMin:    dev.Signal.Min,
		SignalMax:    dev.Signal.Max,
		PacketsTotal: dev.PacketsTotal,
		PacketsData:  dev.PacketsData,
		DataBytes:    dev.DataSize,
	}

	if rec.Type == "" {
		rec.Type = "Unknown"
	}
	if rec.Manufacturer == "" {
		rec.Manufacturer = r.vendor.Lookup(dev.MAC)
	}

	rec.Channel = parseChannel(dev.Channel)
	if rec.Channel == 0 {
		rec.Channel = FrequencyToChannel(dev.FrequencyKHz)
	}

	if dev.FirstTime > 0 {
		rec.FirstSeen = time.Unix(dev.FirstTime, 0).Format(timeLayout)
	}
	if dev.LastTime > 0 {
		rec.LastSeen = time.Unix(dev.LastTime, 0).Format(timeLayout)
	}

	if gp := dev.Location.Avg.Geopoint; len(gp) > 1 {
		lon, lat := gp[0], gp[1]
		rec.Longitude = &lon
		rec.Latitude = &lat
	}
	rec.AltitudeM = dev.Location.Avg.Alt

	return rec
}

// bestSSID returns the first non-empty advertised SSID, falling back to the
// first non-empty probed SSID. Empty means the device broadcast no name.
func (d dot11Device) bestSSID() string {
	for _, s := range d.AdvertisedSSIDs {
		if s.SSID != "" {
			return s.SSID
		}
	}
	for _, s := range d.ProbedSSIDs {
		if s.SSID != "" {
			return s.SSID
		}
	}
	return ""
}

// Crypt-set bits in dot11.advertisedssid.crypt_set.
const (
	cryptWEP        = 0x02
	cryptWPA        = 0x04
	cryptWPA2       = 0x08
	cryptWPA3       = 0x10
	cryptPSK        = 0x200
	cryptEnterprise = 0x400
)

// encryption decodes the crypt-set bits of the first advertised SSID into a
// slash-joined descriptor. Devices advertising nothing get no descriptor;
// an advertised network with no crypt bits is Open.
func (d dot11Device) encryption() string {
	if len(d.AdvertisedSSIDs) == 0 {
		return ""
	}
	set := d.AdvertisedSSIDs[0].CryptSet

	var parts []string
	for _, bit := range []struct {
		mask int64
		name string
	}{
		{cryptWEP, "WEP"},
		{cryptWPA, "WPA"},
		{cryptWPA2, "WPA2"},
		{cryptWPA3, "WPA3"},
		{cryptPSK, "PSK"},
		{cryptEnterprise, "Enterprise"},
	} {
		if set&bit.mask != 0 {
			parts = append(parts, bit.name)
		}
	}
	if len(parts) == 0 {
		return "Open"
	}
	return strings.Join(parts, "/")
}

// parseChannel extracts the leading channel number from a Kismet channel
// string. Kismet writes values like "11", "36", "6W5", or "157-6e"; only
// the digits before any width or band suffix count.
func parseChannel(s string) int {
	if s == "" {
		return 0
	}
	s, _, _ = strings.Cut(s, "-")
	s, _, _ = strings.Cut(s, "W")
	if len(s) > 3 {
		s = s[:3]
	}

	ch := 0
	seen := false
	for _, c := range s {
		if c < '0' || c > '9' {
			continue
		}
		ch = ch*10 + int(c-'0')
		seen = true
	}
	if !seen {
		return 0
	}
	return ch
}
