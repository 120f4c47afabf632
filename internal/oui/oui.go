// Package oui resolves MAC address prefixes to manufacturer names.
package oui

import (
	"bufio"
	"bytes"
	_ "embed"
	"strings"
	"sync"
)

//go:embed oui_data.txt
var ouiRawData []byte

// Table provides MAC address prefix to manufacturer lookup. The embedded
// data loads lazily on first use.
type Table struct {
	once  sync.Once
	table map[string]string
}

// NewTable creates a new OUI lookup table.
func NewTable() *Table {
	return &Table{}
}

// Lookup returns the manufacturer for a given MAC address. The MAC can be
// in any common format (AA:BB:CC:DD:EE:FF, AA-BB-CC-DD-EE-FF, AABBCCDDEEFF,
// aabb.ccdd.eeff). Returns empty string if not found.
func (t *Table) Lookup(mac string) string {
	t.once.Do(t.load)

	prefix := normalizeMAC(mac)
	if prefix == "" {
		return ""
	}
	return t.table[prefix]
}

// load parses the embedded tab-separated prefix/vendor data.
func (t *Table) load() {
	t.table = make(map[string]string, 256)
	scanner := bufio.NewScanner(bytes.NewReader(ouiRawData))
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), "\t", 2)
		if len(parts) != 2 {
			continue
		}
		prefix := strings.ToUpper(strings.TrimSpace(parts[0]))
		vendor := strings.TrimSpace(parts[1])
		if prefix != "" && vendor != "" {
			t.table[prefix] = vendor
		}
	}
}

// normalizeMAC extracts the first 3 octets from a MAC address and returns
// them in uppercase colon-separated format (e.g., "AA:BB:CC").
func normalizeMAC(mac string) string {
	mac = strings.ToUpper(mac)
	mac = strings.ReplaceAll(mac, ":", "")
	mac = strings.ReplaceAll(mac, "-", "")
	mac = strings.ReplaceAll(mac, ".", "")

	if len(mac) < 6 {
		return ""
	}
	for _, c := range mac[:6] {
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return ""
		}
	}

	return mac[0:2] + ":" + mac[2:4] + ":" + mac[4:6]
}
