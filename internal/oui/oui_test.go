package oui

import "testing"

func TestTable_KnownPrefixes(t *testing.T) {
	table := NewTable()

	tests := []struct {
		mac  string
		want string
	}{
		{"B8:27:EB:00:11:22", "Raspberry Pi Foundation"},
		{"DC:A6:32:00:11:22", "Raspberry Pi Trading Ltd"},
		{"F0:9F:C2:AB:CD:EF", "Ubiquiti Inc"},
		{"50:C7:BF:12:34:56", "TP-Link Technologies Co., Ltd."},
	}

	for _, tt := range tests {
		t.Run(tt.mac, func(t *testing.T) {
			got := table.Lookup(tt.mac)
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.mac, got, tt.want)
			}
		})
	}
}

func TestTable_UnknownMAC(t *testing.T) {
	table := NewTable()
	got := table.Lookup("FF:FF:FF:FF:FF:FF")
	if got != "" {
		t.Errorf("Lookup(FF:FF:FF:FF:FF:FF) = %q, want empty", got)
	}
}

func TestTable_Formats(t *testing.T) {
	table := NewTable()

	// All these represent the same OUI prefix.
	formats := []string{
		"B8:27:EB:12:34:56",
		"B8-27-EB-12-34-56",
		"B827EB123456",
		"b827.eb12.3456",
	}
	for _, mac := range formats {
		t.Run(mac, func(t *testing.T) {
			got := table.Lookup(mac)
			if got != "Raspberry Pi Foundation" {
				t.Errorf("Lookup(%q) = %q, want Raspberry Pi Foundation", mac, got)
			}
		})
	}
}

func TestTable_MalformedMAC(t *testing.T) {
	table := NewTable()

	tests := []string{"", "AB", "not-a-mac", "ZZ:ZZ:ZZ:ZZ:ZZ:ZZ"}
	for _, mac := range tests {
		t.Run(mac, func(t *testing.T) {
			got := table.Lookup(mac)
			if got != "" {
				t.Errorf("Lookup(%q) = %q, want empty for malformed MAC", mac, got)
			}
		})
	}
}

func TestNormalizeMAC(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aa:bb:cc:dd:ee:ff", "AA:BB:CC"},
		{"AA-BB-CC-DD-EE-FF", "AA:BB:CC"},
		{"aabbccddeeff", "AA:BB:CC"},
		{"aabb.ccdd.eeff", "AA:BB:CC"},
		{"aabbcc", "AA:BB:CC"},
		{"aabb", ""},
		{"", ""},
		{"gg:hh:ii:jj:kk:ll", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalizeMAC(tt.in); got != tt.want {
				t.Errorf("normalizeMAC(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
