package report

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Liz4rd04/wifi-sort-tool/internal/classify"
	"github.com/Liz4rd04/wifi-sort-tool/internal/testutil"
	"github.com/Liz4rd04/wifi-sort-tool/pkg/models"
)

func writeAndReopen(t *testing.T, result classify.Result) *excelize.File {
	t.Helper()

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Write(path, result))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWrite_SheetLayout(t *testing.T) {
	result := classify.Result{
		Client:    []models.DeviceRecord{testutil.NewRecord(testutil.WithSSID("ssid Guest"))},
		NonClient: []models.DeviceRecord{testutil.NewRecord(testutil.WithSSID("Other"))},
		Unknown:   []models.DeviceRecord{testutil.NewRecord(testutil.WithSSID(""))},
	}

	f := writeAndReopen(t, result)

	want := []string{SheetClient, SheetNonClient, SheetUnknown}
	got := f.GetSheetList()
	require.Equal(t, want, got)
}

func TestWrite_HeaderAndRows(t *testing.T) {
	rec := testutil.NewRecord(
		testutil.WithSSID("HomeNet"),
		testutil.WithMAC("AA:BB:CC:DD:EE:FF"),
		testutil.WithLocation(40.7128, -74.006),
	)
	result := classify.Result{Client: []models.DeviceRecord{rec}}

	f := writeAndReopen(t, result)

	tests := []struct {
		cell string
		want string
	}{
		{"A1", "MAC"},
		{"B1", "SSID"},
		{"R1", "Altitude_m"},
		{"A2", "AA:BB:CC:DD:EE:FF"},
		{"B2", "HomeNet"},
		{"E2", "WPA2/PSK"},
		{"F2", "6"},
		{"P2", "40.7128"},
		{"Q2", "-74.006"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(SheetClient, tt.cell)
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("%s!%s = %q, want %q", SheetClient, tt.cell, got, tt.want)
		}
	}
}

func TestWrite_EmptyCategoryPlaceholder(t *testing.T) {
	result := classify.Result{
		Client: []models.DeviceRecord{testutil.NewRecord()},
	}

	f := writeAndReopen(t, result)

	for _, sheet := range []string{SheetNonClient, SheetUnknown} {
		got, err := f.GetCellValue(sheet, "A1")
		require.NoError(t, err)
		if got != "No matching entries" {
			t.Errorf("%s!A1 = %q, want placeholder", sheet, got)
		}
	}
}

func TestWrite_PreservesRowOrder(t *testing.T) {
	result := classify.Result{
		NonClient: []models.DeviceRecord{
			testutil.NewRecord(testutil.WithSSID("first")),
			testutil.NewRecord(testutil.WithSSID("second")),
			testutil.NewRecord(testutil.WithSSID("third")),
		},
	}

	f := writeAndReopen(t, result)

	for i, want := range []string{"first", "second", "third"} {
		cell, err := excelize.CoordinatesToCellName(2, i+2)
		require.NoError(t, err)
		got, err := f.GetCellValue(SheetNonClient, cell)
		require.NoError(t, err)
		if got != want {
			t.Errorf("row %d SSID = %q, want %q", i+2, got, want)
		}
	}
}

func TestRecordToRow_MatchesHeaders(t *testing.T) {
	row := recordToRow(testutil.NewRecord())
	if len(row) != len(headers()) {
		t.Fatalf("row has %d cells, want %d", len(row), len(headers()))
	}
}
