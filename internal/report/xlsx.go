// Package report renders classified device records as a formatted XLSX
// workbook with one sheet per category.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Liz4rd04/wifi-sort-tool/internal/classify"
	"github.com/Liz4rd04/wifi-sort-tool/pkg/models"
)

// Sheet titles, in workbook order.
const (
	SheetClient    = "Client-Named"
	SheetNonClient = "Non-Client-Named"
	SheetUnknown   = "Unknown Devices"
)

const (
	headerFillColor = "4472C4"
	headerFontColor = "FFFFFF"
	maxColumnWidth  = 30
	// widthSampleRows caps how many rows feed column sizing.
	widthSampleRows = 100
)

// headers returns the column headers, in sheet order.
func headers() []string {
	return []string{
		"MAC", "SSID", "Type", "Manufacturer", "Encryption",
		"Channel", "Frequency_MHz", "RSSI_Last", "RSSI_Min", "RSSI_Max",
		"Packets_Total", "Packets_Data", "Data_Size_Bytes",
		"First_Seen", "Last_Seen", "Latitude", "Longitude", "Altitude_m",
	}
}

// recordToRow converts a device record to cell values (matching headers
// order). Optional fields become nil so their cells stay empty.
func recordToRow(d models.DeviceRecord) []any {
	row := []any{
		d.MAC,
		d.SSID,
		d.Type,
		d.Manufacturer,
		d.Encryption,
		nilIfZero(d.Channel),
		nilIfZeroF(d.FrequencyMHz),
		d.SignalLast,
		d.SignalMin,
		d.SignalMax,
		d.PacketsTotal,
		d.PacketsData,
		d.DataBytes,
		d.FirstSeen,
		d.LastSeen,
		nil, nil, nil,
	}
	if d.Latitude != nil {
		row[15] = *d.Latitude
	}
	if d.Longitude != nil {
		row[16] = *d.Longitude
	}
	if d.AltitudeM != nil {
		row[17] = *d.AltitudeM
	}
	return row
}

func nilIfZero(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nilIfZeroF(v float64) any {
	if v == 0 {
		return nil
	}
	return v
}

// Write renders the partition result to an XLSX file at path.
func Write(path string, result classify.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name    string
		records []models.DeviceRecord
	}{
		{SheetClient, result.Client},
		{SheetNonClient, result.NonClient},
		{SheetUnknown, result.Unknown},
	}

	// The new workbook starts with a single default sheet; rename it for
	// the first category and create the rest.
	if err := f.SetSheetName("Sheet1", sheets[0].name); err != nil {
		return fmt.Errorf("rename first sheet: %w", err)
	}
	for _, s := range sheets[1:] {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet %q: %w", s.name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFillColor}},
		Font:      &excelize.Font{Bold: true, Color: headerFontColor},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.records, headerStyle); err != nil {
			return fmt.Errorf("write sheet %q: %w", s.name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %q: %w", path, err)
	}
	return nil
}

// writeSheet fills one sheet with a styled header row and the category's
// records in input order. An empty category gets a placeholder cell.
func writeSheet(f *excelize.File, sheet string, records []models.DeviceRecord, headerStyle int) error {
	if len(records) == 0 {
		return f.SetCellValue(sheet, "A1", "No matching entries")
	}

	cols := headers()
	for i, h := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(cols), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	widths := make([]int, len(cols))
	for i, h := range cols {
		widths[i] = len(h)
	}

	for rowIdx, rec := range records {
		row := recordToRow(rec)
		for colIdx, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			if rowIdx < widthSampleRows {
				if l := len(fmt.Sprint(v)); l > widths[colIdx] {
					widths[colIdx] = l
				}
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := w + 2
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		if err := f.SetColWidth(sheet, col, col, float64(width)); err != nil {
			return err
		}
	}
	return nil
}
