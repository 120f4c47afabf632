// Package classify assigns device records to report categories.
package classify

import (
	"github.com/Liz4rd04/wifi-sort-tool/internal/pattern"
	"github.com/Liz4rd04/wifi-sort-tool/pkg/models"
)

// Outcome is the result of classifying one record. The three report
// categories plus the excluded drop, which is not a report bucket: excluded
// records appear on no sheet at all.
type Outcome int

const (
	// OutcomeClient routes the record to the Client-Named sheet.
	OutcomeClient Outcome = iota
	// OutcomeNonClient routes the record to the Non-Client-Named sheet.
	OutcomeNonClient
	// OutcomeUnknown routes the record to the Unknown Devices sheet.
	OutcomeUnknown
	// OutcomeExcluded drops the record from the report entirely.
	OutcomeExcluded
)

// Classify decides the outcome for a single SSID. Precedence is strict and
// ordering is the load-bearing invariant:
//
//  1. Empty SSID is always unknown, before any pattern is consulted. An
//     `<empty>` rule in the client set can therefore never produce a
//     client match.
//  2. Client match wins over exclude match.
//  3. Exclude match drops the record.
//  4. Everything else is non-client.
//
// exclude may be nil when the operator supplied no exclude file.
func Classify(ssid string, client, exclude *pattern.Set) Outcome {
	if ssid == "" {
		return OutcomeUnknown
	}
	if client.Matches(ssid) {
		return OutcomeClient
	}
	if exclude.Matches(ssid) {
		return OutcomeExcluded
	}
	return OutcomeNonClient
}

// Result is a partition of the input records. Each input record appears in
// exactly one of the four slices, in its original input position relative to
// the other members of its slice.
type Result struct {
	Client    []models.DeviceRecord
	NonClient []models.DeviceRecord
	Unknown   []models.DeviceRecord
	Excluded  []models.DeviceRecord
}

// Category returns the sequence for a report category.
func (r *Result) Category(c models.Category) []models.DeviceRecord {
	switch c {
	case models.CategoryClient:
		return r.Client
	case models.CategoryNonClient:
		return r.NonClient
	case models.CategoryUnknown:
		return r.Unknown
	default:
		return nil
	}
}

// Partition classifies every record, preserving input order within each
// bucket. Pure: no I/O, no mutation of the input slice, same result on
// every run over the same arguments.
func Partition(records []models.DeviceRecord, client, exclude *pattern.Set) Result {
	var r Result
	for _, rec := range records {
		switch Classify(rec.SSID, client, exclude) {
		case OutcomeClient:
			r.Client = append(r.Client, rec)
		case OutcomeNonClient:
			r.NonClient = append(r.NonClient, rec)
		case OutcomeUnknown:
			r.Unknown = append(r.Unknown, rec)
		case OutcomeExcluded:
			r.Excluded = append(r.Excluded, rec)
		}
	}
	return r
}
