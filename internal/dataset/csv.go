package dataset

import (
	"compress/bzip2"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// Columns the analysis needs; the archive carries 37, the rest are ignored.
const (
	colEventType  = "EVTYPE"
	colState      = "STATE"
	colBeginDate  = "BGN_DATE"
	colFatalities = "FATALITIES"
	colInjuries   = "INJURIES"
	colPropDamage = "PROPDMG"
	colPropExp    = "PROPDMGEXP"
	colCropDamage = "CROPDMG"
	colCropExp    = "CROPDMGEXP"
)

var requiredColumns = []string{
	colEventType, colState, colBeginDate, colFatalities, colInjuries,
	colPropDamage, colPropExp, colCropDamage, colCropExp,
}

// ParseResult is the outcome of parsing the raw archive.
type ParseResult struct {
	Records []domain.RawRecord
	Skipped int // malformed rows dropped
}

// ParseArchive opens a Storm Events archive and parses it into raw records.
// Files ending in .bz2 are decompressed on the fly.
func ParseArchive(path string) (ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		r = bzip2.NewReader(f)
	}
	return Parse(r)
}

// Parse reads Storm Events CSV rows into raw records. The first row must be
// a header containing every required column. Malformed data rows are counted
// and skipped, never fatal; numeric fields parse leniently with garbage
// treated as zero, matching the rest of the cleaning policy.
func Parse(r io.Reader) (ParseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row width varies in older years
	cr.LazyQuotes = true    // remarks contain stray quotes

	header, err := cr.Read()
	if err != nil {
		return ParseResult{}, fmt.Errorf("read header: %w", err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return ParseResult{}, err
	}

	var result ParseResult
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}

		rec, ok := rowToRecord(row, index)
		if !ok {
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, rec)
	}

	return result, nil
}

// columnIndex maps required column names to their position in the header.
func columnIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.ToUpper(strings.TrimSpace(name))] = i
	}

	index := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		pos, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("archive header missing column %s", name)
		}
		index[name] = pos
	}
	return index, nil
}

// rowToRecord extracts the relevant fields from one CSV row. Returns false
// when the row is too short to hold every required column.
func rowToRecord(row []string, index map[string]int) (domain.RawRecord, bool) {
	for _, pos := range index {
		if pos >= len(row) {
			return domain.RawRecord{}, false
		}
	}

	return domain.RawRecord{
		EventType:     strings.TrimSpace(row[index[colEventType]]),
		State:         strings.TrimSpace(row[index[colState]]),
		BeginDate:     strings.TrimSpace(row[index[colBeginDate]]),
		Fatalities:    parseIntOrZero(row[index[colFatalities]]),
		Injuries:      parseIntOrZero(row[index[colInjuries]]),
		PropDamage:    parseFloatOrZero(row[index[colPropDamage]]),
		PropDamageExp: strings.TrimSpace(row[index[colPropExp]]),
		CropDamage:    parseFloatOrZero(row[index[colCropDamage]]),
		CropDamageExp: strings.TrimSpace(row[index[colCropExp]]),
	}, true
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseIntOrZero parses a count column, tolerating the float formatting
// ("0.00") the archive uses for integer counts.
func parseIntOrZero(s string) int {
	return int(parseFloatOrZero(s))
}
