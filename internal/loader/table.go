package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/emissions-dashboard/internal/domain"
)

// DefaultHeaderRow is the number of preamble rows before the header in the
// EIA emissions files.
const DefaultHeaderRow = 3

const stateColumn = "State"

// TableSpec describes one wide source table.
type TableSpec struct {
	// Name identifies the table in logs, metrics and errors ("sector", "fuel").
	Name string
	// Object is the file path or object key handed to the Source.
	Object string
	// HeaderRow is the number of records to skip before the header.
	HeaderRow int
	// Categories are required value columns.
	Categories []string
	// PercentColumns may carry a trailing "%". They are optional unless also
	// listed in Categories.
	PercentColumns []string
}

// SectorSpec describes the sector emissions table.
func SectorSpec(object string, headerRow int) TableSpec {
	return TableSpec{
		Name:           "sector",
		Object:         object,
		HeaderRow:      headerRow,
		Categories:     domain.Sectors(),
		PercentColumns: domain.SectorShareColumns(),
	}
}

// FuelSpec describes the fuel emissions table. Fuel cells are percent-tolerant.
func FuelSpec(object string, headerRow int) TableSpec {
	return TableSpec{
		Name:           "fuel",
		Object:         object,
		HeaderRow:      headerRow,
		Categories:     domain.Fuels(),
		PercentColumns: domain.Fuels(),
	}
}

// ReadStats reports what a read kept and dropped.
type ReadStats struct {
	Rows    int
	Skipped int
}

// ReadTable parses a wide CSV table. Rows whose State cell does not resolve
// to a US state are skipped and counted. Empty numeric cells read as 0.
func ReadTable(r io.Reader, spec TableSpec) (domain.WideTable, ReadStats, error) {
	var stats ReadStats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	for i := 0; i < spec.HeaderRow; i++ {
		if _, err := cr.Read(); err != nil {
			return domain.WideTable{}, stats, fmt.Errorf("read %s preamble row %d: %w", spec.Name, i+1, eofAsMissingHeader(err))
		}
	}

	header, err := cr.Read()
	if err != nil {
		return domain.WideTable{}, stats, fmt.Errorf("read %s header: %w", spec.Name, eofAsMissingHeader(err))
	}
	columns := normalizeColumns(header)

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := index[c]; !ok {
			index[c] = i
		}
	}

	stateIdx, ok := index[stateColumn]
	if !ok {
		return domain.WideTable{}, stats, fmt.Errorf("%s table: missing %q column", spec.Name, stateColumn)
	}
	for _, c := range spec.Categories {
		if _, ok := index[c]; !ok {
			return domain.WideTable{}, stats, fmt.Errorf("%s table: missing %q column", spec.Name, c)
		}
	}

	keep := keptColumns(spec, index)
	table := domain.WideTable{Columns: append([]string{stateColumn}, keep...)}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.WideTable{}, stats, fmt.Errorf("read %s table: %w", spec.Name, err)
		}
		line, _ := cr.FieldPos(0)

		state, ok := domain.LookupState(cell(rec, stateIdx))
		if !ok {
			stats.Skipped++
			continue
		}

		values := make(map[string]float64, len(keep))
		for _, c := range keep {
			raw := cell(rec, index[c])
			v, err := parseNumber(raw)
			if err != nil {
				return domain.WideTable{}, stats, fmt.Errorf("%s line %d column %q: %w", spec.Name, line, c, err)
			}
			values[c] = v
		}
		table.Rows = append(table.Rows, domain.WideRow{State: state, Values: values})
		stats.Rows++
	}

	return table, stats, nil
}

// keptColumns is the ordered union of categories and the percent columns
// present in the header.
func keptColumns(spec TableSpec, index map[string]int) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, c := range spec.Categories {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			cols = append(cols, c)
		}
	}
	for _, c := range spec.PercentColumns {
		if _, ok := seen[c]; ok {
			continue
		}
		if _, ok := index[c]; !ok {
			continue
		}
		seen[c] = struct{}{}
		cols = append(cols, c)
	}
	return cols
}

// normalizeColumns strips commas and surrounding whitespace from each header
// cell, then suffixes repeated names with ".1", ".2", ... in order of appearance.
func normalizeColumns(header []string) []string {
	out := make([]string, len(header))
	counts := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimPrefix(h, "\ufeff")
		name = strings.TrimSpace(strings.ReplaceAll(name, ",", ""))
		if n := counts[name]; n > 0 {
			out[i] = name + "." + strconv.Itoa(n)
		} else {
			out[i] = name
		}
		counts[name]++
	}
	return out
}

// parseNumber reads a numeric cell. A trailing "%" and thousands separators
// are dropped; the magnitude is kept as written. Empty and NaN cells are
// missing values and read as 0; infinities are rejected.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", s, err)
	}
	switch {
	case math.IsNaN(v):
		return 0, nil
	case math.IsInf(v, 0):
		return 0, fmt.Errorf("parse number %q: not finite", s)
	}
	return v, nil
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func eofAsMissingHeader(err error) error {
	if errors.Is(err, io.EOF) {
		return errors.New("unexpected end of file before header")
	}
	return err
}
