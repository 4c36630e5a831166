package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Statement CSVs are laid out with line items as rows and fiscal years as
// columns:
//
//	line_item,2022,2023,2024
//	Revenue,1000,1100,1210
//	Cost Of Goods Sold,600,660,726
//
// Year headers may be bare years or full fiscal-year-end dates
// (2024-12-31); only the year component is kept. Empty cells are treated
// as absent, not zero.

// statementTable holds one parsed statement file keyed by normalized line
// item, then by fiscal year.
type statementTable map[string]map[int]decimal.Decimal

// readStatement parses a single statement CSV from r.
func readStatement(r io.Reader) (statementTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("header needs a line item column and at least one year")
	}

	years := make([]int, len(header)-1)
	for i, h := range header[1:] {
		y, err := parseYearHeader(h)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+2, err)
		}
		years[i] = y
	}

	table := statementTable{}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line+1, err)
		}
		line++
		if len(record) == 0 || strings.TrimSpace(record[0]) == "" {
			continue
		}
		key := normalizeLineItem(record[0])
		values := map[int]decimal.Decimal{}
		for i, cell := range record[1:] {
			if i >= len(years) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := decimal.NewFromString(strings.ReplaceAll(cell, ",", ""))
			if err != nil {
				return nil, fmt.Errorf("line %d (%s), year %d: %w", line, record[0], years[i], err)
			}
			values[years[i]] = v
		}
		table[key] = values
	}
	return table, nil
}

// readStatementFile parses the statement CSV at path.
func readStatementFile(path string) (statementTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := readStatement(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return table, nil
}

func parseYearHeader(h string) (int, error) {
	h = strings.TrimSpace(h)
	if i := strings.IndexAny(h, "-/"); i > 0 {
		h = h[:i]
	}
	y, err := strconv.Atoi(h)
	if err != nil || y < 1900 || y > 2200 {
		return 0, fmt.Errorf("invalid fiscal year header %q", h)
	}
	return y, nil
}

// normalizeLineItem lowercases and strips spacing so that "Cost Of Goods
// Sold", "cost of goods sold" and "CostOfGoodsSold" all match.
func normalizeLineItem(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}

func (t statementTable) years() map[int]struct{} {
	set := map[int]struct{}{}
	for _, values := range t {
		for y := range values {
			set[y] = struct{}{}
		}
	}
	return set
}

// lookup returns the first matching alias for year y.
func (t statementTable) lookup(year int, aliases []string) (decimal.Decimal, bool) {
	for _, a := range aliases {
		if values, ok := t[a]; ok {
			if v, ok := values[year]; ok {
				return v, true
			}
		}
	}
	return decimal.Zero, false
}
