package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp  time.Time
	RunID      string
	Kind       string // "forecast" or "backtest"
	BaseYear   int
	Years      int
	Warnings   int
	CommitHash string
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,run_id,kind,base_year,years,warnings,commit_hash"

const (
	numFields     = 7
	logDir        = "logs"
	logFile       = "logs/run-log.csv"
	colTimestamp  = 0
	colRunID      = 1
	colKind       = 2
	colBaseYear   = 3
	colYears      = 4
	colWarnings   = 5
	colCommitHash = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colKind] = e.Kind
	row[colBaseYear] = strconv.Itoa(e.BaseYear)
	row[colYears] = strconv.Itoa(e.Years)
	row[colWarnings] = strconv.Itoa(e.Warnings)
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	baseYear, err := strconv.Atoi(record[colBaseYear])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing base year %q: %w", record[colBaseYear], err)
	}
	years, err := strconv.Atoi(record[colYears])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing years %q: %w", record[colYears], err)
	}
	warnings, err := strconv.Atoi(record[colWarnings])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing warnings %q: %w", record[colWarnings], err)
	}

	return Entry{
		Timestamp:  ts,
		RunID:      record[colRunID],
		Kind:       record[colKind],
		BaseYear:   baseYear,
		Years:      years,
		Warnings:   warnings,
		CommitHash: record[colCommitHash],
	}, nil
}

// Append writes entries to <workspace>/logs/run-log.csv, creating the file and header if needed.
func Append(workspace string, entries []Entry) error {
	dir := filepath.Join(workspace, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(workspace, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <workspace>/logs/run-log.csv.
// Returns an empty slice if the file does not exist.
func Read(workspace string) ([]Entry, error) {
	path := filepath.Join(workspace, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
