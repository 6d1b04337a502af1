// Package export writes the NCBI submission tables. Output is
// tab-separated text with optional leading comment lines, written
// through a temp file so a failed run never leaves a half-written
// table behind.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Table is one submission table ready to be written.
type Table struct {
	// Comments are emitted verbatim before the header, one line each
	// (the MIMARKS template preamble for BioSample output).
	Comments []string
	Columns  []string
	Rows     [][]string
}

// Stats holds export statistics.
type Stats struct {
	Rows     int
	Columns  int
	Duration time.Duration
}

// Exporter writes tables under a common output configuration.
type Exporter struct {
	stats Stats
}

// NewExporter creates a new exporter instance.
func NewExporter() *Exporter {
	return &Exporter{}
}

// Stats returns the statistics of the last write.
func (e *Exporter) Stats() Stats {
	return e.stats
}

// WriteTSV writes a table to path. The parent directory is created,
// and the write goes through path+".tmp" followed by a rename.
func (e *Exporter) WriteTSV(t *Table, path string) (Stats, error) {
	start := time.Now()

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Stats{}, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	var b strings.Builder
	for _, line := range t.Comments {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(t.Columns, "\t"))
	b.WriteString("\n")
	for _, row := range t.Rows {
		b.WriteString(strings.Join(padRow(row, len(t.Columns)), "\t"))
		b.WriteString("\n")
	}

	tempPath := path + ".tmp"
	os.Remove(tempPath)
	if err := os.WriteFile(tempPath, []byte(b.String()), 0644); err != nil {
		return Stats{}, fmt.Errorf("failed to write output file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return Stats{}, fmt.Errorf("failed to finalize output file: %w", err)
	}

	e.stats = Stats{
		Rows:     len(t.Rows),
		Columns:  len(t.Columns),
		Duration: time.Since(start),
	}
	return e.stats, nil
}

// padRow extends short rows with empty cells so every line carries
// the full column count.
func padRow(row []string, n int) []string {
	if len(row) >= n {
		return row[:n]
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
