// Package storage reads and writes record snapshots as JSON and CSV files.
package storage

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"jobtagger/common/models"
)

// LoadJSON reads a JSON array of records from path.
func LoadJSON(path string) ([]models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	records, err := models.DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, nil
}

// SaveJSON writes records as an indented JSON array, creating parent
// directories as needed.
func SaveJSON(records []models.Record, path string) error {
	if records == nil {
		records = []models.Record{}
	}

	return writeFile(path, func(w *bufio.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(records)
	})
}

// SaveCSV writes one row per record. The header is the sorted union of all
// keys; a record missing a key gets an empty cell. Nothing is written for an
// empty batch.
func SaveCSV(records []models.Record, path string) error {
	if len(records) == 0 {
		return nil
	}

	header := Columns(records)
	return writeFile(path, func(w *bufio.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return err
		}

		row := make([]string, len(header))
		for _, r := range records {
			for i, col := range header {
				row[i] = r.String(col)
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}

		cw.Flush()
		return cw.Error()
	})
}

// Columns returns the sorted union of keys across records.
func Columns(records []models.Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r {
			seen[k] = struct{}{}
		}
	}

	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func writeFile(path string, write func(w *bufio.Writer) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
