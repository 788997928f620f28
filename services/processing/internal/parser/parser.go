// Package parser decodes raw job messages published by the ingestion service.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"jobtagger/common/errors"
	"jobtagger/common/models"
)

// ParseRawRecords decodes a message holding either one JSON object or an
// array of them. Null array entries are dropped.
func ParseRawRecords(data []byte) ([]models.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.InvalidInput("empty message", nil)
	}

	if trimmed[0] == '[' {
		records, err := models.DecodeRecords(trimmed)
		if err != nil {
			return nil, errors.InvalidInput("malformed record array", err)
		}
		out := records[:0]
		for _, r := range records {
			if r != nil {
				out = append(out, r)
			}
		}
		return out, nil
	}

	record, err := models.DecodeRecord(trimmed)
	if err != nil {
		return nil, errors.InvalidInput("malformed record", err)
	}
	return []models.Record{record}, nil
}

// SplitRaw re-encodes each record so it can be stored next to its row.
func SplitRaw(records []models.Record) ([][]byte, error) {
	out := make([][]byte, len(records))
	for i, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("encode record %s: %w", r.ID(), err)
		}
		out[i] = data
	}
	return out, nil
}
