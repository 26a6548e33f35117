// Package sampledata ships example order payloads used to seed the
// dashboard in development.
package sampledata

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tectle/backend/internal/domain/orders"
)

//go:embed payloads.json
var payloads []byte

// Batches returns the bundled example payloads grouped by platform key.
func Batches() (map[string][]orders.RawPayload, error) {
	var batches map[string][]orders.RawPayload
	if err := json.Unmarshal(payloads, &batches); err != nil {
		return nil, fmt.Errorf("sampledata: decoding bundled payloads: %w", err)
	}
	return batches, nil
}

// BatchesFromFile reads per-platform payload batches from a JSON file in
// the same shape as the bundled sample data.
func BatchesFromFile(path string) (map[string][]orders.RawPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sampledata: reading %s: %w", path, err)
	}
	var batches map[string][]orders.RawPayload
	if err := json.Unmarshal(data, &batches); err != nil {
		return nil, fmt.Errorf("sampledata: decoding %s: %w", path, err)
	}
	return batches, nil
}
