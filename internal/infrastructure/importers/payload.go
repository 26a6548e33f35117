// Package importers contains the platform adapters implementing the
// orders.Importer port. Each adapter maps one platform's raw payload
// shape onto the canonical order model; shared helpers in this file
// extract fields from loosely typed payloads defensively, surfacing a
// MalformedPayloadError instead of a generic type error.
package importers

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tectle/backend/internal/domain/orders"
)

// requireString extracts a non-empty string field.
func requireString(platform string, m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", orders.NewMalformedPayloadError(platform, key, "required field is missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("expected string, got %T", v))
	}
	if strings.TrimSpace(s) == "" {
		return "", orders.NewMalformedPayloadError(platform, key, "field is empty")
	}
	return s, nil
}

// optionalString extracts a string field, returning "" when the field is
// absent, nil, or not a string.
func optionalString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// requireStringID extracts an identifier that platforms encode either as
// a string or as a number; numeric IDs are normalized to string form.
func requireStringID(platform string, m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", orders.NewMalformedPayloadError(platform, key, "required field is missing")
	}
	switch id := v.(type) {
	case string:
		if strings.TrimSpace(id) == "" {
			return "", orders.NewMalformedPayloadError(platform, key, "field is empty")
		}
		return id, nil
	case json.Number:
		return id.String(), nil
	case float64:
		if id != math.Trunc(id) {
			return "", orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("expected integral identifier, got %v", id))
		}
		return strconv.FormatInt(int64(id), 10), nil
	case int:
		return strconv.Itoa(id), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	default:
		return "", orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("expected string or number, got %T", v))
	}
}

// requireInt extracts an integer field. JSON decoding yields float64 for
// all numbers, so integral floats are accepted.
func requireInt(platform string, m map[string]any, key string) (int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, orders.NewMalformedPayloadError(platform, key, "required field is missing")
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("expected integer, got %v", n))
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		parsed, err := n.Int64()
		if err != nil {
			return 0, orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("expected integer, got %q", n.String()))
		}
		return int(parsed), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("expected integer, got %q", n))
		}
		return parsed, nil
	default:
		return 0, orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("expected integer, got %T", v))
	}
}

// requireDecimal extracts a decimal amount. Platforms ship prices as
// decimal strings; numeric values are accepted too.
func requireDecimal(platform string, m map[string]any, key string) (decimal.Decimal, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return decimal.Zero, orders.NewMalformedPayloadError(platform, key, "required field is missing")
	}
	switch amount := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			return decimal.Zero, orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("invalid decimal %q", amount))
		}
		return d, nil
	case json.Number:
		d, err := decimal.NewFromString(amount.String())
		if err != nil {
			return decimal.Zero, orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("invalid decimal %q", amount.String()))
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(amount), nil
	case int:
		return decimal.NewFromInt(int64(amount)), nil
	case int64:
		return decimal.NewFromInt(amount), nil
	default:
		return decimal.Zero, orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("expected decimal string or number, got %T", v))
	}
}

// optionalMap extracts a nested record, returning nil when the field is
// absent or not a record.
func optionalMap(m map[string]any, key string) map[string]any {
	if child, ok := m[key].(map[string]any); ok {
		return child
	}
	return nil
}

// listField extracts a sequence field. An absent field yields an empty
// sequence; a present field of the wrong shape is malformed.
func listField(platform string, m map[string]any, key string) ([]any, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("expected sequence, got %T", v))
	}
	return list, nil
}

// entryMap asserts one sequence entry is a record.
func entryMap(platform, key string, index int, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, orders.NewMalformedPayloadError(platform, key,
			fmt.Sprintf("entry %d: expected record, got %T", index, v))
	}
	return m, nil
}

// epochSeconds extracts a Unix-epoch timestamp (number or digit string)
// and normalizes it to UTC.
func epochSeconds(platform string, m map[string]any, key string) (time.Time, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return time.Time{}, orders.NewMalformedPayloadError(platform, key, "required field is missing")
	}
	switch ts := v.(type) {
	case float64:
		return time.Unix(int64(ts), 0).UTC(), nil
	case int:
		return time.Unix(int64(ts), 0).UTC(), nil
	case int64:
		return time.Unix(ts, 0).UTC(), nil
	case json.Number:
		parsed, err := ts.Int64()
		if err != nil {
			return time.Time{}, orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("invalid epoch timestamp %q", ts.String()))
		}
		return time.Unix(parsed, 0).UTC(), nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(ts), 10, 64)
		if err != nil {
			return time.Time{}, orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("invalid epoch timestamp %q", ts))
		}
		return time.Unix(parsed, 0).UTC(), nil
	default:
		return time.Time{}, orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("expected epoch seconds, got %T", v))
	}
}

// isoTime extracts an ISO-8601 timestamp string.
func isoTime(platform string, m map[string]any, key string) (time.Time, error) {
	s, err := requireString(platform, m, key)
	if err != nil {
		return time.Time{}, err
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	// Some exports omit the zone offset; treat those instants as UTC.
	if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, orders.NewMalformedPayloadError(platform, key, fmt.Sprintf("invalid ISO-8601 timestamp %q", s))
}
