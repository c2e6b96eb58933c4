// =============================================================================
// Compute Sales - JSON Document Loader
// =============================================================================
//
// This module loads the two input documents: the product price catalogue and
// the sales record. Both must be JSON files whose top-level value is an array
// of objects. Anything that prevents the document from being loaded is a
// fatal condition for the whole run:
//   - file not found / permission denied / other I/O failure
//   - malformed JSON
//   - a top-level value that is not an array
//
// Field values inside the records are loosely typed (a price may arrive as a
// number or a string, a sale identifier as a number or a string), so records
// are surfaced as generic maps and the typed extraction happens downstream in
// the catalogue and sales packages.
//
// =============================================================================

package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// =============================================================================
// RECORD TYPE
// =============================================================================

// Record is one loosely typed JSON object from an input document.
// A nil Record stands in for an array element that was not an object; it
// fails every field lookup and is skipped by the downstream validation
// chains like any other invalid record.
type Record map[string]any

// Field returns the value for key and whether it is present. A JSON null is
// treated as absent: documents that carry an explicit null for a field get
// the same skip behavior as documents that omit the field entirely.
func (r Record) Field(key string) (any, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrNotArray reports a document whose top-level JSON value is not an array.
var ErrNotArray = errors.New("top-level JSON value is not an array")

// =============================================================================
// DOCUMENT LOADING
// =============================================================================

// LoadDocument reads a JSON file containing a top-level array of objects.
//
// PARAMETERS:
//   - path: The path to the JSON file.
//
// RETURNS:
//   - The array elements as Records (nil for non-object elements).
//   - An error for any of the fatal load conditions.
func LoadDocument(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("file %s contains invalid JSON: %w", path, err)
	}

	arr, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, ErrNotArray)
	}

	records := make([]Record, len(arr))
	for i, el := range arr {
		if obj, ok := el.(map[string]any); ok {
			records[i] = Record(obj)
		}
	}

	return records, nil
}

// =============================================================================
// SCALAR RENDERING
// =============================================================================

// ScalarString renders a scalar JSON value as a string. Titles, product
// names, sale identifiers and dates all pass through here so that a numeric
// identifier in one document matches the same identifier spelled as a string
// in another. Non-scalar values (objects, arrays) report false.
func ScalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		// encoding/json decodes every JSON number as float64. Render
		// without a trailing ".0" so the identifier 1 displays as "1".
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		if t {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}
