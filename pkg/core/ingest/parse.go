package ingest

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"pacpro/pkg/models"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/shopspring/decimal"
	hjson "github.com/hjson/hjson-go/v4"
)

// ParseInputRecord decodes an input record written by hand or exported from a
// spreadsheet macro. It tries, in order:
// 1. Standard JSON
// 2. Hjson (comments, unquoted keys and strings, optional commas)
// 3. JSON repair (truncated or fenced output), kept only when every number
//    survives the repair unchanged
func ParseInputRecord(data []byte) (models.InputRecord, error) {
	var in models.InputRecord
	if err := smartParse(string(data), &in); err != nil {
		return models.InputRecord{}, fmt.Errorf("parse input record: %w", err)
	}
	return in, nil
}

// ParseRows decodes a projection row list with the same lenient ladder.
// A bare array and an object with a "rows" field are both accepted.
func ParseRows(data []byte) ([]models.ProjectionRow, error) {
	var rows []models.ProjectionRow
	if strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
		if err := smartParse(string(data), &rows); err != nil {
			return nil, fmt.Errorf("parse projection rows: %w", err)
		}
		return rows, nil
	}

	var wrapped struct {
		Rows []models.ProjectionRow `json:"rows"`
	}
	if err := smartParse(string(data), &wrapped); err != nil {
		return nil, fmt.Errorf("parse projection rows: %w", err)
	}
	return wrapped.Rows, nil
}

func smartParse(input string, v interface{}) error {
	// Try 1: Standard JSON
	if err := json.Unmarshal([]byte(input), v); err == nil {
		return nil
	}

	// Try 2: Hjson, re-encoded so decimal fields keep their exact digits
	normalized, hjsonErr := hjsonToJSON(input)
	if hjsonErr == nil {
		err := json.Unmarshal(normalized, v)
		if err == nil {
			return nil
		}
		hjsonErr = fmt.Errorf("HJSON_DECODE_ERROR: %v", err)
	}

	// Try 3: JSON Repair. It re-encodes numbers through float32, so any
	// repair that alters a number is refused.
	repaired, err := jsonrepair.RepairJSON(input)
	if err != nil {
		return hjsonErr
	}
	if !sameNumbers(input, repaired) {
		return fmt.Errorf("REPAIR_REJECTED: repair changed numeric values: %v", hjsonErr)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("REPAIR_DECODE_ERROR: %v", err)
	}
	return nil
}

var numberToken = regexp.MustCompile(`-?\b\d+(?:\.\d+)?(?:[eE][+-]?\d+)?\b`)

// sameNumbers reports whether a and b hold the same numeric tokens by value,
// ignoring order.
func sameNumbers(a, b string) bool {
	x, ok := numbers(a)
	if !ok {
		return false
	}
	y, ok := numbers(b)
	if !ok || len(x) != len(y) {
		return false
	}
	for i := range x {
		if !x[i].Equal(y[i]) {
			return false
		}
	}
	return true
}

func numbers(s string) ([]decimal.Decimal, bool) {
	tokens := numberToken.FindAllString(s, -1)
	out := make([]decimal.Decimal, 0, len(tokens))
	for _, tok := range tokens {
		d, err := decimal.NewFromString(tok)
		if err != nil {
			return nil, false
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return out, true
}

func hjsonToJSON(input string) ([]byte, error) {
	opts := hjson.DefaultDecoderOptions()
	opts.UseJSONNumber = true

	var generic interface{}
	if err := hjson.UnmarshalWithOptions([]byte(input), &generic, opts); err != nil {
		return nil, fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}
	out, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	return out, nil
}
