package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Figure is a projection cell value that is either unset ("no data") or a
// concrete decimal. An unset Figure is distinct from a concrete zero.
//
// JSON: unset encodes as "" (the persisted no-data form) and decodes from "",
// null or a missing field. Concrete values encode as numbers and decode from
// numbers or numeric strings.
type Figure struct {
	value decimal.Decimal
	set   bool
}

// Unset returns a Figure carrying no data.
func Unset() Figure {
	return Figure{}
}

// Value returns a concrete Figure.
func Value(d decimal.Decimal) Figure {
	return Figure{value: d, set: true}
}

// ValueOf is a convenience for literals in tests and fixtures.
func ValueOf(f float64) Figure {
	return Value(decimal.NewFromFloat(f))
}

// IsSet reports whether the Figure holds a concrete value.
func (f Figure) IsSet() bool {
	return f.set
}

// Decimal returns the value and whether it is set.
func (f Figure) Decimal() (decimal.Decimal, bool) {
	return f.value, f.set
}

// OrZero returns the value, or zero when unset.
func (f Figure) OrZero() decimal.Decimal {
	if !f.set {
		return decimal.Zero
	}
	return f.value
}

// Equal treats two unset Figures as equal and compares concrete values numerically.
func (f Figure) Equal(o Figure) bool {
	if f.set != o.set {
		return false
	}
	return !f.set || f.value.Equal(o.value)
}

func (f Figure) String() string {
	if !f.set {
		return "-"
	}
	return f.value.StringFixed(2)
}

func (f Figure) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte(`""`), nil
	}
	return []byte(f.value.String()), nil
}

func (f *Figure) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*f = Unset()
		return nil
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return fmt.Errorf("figure: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			*f = Unset()
			return nil
		}
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return fmt.Errorf("figure: invalid number %q: %w", text, err)
	}
	*f = Value(d)
	return nil
}
