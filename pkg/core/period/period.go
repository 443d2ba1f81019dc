// Package period validates and navigates the YYYYMM reporting periods that key
// every store-month document.
package period

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	MinYear = 2000
	MaxYear = 2100
)

// ErrMalformedPeriod is returned for anything that is not a YYYYMM string with
// a year in [MinYear, MaxYear] and a month in 1..12.
var ErrMalformedPeriod = errors.New("invalid yearMonth format. Expected YYYYMM (e.g., 202501)")

// Period is one reporting month.
type Period struct {
	Year  int
	Month int // 1..12
}

// Parse validates a YYYYMM string.
func Parse(s string) (Period, error) {
	if len(s) != 6 {
		return Period{}, fmt.Errorf("%q: %w", s, ErrMalformedPeriod)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return Period{}, fmt.Errorf("%q: %w", s, ErrMalformedPeriod)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Period{}, fmt.Errorf("%q: %w", s, ErrMalformedPeriod)
	}
	p := Period{Year: n / 100, Month: n % 100}
	if !p.Valid() {
		return Period{}, fmt.Errorf("%q: %w", s, ErrMalformedPeriod)
	}
	return p, nil
}

// Valid reports whether the period lies inside the accepted range.
func (p Period) Valid() bool {
	return p.Year >= MinYear && p.Year <= MaxYear && p.Month >= 1 && p.Month <= 12
}

// String renders the period as YYYYMM.
func (p Period) String() string {
	return fmt.Sprintf("%04d%02d", p.Year, p.Month)
}

// Prev returns the preceding month; January rolls back to December of the prior year.
func (p Period) Prev() Period {
	if p.Month <= 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// DocumentID is the storage key shared by every backend: "<storeID>_<YYYYMM>".
func DocumentID(storeID string, p Period) string {
	return storeID + "_" + p.String()
}
