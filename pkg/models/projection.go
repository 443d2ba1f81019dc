package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Decimals encode as JSON numbers, the same as Figure.
	decimal.MarshalJSONWithoutQuotes = true
}

// ProjectionRow is one named line of the projection sheet.
type ProjectionRow struct {
	Name              string `json:"name"`
	ProjectedDollar   Figure `json:"projectedDollar"`
	ProjectedPercent  Figure `json:"projectedPercent"`
	HistoricalDollar  Figure `json:"historicalDollar"`
	HistoricalPercent Figure `json:"historicalPercent"`
}

// ProjectionSheet is the Projection path's outward record. PacGoal is echoed
// back untouched; it takes no part in any calculation.
type ProjectionSheet struct {
	StoreID string          `json:"storeId"`
	Period  string          `json:"period"`
	Source  string          `json:"source,omitempty"` // "current" or "previous"
	PacGoal decimal.Decimal `json:"pacGoal"`
	Rows    []ProjectionRow `json:"rows"`
}

// ProjectionDocument is the persisted form of one store-period: the raw
// projection rows plus the structured input record consumed by the Actual path.
type ProjectionDocument struct {
	ID        string          `json:"id"` // revision id, new on every save
	StoreID   string          `json:"store_id"`
	Period    string          `json:"period"` // YYYYMM
	PacGoal   decimal.Decimal `json:"pacGoal"`
	Rows      []ProjectionRow `json:"rows"`
	Input     *InputRecord    `json:"input,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}
