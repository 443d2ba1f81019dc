// Package actual serves the Actual (P.A.C.) report built from stored inputs.
package actual

import (
	"fmt"
	"io"
	"net/http"

	"pacpro/pkg/api/httputil"
	"pacpro/pkg/core/calc"
	"pacpro/pkg/core/config"
	"pacpro/pkg/core/export"
	"pacpro/pkg/core/ingest"
	"pacpro/pkg/core/metrics"
	"pacpro/pkg/core/pac"
	"pacpro/pkg/core/period"
	"pacpro/pkg/core/projection"
	"pacpro/pkg/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxBodyBytes caps input record request bodies.
const maxBodyBytes = 1 << 20

// Response is the body of GET /api/pac/{store}/{period}.
type Response struct {
	StoreID  string                   `json:"storeId"`
	Period   string                   `json:"period"`
	Result   models.CalculationResult `json:"result"`
	Warnings []string                 `json:"warnings,omitempty"`
}

// Handler holds dependencies for the Actual endpoints
type Handler struct {
	Repo     projection.Repository
	Settings *config.Settings
}

// NewHandler creates a new Actual handler
func NewHandler(repo projection.Repository, settings *config.Settings) *Handler {
	return &Handler{Repo: repo, Settings: settings}
}

// Register mounts the Actual routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("/api/pac/calculate", metrics.Instrument("pac_calculate", http.HandlerFunc(h.HandleCalculate)))
	mux.Handle("/api/pac/{store}/{period}", metrics.Instrument("pac_report", http.HandlerFunc(h.HandleReport)))
	mux.Handle("/api/pac/{store}/{period}/input", metrics.Instrument("pac_input", http.HandlerFunc(h.HandleInput)))
	mux.Handle("/api/pac/{store}/{period}/export", metrics.Instrument("pac_export", http.HandlerFunc(h.HandleExport)))
}

// HandleReport computes the Actual report for a stored store-period.
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if !httputil.CORS(w, r, http.MethodGet) {
		return
	}
	storeID, p, ok := httputil.PathParams(w, r)
	if !ok {
		return
	}

	doc, ok := h.load(w, r, storeID, p)
	if !ok {
		return
	}
	result, warnings := h.calculate(ingest.DeriveInput(doc))
	fmt.Printf("[PAC] %s/%s product sales %s, P.A.C. %s (%s%%)\n",
		storeID, p, result.ProductNetSales.StringFixed(2), result.BottomLineDollars.StringFixed(2), result.BottomLinePercent.StringFixed(2))

	httputil.WriteJSON(w, Response{StoreID: storeID, Period: p.String(), Result: result, Warnings: warnings})
}

// HandleInput returns the input record the report is computed from on GET.
// POST stores a structured input record for the period and returns the
// recomputed report. Stored projection rows are kept.
func (h *Handler) HandleInput(w http.ResponseWriter, r *http.Request) {
	if !httputil.CORS(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	storeID, p, ok := httputil.PathParams(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		doc, ok := h.load(w, r, storeID, p)
		if !ok {
			return
		}
		httputil.WriteJSON(w, ingest.DeriveInput(doc))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	in, err := ingest.ParseInputRecord(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input record: %v", err), http.StatusBadRequest)
		return
	}
	doc, err := projection.NewService(h.Repo).SaveInput(r.Context(), storeID, p, in)
	if err != nil {
		fmt.Printf("[PAC] Save input %s/%s failed: %v\n", storeID, p, err)
		http.Error(w, "Failed to save input", http.StatusInternalServerError)
		return
	}
	result, warnings := h.calculate(ingest.DeriveInput(doc))
	fmt.Printf("[PAC] Stored input for %s/%s, P.A.C. %s\n", storeID, p, result.BottomLineDollars.StringFixed(2))
	httputil.WriteJSON(w, Response{StoreID: storeID, Period: p.String(), Result: result, Warnings: warnings})
}

// HandleCalculate computes a report from an input record in the request body.
// Near-JSON bodies (trailing commas, comments, unquoted keys) are accepted.
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	if !httputil.CORS(w, r, http.MethodPost) {
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	in, err := ingest.ParseInputRecord(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input record: %v", err), http.StatusBadRequest)
		return
	}
	result, warnings := h.calculate(in)
	httputil.WriteJSON(w, Response{Result: result, Warnings: warnings})
}

// HandleExport streams the report and its recalculated projections as xlsx.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if !httputil.CORS(w, r, http.MethodGet) {
		return
	}
	storeID, p, ok := httputil.PathParams(w, r)
	if !ok {
		return
	}
	doc, ok := h.load(w, r, storeID, p)
	if !ok {
		return
	}
	result, _ := h.calculate(ingest.DeriveInput(doc))

	e, err := export.NewExporter()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer e.Close()
	if err := e.WritePAC(storeID, p.String(), result); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write report: %v", err), http.StatusInternalServerError)
		return
	}
	rows := projection.Recalculate(projection.SeedMerge(doc.Rows)).Rows()
	if err := e.WriteProjections(rows); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write projections: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=pac_%s_%s.xlsx", storeID, p))
	if _, err := e.WriteTo(w); err != nil {
		fmt.Printf("[PAC] Export %s/%s failed: %v\n", storeID, p, err)
	}
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request, storeID string, p period.Period) (*models.ProjectionDocument, bool) {
	doc, err := h.Repo.Load(r.Context(), storeID, p)
	if err != nil {
		fmt.Printf("[PAC] Load %s/%s failed: %v\n", storeID, p, err)
		http.Error(w, "Failed to load store data", http.StatusInternalServerError)
		return nil, false
	}
	if doc == nil {
		http.Error(w, fmt.Sprintf("No data for store %s in %s", storeID, p), http.StatusNotFound)
		return nil, false
	}
	return doc, true
}

func (h *Handler) calculate(in models.InputRecord) (models.CalculationResult, []string) {
	opts := pac.DefaultOptions()
	if h.Settings != nil {
		opts = h.Settings.Options()
	}
	result := pac.NewCalculator(opts).Calculate(in)

	outcome := "ok"
	if result.ProductNetSales.Sign() <= 0 {
		outcome = "no_sales"
	}
	metrics.Calculations.WithLabelValues(outcome).Inc()

	check := calc.CheckTotals(result)
	for _, warn := range check.Warnings {
		fmt.Printf("[PAC] Warning: %s\n", warn)
	}
	return result, check.Warnings
}
