// Package projections serves the editable projection sheet.
package projections

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pacpro/pkg/api/httputil"
	"pacpro/pkg/core/ingest"
	"pacpro/pkg/core/metrics"
	"pacpro/pkg/core/projection"
	"pacpro/pkg/models"
)

const (
	maxBodyBytes   = 1 << 20
	maxUploadBytes = 10 << 20
)

// SaveRequest is the body of POST /api/projections/{store}/{period}.
// A blank, null or missing pacGoal saves as zero.
type SaveRequest struct {
	PacGoal models.Figure          `json:"pacGoal"`
	Rows    []models.ProjectionRow `json:"rows"`
}

// HistoricalResponse is the body of GET .../historical.
type HistoricalResponse struct {
	StoreID string                 `json:"storeId"`
	Period  string                 `json:"period"`
	Rows    []models.ProjectionRow `json:"rows"`
}

// Handler holds dependencies for projection endpoints
type Handler struct {
	Service *projection.Service
}

// NewHandler creates a new projections handler
func NewHandler(svc *projection.Service) *Handler {
	return &Handler{Service: svc}
}

// Register mounts the projection routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("/api/projections/recalculate", metrics.Instrument("projections_recalculate", http.HandlerFunc(h.HandleRecalculate)))
	mux.Handle("/api/projections/{store}/{period}", metrics.Instrument("projections_sheet", http.HandlerFunc(h.HandleSheet)))
	mux.Handle("/api/projections/{store}/{period}/historical", metrics.Instrument("projections_historical", http.HandlerFunc(h.HandleHistorical)))
	mux.Handle("/api/projections/{store}/{period}/import", metrics.Instrument("projections_import", http.HandlerFunc(h.HandleImport)))
}

// HandleSheet returns the seeded sheet on GET and saves edited rows on POST.
func (h *Handler) HandleSheet(w http.ResponseWriter, r *http.Request) {
	if !httputil.CORS(w, r, http.MethodGet, http.MethodPost) {
		return
	}
	storeID, p, ok := httputil.PathParams(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		sheet, err := h.Service.Seed(r.Context(), storeID, p)
		if err != nil {
			fmt.Printf("[PROJECTION] Seed %s/%s failed: %v\n", storeID, p, err)
			http.Error(w, "Failed to load projections", http.StatusInternalServerError)
			return
		}
		metrics.SeedSources.WithLabelValues(sheet.Source).Inc()
		metrics.Recalculations.Inc()
		fmt.Printf("[PROJECTION] Seeded %s/%s from %s\n", storeID, p, sheet.Source)
		httputil.WriteJSON(w, sheet)
		return
	}

	var req SaveRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	sheet, err := h.Service.Save(r.Context(), storeID, p, req.PacGoal.OrZero(), req.Rows)
	if err != nil {
		fmt.Printf("[PROJECTION] Save %s/%s failed: %v\n", storeID, p, err)
		http.Error(w, "Failed to save projections", http.StatusInternalServerError)
		return
	}
	metrics.Recalculations.Inc()
	fmt.Printf("[PROJECTION] Saved %d rows for %s/%s\n", len(req.Rows), storeID, p)
	httputil.WriteJSON(w, sheet)
}

// HandleHistorical returns the prior month's projected figures as the
// historical column of the requested month.
func (h *Handler) HandleHistorical(w http.ResponseWriter, r *http.Request) {
	if !httputil.CORS(w, r, http.MethodGet) {
		return
	}
	storeID, p, ok := httputil.PathParams(w, r)
	if !ok {
		return
	}
	rows, err := h.Service.Historical(r.Context(), storeID, p.Prev())
	if err != nil {
		fmt.Printf("[PROJECTION] Historical %s/%s failed: %v\n", storeID, p, err)
		http.Error(w, "Failed to load historical data", http.StatusInternalServerError)
		return
	}
	httputil.WriteJSON(w, HistoricalResponse{StoreID: storeID, Period: p.String(), Rows: rows})
}

// HandleRecalculate runs the pipeline over posted rows without storing them.
// The body may be a bare row array or {"rows": [...]}.
func (h *Handler) HandleRecalculate(w http.ResponseWriter, r *http.Request) {
	if !httputil.CORS(w, r, http.MethodPost) {
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	rows, err := ingest.ParseRows(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid rows: %v", err), http.StatusBadRequest)
		return
	}
	sheet, unknown := projection.SeedMergeReport(rows)
	for _, name := range unknown {
		fmt.Printf("[PROJECTION] Ignoring unknown line %q\n", name)
	}
	metrics.Recalculations.Inc()
	httputil.WriteJSON(w, models.ProjectionSheet{Rows: projection.Recalculate(sheet).Rows()})
}

// HandleImport reads a projections workbook from the "file" form field and
// saves its rows for the store-period.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if !httputil.CORS(w, r, http.MethodPost) {
		return
	}
	storeID, p, ok := httputil.PathParams(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := ingest.ReadWorkbookRows(header.Filename, file)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read workbook: %v", err), http.StatusBadRequest)
		return
	}
	sheet, err := h.Service.Import(r.Context(), storeID, p, rows)
	if err != nil {
		fmt.Printf("[PROJECTION] Import %s/%s failed: %v\n", storeID, p, err)
		http.Error(w, "Failed to save projections", http.StatusInternalServerError)
		return
	}
	metrics.Recalculations.Inc()
	fmt.Printf("[PROJECTION] Imported %d rows from %s for %s/%s\n", len(rows), header.Filename, storeID, p)
	httputil.WriteJSON(w, sheet)
}
