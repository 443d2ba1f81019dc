// Package httputil holds the response helpers shared by the API handlers.
package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"pacpro/pkg/core/period"
)

// InvalidPeriodMessage is returned with 400 for a malformed {period} segment.
const InvalidPeriodMessage = "Invalid yearMonth format. Expected YYYYMM (e.g., 202501)"

// CORS writes the local-dev CORS headers and answers preflight requests. It
// returns false when the request has been fully handled (preflight or a
// method outside methods).
func CORS(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	allowed := strings.Join(append(methods, http.MethodOptions), ", ")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", allowed)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return false
	}
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", allowed)
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

// WriteJSON encodes v with status 200.
func WriteJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Printf("[API] Failed to encode response: %v\n", err)
	}
}

// PathParams reads {store} and {period} from the route, writing 400 and
// returning false when either is invalid.
func PathParams(w http.ResponseWriter, r *http.Request) (string, period.Period, bool) {
	storeID := strings.TrimSpace(r.PathValue("store"))
	if storeID == "" {
		http.Error(w, "Missing store id", http.StatusBadRequest)
		return "", period.Period{}, false
	}
	p, err := period.Parse(r.PathValue("period"))
	if err != nil {
		http.Error(w, InvalidPeriodMessage, http.StatusBadRequest)
		return "", period.Period{}, false
	}
	return storeID, p, true
}
