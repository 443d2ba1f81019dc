package config

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pacpro/pkg/core/config"
	"pacpro/pkg/core/pac"
)

func TestHandleConfigAndSwitch(t *testing.T) {
	settings := config.NewSettings(config.Default())
	mux := http.NewServeMux()
	NewHandler(settings, "file").Register(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.CashSign != pac.CashAsExpense || resp.Backend != "file" || len(resp.Available) != 2 {
		t.Errorf("unexpected config response: %+v", resp)
	}

	tests := []struct {
		name string
		body string
		code int
		want pac.CashSign
	}{
		{"switch to negated", `{"cash_sign": "negated"}`, http.StatusOK, pac.CashNegated},
		{"unknown sign keeps current", `{"cash_sign": "sideways"}`, http.StatusBadRequest, pac.CashNegated},
		{"broken body", `{`, http.StatusBadRequest, pac.CashNegated},
		{"switch back", `{"cash_sign": "EXPENSE"}`, http.StatusOK, pac.CashAsExpense},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/config/cash-sign", bytes.NewBufferString(tt.body))
			mux.ServeHTTP(rec, req)
			if rec.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, rec.Code)
			}
			if got := settings.CashSign(); got != tt.want {
				t.Errorf("cash sign expected %s, got %s", tt.want, got)
			}
		})
	}
}
