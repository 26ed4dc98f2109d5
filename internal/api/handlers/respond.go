package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
)

// envelope is the wire shape for every response. The engine returns bare
// typed values; only this layer wraps them.
type envelope struct {
	OK          bool   `json:"ok"`
	Data        any    `json:"data,omitempty"`
	Error       string `json:"error,omitempty"`
	Banner      string `json:"banner,omitempty"`
	Diagnostics any    `json:"diagnostics,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{OK: true, Data: data})
}

func writeJSONWith(w http.ResponseWriter, status int, data any, banner string, diagnostics any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{OK: true, Data: data, Banner: banner, Diagnostics: diagnostics})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{OK: false, Error: msg})
}

// leakageBanner renders the non-fatal warning shown when out-of-domain
// vocabulary was redacted from strategy output.
func leakageBanner(report domain.LeakageReport) string {
	if !report.HadLeakage {
		return ""
	}
	return "some strategy wording referenced another practice area and was redacted"
}
