package health

import (
	"encoding/json"
	"net/http"
)

// Liveness always reports ok once the process is serving.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// ReadinessReporter is implemented by components with startup dependencies,
// such as the Kafka invalidation consumer.
type ReadinessReporter interface {
	Readiness() (ready bool, detail []string)
}

// Readiness aggregates reporters; with none registered it reports ready.
func Readiness(reporters ...ReadinessReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		type resp struct {
			Status string   `json:"status"`
			Detail []string `json:"detail,omitempty"`
		}
		out := resp{Status: "ready"}
		for _, rr := range reporters {
			ready, detail := rr.Readiness()
			out.Detail = append(out.Detail, detail...)
			if !ready {
				out.Status = "not_ready"
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if out.Status != "ready" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(out)
	}
}
