package rest

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type healthResponse struct {
	Status string `json:"status"`
}

// Live reports that the process is up.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Ready reports ok once a registry has been published.
func (h *Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	if h.translations.Locales() == nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "not_loaded"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}
