package api

import "net/http"

// RegisterRoutes registers the intake endpoints on the provided mux.
func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(http.MethodPost+" /api/submit-transaction", h.handleSubmitTransaction)
	mux.HandleFunc(http.MethodPost+" /api/generateCoverSheet", h.handleGenerateCoverSheet)
	mux.HandleFunc(http.MethodPost+" /api/validate-step", h.handleValidateStep)
	mux.HandleFunc(http.MethodGet+" /api/submissions/{id}", h.handleGetSubmission)
	mux.HandleFunc(http.MethodOptions+" /api/", h.handlePreflight)
	mux.HandleFunc(http.MethodGet+" /healthz", h.handleHealthz)
}

// Handler returns the full intake handler with CORS headers applied to the
// API surface.
func (h *Handlers) Handler() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return withCORS(mux)
}

func (h *Handlers) handlePreflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		next.ServeHTTP(w, r)
	})
}
