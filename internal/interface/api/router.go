package api

import (
	"github.com/gorilla/mux"
)

// NewRouter creates and configures a new router with all API endpoints
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Journal entry endpoints
	api.HandleFunc("/entries", h.ListEntries).Methods("GET")
	api.HandleFunc("/entries", h.CreateEntry).Methods("POST")
	api.HandleFunc("/entries/{registration}", h.GetEntry).Methods("GET")
	api.HandleFunc("/entries/{registration}", h.UpdateEntry).Methods("PUT")
	api.HandleFunc("/entries/{registration}", h.DeleteEntry).Methods("DELETE")

	// Details lookup with history reconciliation
	api.HandleFunc("/details/{registration}", h.GetDetails).Methods("GET")

	return r
}
