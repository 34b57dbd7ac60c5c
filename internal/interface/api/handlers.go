package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"tailtracker-service/internal/domain/entity"
	"tailtracker-service/internal/usecase"
	"tailtracker-service/pkg/logger"

	"github.com/gorilla/mux"
)

// Handler holds the HTTP handlers for the journal API
type Handler struct {
	entries *usecase.EntryUsecase
	details *usecase.DetailsUsecase
	logger  logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(entries *usecase.EntryUsecase, details *usecase.DetailsUsecase, logger logger.Logger) *Handler {
	return &Handler{
		entries: entries,
		details: details,
		logger:  logger,
	}
}

type createEntryRequest struct {
	Registration       string    `json:"registration"`
	InteractionType    string    `json:"interactionType"`
	Location           string    `json:"location"`
	DepartureAirport   string    `json:"departureAirport"`
	DestinationAirport string    `json:"destinationAirport"`
	FlightNumber       string    `json:"flightNumber"`
	Notes              string    `json:"notes"`
	Image              string    `json:"image"`
	Date               time.Time `json:"date"`
}

type updateEntryRequest struct {
	Sightings []entity.Sighting `json:"sightings"`
}

// Health responds to liveness probes
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Healthy"))
}

// ListEntries returns all journal records, oldest first
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	records, err := h.entries.ListRecords(r.Context())
	if err != nil {
		h.logger.Error("Failed to list entries", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if records == nil {
		records = []*entity.AircraftRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// CreateEntry logs a sighting, creating the aircraft record on first contact
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Registration == "" {
		writeError(w, http.StatusBadRequest, "Registration is required")
		return
	}
	if req.InteractionType != entity.InteractionSaw && req.InteractionType != entity.InteractionFlown {
		writeError(w, http.StatusBadRequest, "interactionType must be 'saw' or 'flown'")
		return
	}

	sighting := entity.Sighting{
		InteractionType:    req.InteractionType,
		Location:           req.Location,
		DepartureAirport:   req.DepartureAirport,
		DestinationAirport: req.DestinationAirport,
		FlightNumber:       req.FlightNumber,
		Notes:              req.Notes,
		Image:              req.Image,
		Date:               req.Date,
	}

	record, created, err := h.entries.LogSighting(r.Context(), req.Registration, sighting)
	if err != nil {
		h.logger.Error("Failed to log sighting", "registration", req.Registration, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, record)
}

// GetEntry returns one record by registration
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	registration := mux.Vars(r)["registration"]

	record, err := h.entries.GetRecord(r.Context(), registration)
	if err != nil {
		h.respondRecordError(w, registration, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// UpdateEntry replaces the sightings list on a record
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	registration := mux.Vars(r)["registration"]

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.entries.UpdateSightings(r.Context(), registration, req.Sightings)
	if err != nil {
		h.respondRecordError(w, registration, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// DeleteEntry removes a record by registration
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	registration := mux.Vars(r)["registration"]

	if err := h.entries.DeleteRecord(r.Context(), registration); err != nil {
		h.respondRecordError(w, registration, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Entry deleted"})
}

// GetDetails serves the enriched details lookup
func (h *Handler) GetDetails(w http.ResponseWriter, r *http.Request) {
	registration := mux.Vars(r)["registration"]

	details, err := h.details.GetDetails(r.Context(), registration)
	if err != nil {
		h.respondRecordError(w, registration, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) respondRecordError(w http.ResponseWriter, registration string, err error) {
	if errors.Is(err, entity.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}
	h.logger.Error("Request failed", "registration", registration, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
