package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jonathan/offer-analyzer/internal/types"
)

// requireDB rejects requests that need the rate table when no database is
// configured. Returns false after writing the response.
func (s *Server) requireDB(w http.ResponseWriter) bool {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "This endpoint requires a database")
		return false
	}
	return true
}

// validateUMKRate checks a submitted rate record.
func validateUMKRate(rate *types.UMKRate) string {
	if strings.TrimSpace(rate.Region) == "" {
		return "region is required"
	}
	if rate.MonthlyWage <= 0 {
		return "monthly_wage must be positive"
	}
	if rate.Year < 2000 || rate.Year > 2100 {
		return "year is out of range"
	}
	return ""
}

// handleLookupUMK resolves a city or free-form location to its statutory
// minimum wage, preferring stored rates over the embedded table.
func (s *Server) handleLookupUMK(w http.ResponseWriter, r *http.Request) {
	city := r.PathValue("city")

	rate, err := s.rates.Lookup(r.Context(), city)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Lookup failed: "+err.Error())
		return
	}
	if rate == nil {
		s.errorResponse(w, http.StatusNotFound, "No minimum wage data for this location")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"location":    city,
		"rate":        rate,
		"annual_wage": rate.MonthlyWage * 12,
	})
}

// handleListUMKRates lists stored minimum wage rates
func (s *Server) handleListUMKRates(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	includeInactive := r.URL.Query().Get("include_inactive") == "true"
	rates, err := s.db.ListUMKRates(r.Context(), includeInactive)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"rates": rates,
		"total": len(rates),
	})
}

// handleCreateUMKRate stores a new regional rate
func (s *Server) handleCreateUMKRate(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	var rate types.UMKRate
	if err := json.NewDecoder(r.Body).Decode(&rate); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if msg := validateUMKRate(&rate); msg != "" {
		s.errorResponse(w, http.StatusBadRequest, msg)
		return
	}

	created, err := s.db.CreateUMKRate(r.Context(), &rate)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, created)
}

// handleUpdateUMKRate replaces the stored rate for a region
func (s *Server) handleUpdateUMKRate(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	region := r.PathValue("region")
	var rate types.UMKRate
	if err := json.NewDecoder(r.Body).Decode(&rate); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if rate.Region == "" {
		rate.Region = region
	}
	if msg := validateUMKRate(&rate); msg != "" {
		s.errorResponse(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := s.db.UpdateUMKRate(r.Context(), region, &rate)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteUMKRate retires a region's rate without losing its history
func (s *Server) handleDeleteUMKRate(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	region := r.PathValue("region")
	if err := s.db.SoftDeleteUMKRate(r.Context(), region); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleUMKStats summarizes minimum wage coverage
func (s *Server) handleUMKStats(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w) {
		return
	}

	stats, err := s.db.UMKRateStats(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, stats)
}
