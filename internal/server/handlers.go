package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/offer-analyzer/internal/cache"
	"github.com/jonathan/offer-analyzer/internal/parse"
	"github.com/jonathan/offer-analyzer/internal/types"
)

// ParseOfferRequest represents the request body for /parse-offer
type ParseOfferRequest struct {
	Text string `json:"text"`
}

// ScriptsResponse represents the response for /scripts
type ScriptsResponse struct {
	Assessment *types.AssessmentResult `json:"assessment"`
	Scripts    *types.ScriptBundle     `json:"scripts"`
}

// handleAssess runs a full offer assessment
func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	var offer types.Offer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Identical offers within the TTL are served from the cache
	var key string
	if s.cache != nil {
		key = cache.Key(&offer)
		if cached := s.cache.GetAssessment(r.Context(), key); cached != nil {
			s.metrics.IncrementCacheResult(true)
			s.jsonResponse(w, http.StatusOK, cached)
			return
		}
		s.metrics.IncrementCacheResult(false)
	}

	result, err := s.engine.Assess(r.Context(), offer)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.metrics.IncrementVerdict(string(result.Verdict))
	s.metrics.IncrementMarketResolution(result.Market.Source)
	if s.cache != nil {
		s.cache.PutAssessment(r.Context(), key, result)
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleParseOffer extracts a structured offer from pasted offer text
func (s *Server) handleParseOffer(w http.ResponseWriter, r *http.Request) {
	var req ParseOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Text == "" {
		s.errorResponse(w, http.StatusBadRequest, "text is required")
		return
	}
	if s.llmClient == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Offer parsing requires a configured API key")
		return
	}

	offer, err := parse.ParseOfferText(r.Context(), s.llmClient, req.Text)
	if err != nil {
		s.logger.Warn("offer parse failed", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, offer)
}

// handleGenerateScripts assesses an offer and drafts negotiation scripts
func (s *Server) handleGenerateScripts(w http.ResponseWriter, r *http.Request) {
	var offer types.Offer
	if err := json.NewDecoder(r.Body).Decode(&offer); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	assessment, err := s.engine.Assess(r.Context(), offer)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	bundle, err := s.scripts.Generate(r.Context(), assessment)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ScriptsResponse{
		Assessment: assessment,
		Scripts:    bundle,
	})
}

// handleSubmitContribution accepts a crowdsourced salary datapoint
func (s *Server) handleSubmitContribution(w http.ResponseWriter, r *http.Request) {
	if s.contributions == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Contribution intake requires a database")
		return
	}

	var c types.Contribution
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	receipt, err := s.contributions.Submit(r.Context(), c)
	if err != nil {
		status := HTTPStatus(err)
		switch status {
		case http.StatusConflict:
			s.metrics.IncrementContribution("duplicate")
		case http.StatusBadRequest:
			s.metrics.IncrementContribution("invalid")
		default:
			s.metrics.IncrementContribution("failed")
			s.logger.Error("contribution intake failed", zap.Error(err))
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.metrics.IncrementContribution("accepted")
	s.jsonResponse(w, http.StatusCreated, receipt)
}
