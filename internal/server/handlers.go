package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/zain/bacteria-identifier/internal/db"
	"github.com/zain/bacteria-identifier/internal/types"
)

// FieldsResponse represents the response for GET /fields
type FieldsResponse struct {
	KeyField string   `json:"key_field"`
	Fields   []string `json:"fields"`
}

// ReferenceListResponse represents the response for GET /reference
type ReferenceListResponse struct {
	Count  int      `json:"count"`
	Genera []string `json:"genera"`
}

// RunDetailResponse represents the response for GET /runs/{id}
type RunDetailResponse struct {
	Run    *types.Run    `json:"run"`
	Report *types.Report `json:"report"`
}

// handleIdentify runs the ranking engine against the posted observations.
func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	var req types.IdentifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	report := s.identifier.Identify(types.ObservationSet(req.Observations))
	if req.MaxResults > 0 && len(report.Results) > req.MaxResults {
		report.Results = report.Results[:req.MaxResults]
	}

	resp := types.IdentifyResponse{Report: report}

	if req.Persist {
		if s.db == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "Run history is not configured (set DATABASE_URL)")
			return
		}
		runID, err := s.db.SaveRun(r.Context(), types.ObservationSet(req.Observations), report)
		if err != nil {
			log.Printf("Failed to persist run: %v", err)
			s.errorResponse(w, http.StatusInternalServerError, "Failed to persist run")
			return
		}
		resp.RunID = runID.String()
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleFields returns the reference schema.
func (s *Server) handleFields(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, FieldsResponse{
		KeyField: s.table.KeyField,
		Fields:   s.table.Fields,
	})
}

// handleListReference returns the candidate genus names in table order.
func (s *Server) handleListReference(w http.ResponseWriter, _ *http.Request) {
	genera := make([]string, 0, s.table.Len())
	for _, row := range s.table.Rows {
		genera = append(genera, row.Genus)
	}
	s.jsonResponse(w, http.StatusOK, ReferenceListResponse{
		Count:  len(genera),
		Genera: genera,
	})
}

// handleGetReference returns one reference row by genus name.
func (s *Server) handleGetReference(w http.ResponseWriter, r *http.Request) {
	genus := r.PathValue("genus")
	if genus == "" {
		s.errorResponse(w, http.StatusBadRequest, "Genus is required")
		return
	}

	for i := range s.table.Rows {
		if s.table.Rows[i].Genus == genus {
			s.jsonResponse(w, http.StatusOK, s.table.Rows[i])
			return
		}
	}
	s.errorResponse(w, http.StatusNotFound, "Genus not found: "+genus)
}

// handleListRuns returns stored identification runs, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history is not configured (set DATABASE_URL)")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := s.db.ListRuns(r.Context(), limit)
	if err != nil {
		log.Printf("Failed to list runs: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}
	if runs == nil {
		runs = []types.Run{}
	}

	s.jsonResponse(w, http.StatusOK, runs)
}

// handleGetRun returns one stored run with its full report.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Run history is not configured (set DATABASE_URL)")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID")
		return
	}

	run, report, err := s.db.GetRun(r.Context(), id)
	if errors.Is(err, db.ErrRunNotFound) {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}
	if err != nil {
		log.Printf("Failed to get run %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get run")
		return
	}

	s.jsonResponse(w, http.StatusOK, RunDetailResponse{Run: run, Report: report})
}
