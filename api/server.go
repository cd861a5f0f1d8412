package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"framepick/adapters/report"
	"framepick/app"
	"framepick/domain/core"
	"framepick/ports"
)

// Server exposes analysis runs over HTTP. Every run is independent and
// stateless; the archive (when configured) only serves browsing endpoints.
type Server struct {
	router  *chi.Mux
	svc     *app.AnalysisService
	archive ports.ReportArchive
}

// NewServer creates the API server. archive may be nil, which disables the
// archived-run endpoints.
func NewServer(svc *app.AnalysisService, archive ports.ReportArchive) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		svc:     svc,
		archive: archive,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/runs", s.handleCreateRun)
	s.router.Get("/runs", s.handleListRuns)
	s.router.Get("/runs/{runID}", s.handleGetRun)
	s.router.Get("/runs/{runID}/report", s.handleGetReport)

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// runRequest is the JSON body of POST /runs. Paths are local to the server:
// this API fronts a lab workstation, not a public upload service.
type runRequest struct {
	Series  []string  `json:"series"`
	Names   []string  `json:"names,omitempty"`
	Cluster string    `json:"cluster"`
	Weights []float64 `json:"weights,omitempty"`
}

func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var body runRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	result, err := s.svc.Run(r.Context(), app.AnalysisRequest{
		SeriesPaths: body.Series,
		SeriesNames: body.Names,
		ClusterPath: body.Cluster,
		Weights:     body.Weights,
	})
	if err != nil {
		status := http.StatusBadRequest
		if !core.IsInputError(err) {
			log.Printf("[api] run failed: %v", err)
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result.ToRecord())
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusServiceUnavailable, "run archive is not configured")
		return
	}

	records, err := s.archive.List(r.Context(), 50)
	if err != nil {
		log.Printf("[api] listing runs failed: %v", err)
		writeError(w, http.StatusInternalServerError, "listing runs failed")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	record, ok := s.lookupRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	record, ok := s.lookupRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.HTML(*record))
}

func (s *Server) lookupRun(w http.ResponseWriter, r *http.Request) (*ports.ReportRecord, bool) {
	if s.archive == nil {
		writeError(w, http.StatusServiceUnavailable, "run archive is not configured")
		return nil, false
	}

	runID, err := core.ParseRunID(chi.URLParam(r, "runID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	record, err := s.archive.Get(r.Context(), runID)
	if err != nil {
		log.Printf("[api] loading run %s failed: %v", runID, err)
		writeError(w, http.StatusInternalServerError, "loading run failed")
		return nil, false
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "no such run")
		return nil, false
	}
	return record, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[api] encoding response failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
