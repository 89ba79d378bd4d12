package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"stocklens/internal"
	"stocklens/internal/analysis"
	"stocklens/internal/config"
	"stocklens/internal/ingest"
)

// Server exposes the analysis over HTTP as structured JSON. Rendering,
// charts and formatting stay with whatever consumes the API.
type Server struct {
	cfg config.Config
}

func New(cfg config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/sample", s.handleSample)
	})

	return r
}

type analyzeResponse struct {
	Source      internal.RecordSource             `json:"source"`
	Tolerance   float64                           `json:"tolerance"`
	Accepted    int                               `json:"accepted"`
	Fallback    bool                              `json:"fallback"`
	Notice      string                            `json:"notice,omitempty"`
	Summary     internal.Summary                  `json:"summary"`
	Items       []internal.ProcessedItem          `json:"items"`
	VendorOrder []string                          `json:"vendor_order"`
	Vendors     map[string]*internal.VendorTotals `json:"vendors"`
	TopShort    []internal.ProcessedItem          `json:"top_short"`
	TopExcess   []internal.ProcessedItem          `json:"top_excess"`
	TopVariance []internal.ProcessedItem          `json:"top_variance"`

	TopShortByVendor  []analysis.VendorTopParts `json:"top_short_by_vendor"`
	TopExcessByVendor []analysis.VendorTopParts `json:"top_excess_by_vendor"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// handleAnalyze accepts a multipart upload ("file") plus an optional
// "tolerance" form field. Unusable datasets are answered with the sample
// analysis and a notice, never with a failure; only a bad request (missing
// file, bad tolerance, unreadable payload) gets a 4xx.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.badRequest(w, r, fmt.Sprintf("invalid upload: %v", err))
		return
	}

	tolerance, err := s.toleranceParam(r.FormValue("tolerance"))
	if err != nil {
		s.badRequest(w, r, err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.badRequest(w, r, "file field is required")
		return
	}
	defer file.Close()

	blob, err := io.ReadAll(file)
	if err != nil {
		s.badRequest(w, r, fmt.Sprintf("reading upload: %v", err))
		return
	}

	records, source, err := ingest.FromBytes(header.Filename, blob)
	if err != nil {
		s.badRequest(w, r, err.Error())
		return
	}

	result, err := analysis.Analyze(records, source, tolerance)
	var missing *analysis.MissingColumnsError
	switch {
	case errors.As(err, &missing):
		s.respondFallback(w, r, tolerance, missing.Error())
		return
	case err != nil:
		s.badRequest(w, r, err.Error())
		return
	case result.Accepted == 0:
		s.respondFallback(w, r, tolerance, "no valid inventory rows in upload")
		return
	}

	render.JSON(w, r, s.toResponse(result, false, ""))
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	tolerance, err := s.toleranceParam(r.URL.Query().Get("tolerance"))
	if err != nil {
		s.badRequest(w, r, err.Error())
		return
	}

	result := analysis.AnalyzeItems(analysis.SampleItems(), internal.SourceSample, tolerance)
	render.JSON(w, r, s.toResponse(result, false, ""))
}

func (s *Server) respondFallback(w http.ResponseWriter, r *http.Request, tolerance float64, notice string) {
	result := analysis.AnalyzeItems(analysis.SampleItems(), internal.SourceSample, tolerance)
	render.JSON(w, r, s.toResponse(result, true, notice+"; using sample data instead"))
}

func (s *Server) toResponse(result analysis.Result, fallback bool, notice string) analyzeResponse {
	return analyzeResponse{
		Source:      result.Source,
		Tolerance:   result.Tolerance,
		Accepted:    result.Accepted,
		Fallback:    fallback,
		Notice:      notice,
		Summary:     result.Summary,
		Items:       result.Items,
		VendorOrder: result.Vendors.Order,
		Vendors:     result.Vendors.Totals,
		TopShort:    analysis.TopByStatus(result.Items, internal.StatusShort, s.cfg.TopParts),
		TopExcess:   analysis.TopByStatus(result.Items, internal.StatusExcess, s.cfg.TopParts),
		TopVariance: analysis.TopByAbsVariance(result.Items, s.cfg.TopParts),

		TopShortByVendor:  analysis.TopByStatusPerVendor(result.Items, internal.StatusShort, s.cfg.VendorTopParts),
		TopExcessByVendor: analysis.TopByStatusPerVendor(result.Items, internal.StatusExcess, s.cfg.VendorTopParts),
	}
}

func (s *Server) toleranceParam(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.cfg.TolerancePercent, nil
	}
	tolerance, err := strconv.ParseFloat(raw, 64)
	if err != nil || !analysis.ValidTolerance(tolerance) {
		return 0, fmt.Errorf("tolerance must be a positive finite number, got %q", raw)
	}
	return tolerance, nil
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorResponse{Error: msg})
}
