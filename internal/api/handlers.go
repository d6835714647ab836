package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/arborlab/phylograph/pkg/buildinfo"
	apperrors "github.com/arborlab/phylograph/pkg/errors"
	"github.com/arborlab/phylograph/pkg/graph"
	"github.com/arborlab/phylograph/pkg/pipeline"
	"github.com/arborlab/phylograph/pkg/store"
)

// maxDocumentSize bounds request bodies for render and save requests.
const maxDocumentSize = 10 << 20 // 10 MiB

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleRender renders the posted document (Newick or JSON) into the
// format given by the format query parameter (default svg). Style,
// direction, and show_lengths parameters mirror the CLI flags.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentSize))
	if err != nil {
		s.respondError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "read request body: %v", err))
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		s.respondError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "request body is empty"))
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = graph.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.respondError(w, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "unsupported format %q", format))
		return
	}
	if style := q.Get("style"); style != "" {
		if err := pipeline.ValidateStyle(style); err != nil {
			s.respondError(w, apperrors.Wrap(apperrors.ErrCodeInvalidStyle, err, "unsupported style %q", style))
			return
		}
	}
	if direction := q.Get("direction"); direction != "" {
		if err := pipeline.ValidateDirection(direction); err != nil {
			s.respondError(w, apperrors.Wrap(apperrors.ErrCodeInvalidDirection, err, "unsupported direction %q", direction))
			return
		}
	}
	showLengths, _ := strconv.ParseBool(q.Get("show_lengths"))

	opts := pipeline.Options{
		Data:        body,
		Formats:     []string{format},
		Style:       q.Get("style"),
		Direction:   q.Get("direction"),
		ShowLengths: showLengths,
		Logger:      s.logger,
	}

	g, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.respondError(w, apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "parse document"))
		return
	}

	artifacts, err := s.runner.Render(r.Context(), g, opts)
	if err != nil {
		s.respondError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render %s", format))
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

// saveGraphRequest is the body of POST /graphs.
type saveGraphRequest struct {
	Name  string      `json:"name"`
	Graph graph.Graph `json:"graph"`
}

func (s *Server) handleSaveGraph(w http.ResponseWriter, r *http.Request) {
	var req saveGraphRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentSize)).Decode(&req); err != nil {
		s.respondError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if err := apperrors.ValidateName(req.Name); err != nil {
		s.respondError(w, err)
		return
	}
	// Reject graphs that do not round-trip into a valid phylogeny.
	if _, err := graph.ToPhylogeny(req.Graph); err != nil {
		s.respondError(w, apperrors.Wrap(apperrors.ErrCodeInvalidGraph, err, "invalid graph"))
		return
	}

	rec := store.Record{Name: req.Name, Graph: req.Graph}
	if err := s.store.Save(r.Context(), &rec); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListGraphs(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	if records == nil {
		records = []*store.Record{}
	}
	s.respondJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteGraph(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
