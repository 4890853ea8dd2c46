package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Clapiton/socials/pkg/domain"
	"github.com/Clapiton/socials/pkg/source"
)

// collectHandler starts a collection sweep in background
func (s *Server) collectHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Platforms []string `json:"platforms"`
		Limit     int      `json:"limit"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if req.Limit <= 0 {
		req.Limit = 25
	}

	runID := s.sweeper.StartCollect(req.Platforms, req.Limit)
	target := "all platforms"
	if len(req.Platforms) > 0 {
		target = strings.Join(req.Platforms, ", ")
	}
	renderJSON(w, r, http.StatusAccepted, map[string]string{
		"status":  "started",
		"run_id":  runID,
		"message": "Collection started across " + target,
	})
}

// analyzeHandler starts an analysis sweep in background
func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Limit int `json:"limit"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if req.Limit <= 0 {
		req.Limit = 50
	}

	runID := s.sweeper.StartAnalyze(req.Limit)
	renderJSON(w, r, http.StatusAccepted, map[string]string{
		"status":  "started",
		"run_id":  runID,
		"message": "Analysis started in background",
	})
}

// taskStatusHandler reports one sweep type or all of them
func (s *Server) taskStatusHandler(w http.ResponseWriter, r *http.Request) {
	if taskType := r.URL.Query().Get("type"); taskType != "" {
		renderJSON(w, r, http.StatusOK, s.sweeper.Status(taskType))
		return
	}
	res := map[string]domain.TaskStatus{}
	for _, st := range s.sweeper.AllStatuses() {
		res[st.Type] = st
	}
	renderJSON(w, r, http.StatusOK, res)
}

// importHandler stores pasted text or csv content as posts
func (s *Server) importHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    string `json:"type"` // text or csv
		Content string `json:"content"`
		Author  string `json:"author"`
		Label   string `json:"label"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	var stats domain.CollectionStats
	var err error
	switch req.Type {
	case "csv":
		stats, err = s.importer.ImportCSV(r.Context(), strings.NewReader(req.Content))
	case "", "text":
		stats, err = s.importer.ImportText(r.Context(), req.Content, req.Author, req.Label)
	default:
		renderError(w, r, fmt.Errorf("unknown import type %q", req.Type), http.StatusBadRequest)
		return
	}
	if err != nil {
		if errors.Is(err, source.ErrEmptyText) || errors.Is(err, source.ErrNoContentColumn) {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
		log.Printf("[ERROR] import failed: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

// webhookLeadHandler forwards a lead with its post to the configured webhook
func (s *Server) webhookLeadHandler(w http.ResponseWriter, r *http.Request) {
	lead, ok := s.leadFromBody(w, r, nil)
	if !ok {
		return
	}

	settings, err := s.db.GetSettings(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get settings: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	forwarded := false
	if url := settings.WebhookURL(); url != "" {
		s.forwarder.Forward(url, map[string]any{
			"lead_id":           lead.ID,
			"confidence":        lead.Confidence,
			"reason":            lead.Reason,
			"suggested_service": lead.SuggestedService,
			"raw_post": map[string]string{
				"platform": lead.Platform,
				"author":   lead.Author,
				"title":    lead.PostTitle,
				"content":  lead.PostContent,
				"url":      lead.PostURL,
			},
		})
		forwarded = true
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "lead_id": lead.ID, "forwarded": forwarded})
}
