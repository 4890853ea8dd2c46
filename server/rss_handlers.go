package server

import (
	"log"
	"net/http"

	"github.com/Clapiton/socials/pkg/domain"
)

// rssLeadsHandler serves the lead queue as RSS, min_confidence filters it
func (s *Server) rssLeadsHandler(w http.ResponseWriter, r *http.Request) {
	minConfidence := queryFloat(r, "min_confidence", 0)
	if minConfidence < 0 || minConfidence > 1 {
		minConfidence = 0
	}
	filter := domain.LeadFilter{
		Status:        domain.LeadStatus(r.URL.Query().Get("status")),
		MinConfidence: minConfidence,
		Limit:         defaultRSSLimit,
	}
	if filter.Status != "" && !filter.Status.Valid() {
		filter.Status = ""
	}

	leads, err := s.db.GetLeads(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to get leads for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	rss, err := s.generator.GenerateRSS(leads, minConfidence)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
