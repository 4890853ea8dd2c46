package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Clapiton/socials/pkg/domain"
	"github.com/Clapiton/socials/pkg/repository"
)

// statusHandler returns server status with the state of sweeps
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"tasks":   s.sweeper.AllStatuses(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// statsHandler returns dashboard counters
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetStats(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get stats: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, stats)
}

// postsHandler returns collected posts, newest first
func (s *Server) postsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	posts, err := s.db.GetPosts(r.Context(), domain.PostFilter{
		Platform: r.URL.Query().Get("platform"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		log.Printf("[ERROR] failed to get posts: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if posts == nil {
		posts = []domain.RawPost{}
	}
	renderJSON(w, r, http.StatusOK, posts)
}

// leadsHandler returns leads, most confident first
func (s *Server) leadsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	status := domain.LeadStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		renderError(w, r, fmt.Errorf("invalid lead status %q", status), http.StatusBadRequest)
		return
	}

	leads, err := s.db.GetLeads(r.Context(), domain.LeadFilter{
		Status:        status,
		MinConfidence: queryFloat(r, "min_confidence", 0),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		log.Printf("[ERROR] failed to get leads: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	renderJSON(w, r, http.StatusOK, leads)
}

// leadHandler returns a single lead
func (s *Server) leadHandler(w http.ResponseWriter, r *http.Request) {
	lead, ok := s.loadLead(w, r)
	if !ok {
		return
	}
	renderJSON(w, r, http.StatusOK, lead)
}

// leadStatusHandler moves a lead along the outreach workflow
func (s *Server) leadStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	var req struct {
		Status domain.LeadStatus `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if !req.Status.Valid() {
		renderError(w, r, fmt.Errorf("invalid lead status %q", req.Status), http.StatusBadRequest)
		return
	}

	if err := s.db.UpdateLeadStatus(r.Context(), id, req.Status); err != nil {
		s.renderStoreError(w, r, "update lead status", err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "lead_id": id, "lead_status": req.Status})
}

// leadDraftHandler stores an outreach draft prepared by an external workflow
func (s *Server) leadDraftHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	var req struct {
		Subject      string `json:"subject"`
		Body         string `json:"body"`
		ContactEmail string `json:"contact_email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if req.Subject == "" || req.Body == "" {
		renderError(w, r, errors.New("subject and body are required"), http.StatusBadRequest)
		return
	}

	if err := s.db.UpdateLeadDraft(r.Context(), id, req.Subject, req.Body, req.ContactEmail); err != nil {
		s.renderStoreError(w, r, "update lead draft", err)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "lead_id": id})
}

// outreachHandler returns logged outreach attempts
func (s *Server) outreachHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	items, err := s.db.GetOutreach(r.Context(), limit, offset)
	if err != nil {
		log.Printf("[ERROR] failed to get outreach: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []domain.Outreach{}
	}
	renderJSON(w, r, http.StatusOK, items)
}

// outreachDraftHandler returns the draft of a lead, 202 while it is not ready yet
func (s *Server) outreachDraftHandler(w http.ResponseWriter, r *http.Request) {
	lead, ok := s.leadFromBody(w, r, nil)
	if !ok {
		return
	}
	if lead.OutreachSubject == "" || lead.OutreachBody == "" {
		renderJSON(w, r, http.StatusAccepted, map[string]string{
			"status":  "pending",
			"message": "outreach draft is not ready yet",
		})
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{
		"subject":      lead.OutreachSubject,
		"body":         lead.OutreachBody,
		"contact_info": lead.ContactEmail,
	})
}

// outreachLogHandler records a contact attempt
func (s *Server) outreachLogHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AnalyzedPostID int64     `json:"analyzed_post_id"`
		Channel        string    `json:"channel"`
		Message        string    `json:"message"`
		Status         string    `json:"status"`
		SentAt         time.Time `json:"sent_at"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if req.AnalyzedPostID <= 0 {
		renderError(w, r, errors.New("analyzed_post_id required"), http.StatusBadRequest)
		return
	}

	o := &domain.Outreach{
		AnalyzedPostID: req.AnalyzedPostID,
		Channel:        valueOr(req.Channel, "email"),
		MessageSent:    req.Message,
		Status:         valueOr(req.Status, domain.OutreachDrafted),
		SentAt:         req.SentAt,
	}
	if err := s.db.CreateOutreach(r.Context(), o); err != nil {
		log.Printf("[ERROR] failed to log outreach: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, o)
}

// outreachSendHandler logs the prepared draft of a lead as an outreach record
func (s *Server) outreachSendHandler(w http.ResponseWriter, r *http.Request) {
	var channel string
	lead, ok := s.leadFromBody(w, r, &channel)
	if !ok {
		return
	}
	if lead.OutreachSubject == "" || lead.OutreachBody == "" {
		renderJSON(w, r, http.StatusAccepted, map[string]string{
			"status":  "pending",
			"message": "outreach draft is not ready yet",
		})
		return
	}

	o := &domain.Outreach{
		AnalyzedPostID: lead.AnalyzedPostID,
		Channel:        valueOr(channel, "email"),
		MessageSent:    fmt.Sprintf("Subject: %s\n\n%s", lead.OutreachSubject, lead.OutreachBody),
		Status:         domain.OutreachDrafted,
	}
	if err := s.db.CreateOutreach(r.Context(), o); err != nil {
		log.Printf("[ERROR] failed to log outreach for lead %d: %v", lead.ID, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{
		"status":   "draft_created",
		"message":  map[string]string{"subject": lead.OutreachSubject, "body": lead.OutreachBody},
		"outreach": o,
	})
}

// getSettingsHandler returns all settings
func (s *Server) getSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := s.db.GetSettings(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get settings: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, settings)
}

// updateSettingsHandler upserts the given settings, numeric ones are validated first
func (s *Server) updateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := decodeJSON(r, &values); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if len(values) == 0 {
		renderError(w, r, errors.New("no settings provided"), http.StatusBadRequest)
		return
	}
	if err := validateSettings(values); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	if err := s.db.SetSettings(r.Context(), values); err != nil {
		log.Printf("[ERROR] failed to update settings: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "updated": keys})
}

func validateSettings(values map[string]string) error {
	settings := domain.Settings(values)
	if _, ok := values[domain.SettingConfidenceThreshold]; ok {
		if _, err := settings.ConfidenceThreshold(); err != nil {
			return err
		}
	}
	if _, ok := values[domain.SettingSentimentThreshold]; ok {
		if _, err := settings.SentimentThreshold(); err != nil {
			return err
		}
	}
	if _, ok := values[domain.SettingPollInterval]; ok {
		if _, err := settings.PollInterval(); err != nil {
			return err
		}
	}
	return nil
}

// loadLead fetches the lead named by the id path value, rendering errors itself
func (s *Server) loadLead(w http.ResponseWriter, r *http.Request) (*domain.Lead, bool) {
	id, err := pathID(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return nil, false
	}
	return s.getLead(w, r, id)
}

// leadFromBody fetches the lead named by lead_id of a json body. Channel, if
// not nil, receives the optional channel field.
func (s *Server) leadFromBody(w http.ResponseWriter, r *http.Request, channel *string) (*domain.Lead, bool) {
	var req struct {
		LeadID  int64  `json:"lead_id"`
		Channel string `json:"channel"`
	}
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return nil, false
	}
	if req.LeadID <= 0 {
		renderError(w, r, errors.New("lead_id required"), http.StatusBadRequest)
		return nil, false
	}
	if channel != nil {
		*channel = req.Channel
	}
	return s.getLead(w, r, req.LeadID)
}

func (s *Server) getLead(w http.ResponseWriter, r *http.Request, id int64) (*domain.Lead, bool) {
	lead, err := s.db.GetLead(r.Context(), id)
	if err != nil {
		s.renderStoreError(w, r, "get lead", err)
		return nil, false
	}
	return lead, true
}

// renderStoreError maps missing records to 404, everything else to 500
func (s *Server) renderStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		renderError(w, r, errors.New("lead not found"), http.StatusNotFound)
		return
	}
	log.Printf("[ERROR] failed to %s: %v", op, err)
	renderError(w, r, err, http.StatusInternalServerError)
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
