package domain

// CollectionStats counts the outcome of one adapter run
type CollectionStats struct {
	Platform   string `json:"platform"`
	Source     string `json:"source"`
	Fetched    int    `json:"items_fetched"`
	Inserted   int    `json:"posts_inserted"`
	Duplicates int    `json:"duplicates_skipped"`
	Filtered   int    `json:"filtered_out"`
	Errors     int    `json:"errors"`
	Skipped    bool   `json:"skipped,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Add accumulates other counters into s, keeping the first error message
func (s *CollectionStats) Add(other CollectionStats) {
	s.Fetched += other.Fetched
	s.Inserted += other.Inserted
	s.Duplicates += other.Duplicates
	s.Filtered += other.Filtered
	s.Errors += other.Errors
	if s.Error == "" {
		s.Error = other.Error
	}
}

// AnalysisStats counts the outcome of one analysis sweep
type AnalysisStats struct {
	Fetched          int `json:"posts_fetched"`
	SentimentPassed  int `json:"sentiment_passed"`
	SentimentSkipped int `json:"sentiment_skipped"`
	Frustrated       int `json:"frustrated_detected"`
	NotFrustrated    int `json:"not_frustrated"`
	LeadsCreated     int `json:"leads_created"`
	Errors           int `json:"errors"`
}
