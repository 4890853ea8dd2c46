// Package sentiment scores short social text on a [-1, 1] scale with the VADER
// compound score.
package sentiment

import (
	"strings"

	"github.com/jonreiter/govader"
)

// Analyzer computes compound sentiment scores
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// Option customizes an Analyzer
type Option func(*Analyzer)

// WithLexicon adds or overrides word valences, values are expected in [-4, 4]
func WithLexicon(words map[string]float64) Option {
	return func(a *Analyzer) {
		for k, v := range words {
			a.vader.Lexicon[strings.ToLower(k)] = v
		}
	}
}

// New makes an analyzer with the stock VADER lexicon. Loading the lexicon is
// not cheap, make one analyzer and share it.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Passes reports whether text is negative enough to be worth classifying,
// i.e. its score is at or below threshold
func (a *Analyzer) Passes(text string, threshold float64) bool {
	return a.Score(text) <= threshold
}

// Score returns the compound score of text in [-1, 1], 0 for neutral or empty text
func (a *Analyzer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return a.vader.PolarityScores(text).Compound
}
