// Package sentiment maps comment text to a three-way sentiment label
// using a pluggable polarity scorer.
package sentiment

import (
	"fmt"

	"github.com/ytcomments/comment-sentiment-bot/internal/models"
)

// Scorer returns a polarity score for text, typically in [-1.0, 1.0].
// Implementations must be total: empty or unscorable text yields 0.
type Scorer interface {
	Name() string
	Score(text string) float64
}

// Label maps a polarity score to a sentiment label. Exactly zero is Neutral.
func Label(polarity float64) models.Sentiment {
	switch {
	case polarity > 0:
		return models.SentimentPositive
	case polarity < 0:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Classifier turns comment text into a sentiment label
type Classifier struct {
	scorer Scorer
}

// NewClassifier creates a classifier backed by scorer
func NewClassifier(scorer Scorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Classify scores text and maps the score to a label
func (c *Classifier) Classify(text string) models.Sentiment {
	return Label(c.scorer.Score(text))
}

// ScorerName returns the name of the underlying scorer
func (c *Classifier) ScorerName() string {
	return c.scorer.Name()
}

// NewScorer builds the scorer selected by backend
func NewScorer(backend, ollamaHost, ollamaModel string) (Scorer, error) {
	switch backend {
	case "vader", "":
		return NewVaderScorer(), nil
	case "lexicon":
		return NewLexiconScorer(), nil
	case "ollama":
		return NewOllamaScorer(ollamaHost, ollamaModel), nil
	default:
		return nil, fmt.Errorf("unknown sentiment backend %q", backend)
	}
}
