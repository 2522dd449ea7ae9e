package sentiment

import (
	"strings"
	"unicode"
)

// LexiconScorer counts positive and negative words. The score is
// (positive - negative) / (positive + negative), or 0 when none match.
type LexiconScorer struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

var defaultPositiveWords = []string{
	"good", "great", "excellent", "love", "loved", "awesome", "fantastic", "helpful",
	"amazing", "best", "nice", "beautiful", "perfect", "like", "enjoyed", "thanks",
	"wonderful", "brilliant", "cool", "happy",
}

var defaultNegativeWords = []string{
	"bad", "terrible", "awful", "hate", "hated", "broken", "worst", "boring",
	"poor", "ugly", "sad", "annoying", "stupid", "useless", "horrible", "disappointing",
	"wrong", "fail", "problem", "dislike",
}

// NewLexiconScorer creates a scorer with the built-in word lists
func NewLexiconScorer() *LexiconScorer {
	return NewLexiconScorerWithWords(defaultPositiveWords, defaultNegativeWords)
}

// NewLexiconScorerWithWords creates a scorer with custom word lists
func NewLexiconScorerWithWords(positive, negative []string) *LexiconScorer {
	l := &LexiconScorer{
		positive: make(map[string]struct{}, len(positive)),
		negative: make(map[string]struct{}, len(negative)),
	}
	for _, w := range positive {
		l.positive[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range negative {
		l.negative[strings.ToLower(w)] = struct{}{}
	}
	return l
}

func (l *LexiconScorer) Name() string {
	return "lexicon"
}

func (l *LexiconScorer) Score(text string) float64 {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})

	positiveCount := 0
	negativeCount := 0
	for _, word := range words {
		if _, ok := l.positive[word]; ok {
			positiveCount++
		}
		if _, ok := l.negative[word]; ok {
			negativeCount++
		}
	}

	total := positiveCount + negativeCount
	if total == 0 {
		return 0
	}
	return float64(positiveCount-negativeCount) / float64(total)
}
