package sentiment

import (
	"strings"
	"unicode/utf8"

	"github.com/jonreiter/govader"
)

// Analyzer scores text with the VADER lexicon. The lexicon is loaded once;
// after construction the analyzer is only read.
type Analyzer interface {
	Score(text string) float64
	Keywords(text string, n int) []string
}

type analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() Analyzer {
	return &analyzer{
		vader: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Score implements Analyzer. It returns the compound score in [-1,1].
func (a *analyzer) Score(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	return a.vader.PolarityScores(text).Compound
}

// Keywords implements Analyzer.
func (a *analyzer) Keywords(text string, n int) []string {
	return Keywords(text, n)
}

type Stats struct {
	Characters int
	Words      int
}

func TextStats(text string) Stats {
	return Stats{
		Characters: utf8.RuneCountInString(text),
		Words:      len(strings.Fields(text)),
	}
}
