package domain

import (
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Analyzer scores records against a lexicon. It holds no mutable state and is
// safe for concurrent use when the lexicon is.
type Analyzer struct {
	lexicon  Lexicon
	tokenize Tokenizer
}

// NewAnalyzer creates an Analyzer. A nil tokenizer selects ExtractWords.
func NewAnalyzer(lexicon Lexicon, tokenize Tokenizer) *Analyzer {
	if tokenize == nil {
		tokenize = ExtractWords
	}
	return &Analyzer{lexicon: lexicon, tokenize: tokenize}
}

// Words returns the tokens of text in order.
func (a *Analyzer) Words(text string) []string {
	return a.tokenize(text)
}

// WordSentiment scores a single word.
func (a *Analyzer) WordSentiment(word string) Sentiment {
	return a.lexicon.WordSentiment(word)
}

// RecordSentiment averages the known scores of the record's words. It is
// Unknown when no word has a score; a mean of exactly 0 is still known.
func (a *Analyzer) RecordSentiment(r Record) Sentiment {
	words := a.Words(r.Text)
	scores := make([]float64, 0, len(words))
	for _, w := range words {
		if v, ok := a.WordSentiment(w).Value(); ok {
			scores = append(scores, v)
		}
	}
	return mean(scores)
}

// RegionSentiment averages the known record sentiments of a group. It is
// Unknown when no record has a known sentiment.
func (a *Analyzer) RegionSentiment(records []Record) Sentiment {
	return regionSentiment(records, a.RecordSentiment)
}

func regionSentiment(records []Record, score func(Record) Sentiment) Sentiment {
	scores := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := score(r).Value(); ok {
			scores = append(scores, v)
		}
	}
	return mean(scores)
}

// AverageSentiments reduces an assignment to per-region sentiment. Regions
// whose records carry no known sentiment are left out; a neutral region is
// reported as a known 0.
func (a *Analyzer) AverageSentiments(assignment Assignment) RegionSentimentMap {
	return averageSentiments(assignment, a.RecordSentiment)
}

func averageSentiments(assignment Assignment, score func(Record) Sentiment) RegionSentimentMap {
	out := make(RegionSentimentMap, len(assignment))
	for name, records := range assignment {
		if s := regionSentiment(records, score); s.IsKnown() {
			out[name] = s
		}
	}
	return out
}

// WordScore is a word paired with its known score.
type WordScore struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// ScoredWords lowercases and tokenizes text, returning the words that have a
// known score in order of appearance. Repeated words are repeated.
func (a *Analyzer) ScoredWords(text string) []WordScore {
	words := a.Words(strings.ToLower(text))
	out := make([]WordScore, 0, len(words))
	for _, w := range words {
		if v, ok := a.WordSentiment(w).Value(); ok {
			out = append(out, WordScore{Word: w, Score: v})
		}
	}
	return out
}

// mean returns Unknown for an empty slice. Inputs are already in [-1, 1];
// the clamp absorbs rounding past the bounds.
func mean(values []float64) Sentiment {
	if len(values) == 0 {
		return Unknown()
	}
	v := floats.Sum(values) / float64(len(values))
	v = min(max(v, -1), 1)
	return Sentiment{value: v, known: true}
}
