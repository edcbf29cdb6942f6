package domain

import (
	"fmt"
	"strings"
)

// Lexicon scores single words. Words without a score are Unknown.
type Lexicon interface {
	WordSentiment(word string) Sentiment
}

// LexiconFunc adapts a function to the Lexicon interface.
type LexiconFunc func(word string) Sentiment

func (f LexiconFunc) WordSentiment(word string) Sentiment { return f(word) }

// MapLexicon is an in-memory lexicon. Build it with NewMapLexicon so every
// entry is validated.
type MapLexicon map[string]Sentiment

// NewMapLexicon validates raw word scores and returns them as a lexicon.
func NewMapLexicon(scores map[string]float64) (MapLexicon, error) {
	lex := make(MapLexicon, len(scores))
	for word, v := range scores {
		s, err := Known(v)
		if err != nil {
			return nil, fmt.Errorf("word %q: %w", word, err)
		}
		lex[word] = s
	}
	return lex, nil
}

func (m MapLexicon) WordSentiment(word string) Sentiment {
	return m[word]
}

// Scores returns the known score of every word.
func (m MapLexicon) Scores() map[string]float64 {
	out := make(map[string]float64, len(m))
	for word, s := range m {
		if v, ok := s.Value(); ok {
			out[word] = v
		}
	}
	return out
}

// Tokenizer splits record text into words.
type Tokenizer func(text string) []string

// ExtractWords returns the maximal runs of ASCII letters in text. Every other
// character, including digits and non-ASCII letters, separates words.
func ExtractWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < 'A' || r > 'Z')
	})
}
