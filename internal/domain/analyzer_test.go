package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	lex, err := NewMapLexicon(map[string]float64{
		"good":  0.5,
		"bad":   -0.5,
		"love":  0.75,
		"hate":  -0.875,
		"happy": 1,
	})
	require.NoError(t, err)
	return NewAnalyzer(lex, nil)
}

func TestAnalyzer_RecordSentiment(t *testing.T) {
	a := testAnalyzer(t)

	tests := []struct {
		name  string
		text  string
		want  float64
		known bool
	}{
		{"single word", "i love my job", 0.75, true},
		{"mean of scored words", "good and happy", 0.75, true},
		{"cancelling words are known zero", "good bad", 0, true},
		{"no scored words", "just words here", 0, false},
		{"empty text", "", 0, false},
		{"repeated words count twice", "hate hate love", (-0.875*2 + 0.75) / 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := a.RecordSentiment(NewRecord(tt.text, testTime, 0, 0))
			v, ok := s.Value()
			assert.Equal(t, tt.known, ok)
			if tt.known {
				assert.InDelta(t, tt.want, v, 1e-12)
			}
		})
	}
}

func TestAnalyzer_RegionSentiment(t *testing.T) {
	a := testAnalyzer(t)

	t.Run("unknown records are skipped", func(t *testing.T) {
		s := a.RegionSentiment([]Record{
			NewRecord("good", testTime, 0, 0),
			NewRecord("nothing here", testTime, 0, 0),
			NewRecord("happy", testTime, 0, 0),
		})
		v, ok := s.Value()
		require.True(t, ok)
		assert.InDelta(t, 0.75, v, 1e-12)
	})

	t.Run("no known records", func(t *testing.T) {
		s := a.RegionSentiment([]Record{NewRecord("nothing", testTime, 0, 0)})
		assert.False(t, s.IsKnown())
	})
}

func TestAnalyzer_AverageSentiments(t *testing.T) {
	a := testAnalyzer(t)
	assignment := Assignment{
		"POS":     {NewRecord("love", testTime, 0, 0), NewRecord("happy", testTime, 0, 0)},
		"NEUTRAL": {NewRecord("good bad", testTime, 0, 0)},
		"SILENT":  {NewRecord("words without scores", testTime, 0, 0)},
	}

	got := a.AverageSentiments(assignment)

	require.Len(t, got, 2)
	assert.InDelta(t, 0.875, got["POS"].value, 1e-12)
	assert.Equal(t, MustKnown(0), got["NEUTRAL"])
	assert.NotContains(t, got, "SILENT")
}

func TestAnalyzer_CustomTokenizer(t *testing.T) {
	lex, err := NewMapLexicon(map[string]float64{"good-ish": 0.25})
	require.NoError(t, err)
	a := NewAnalyzer(lex, strings.Fields)

	assert.Equal(t, []string{"good-ish", "day"}, a.Words("good-ish day"))
	assert.Equal(t, MustKnown(0.25), a.RecordSentiment(NewRecord("good-ish day", testTime, 0, 0)))
	assert.Equal(t, MustKnown(0.25), a.WordSentiment("good-ish"))
}

func TestAnalyzer_ScoredWords(t *testing.T) {
	a := testAnalyzer(t)

	got := a.ScoredWords("I LOVE a Good day, not a BAD one. love!")
	assert.Equal(t, []WordScore{
		{Word: "love", Score: 0.75},
		{Word: "good", Score: 0.5},
		{Word: "bad", Score: -0.5},
		{Word: "love", Score: 0.75},
	}, got)

	assert.Empty(t, a.ScoredWords("nothing scored here"))
}
