package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Sentiment is either Unknown or a known score in [-1, 1]. The zero value is
// Unknown, which is distinct from a known score of 0.
type Sentiment struct {
	value float64
	known bool
}

// Unknown returns a sentiment carrying no information.
func Unknown() Sentiment {
	return Sentiment{}
}

// Known returns a sentiment with score v, failing when v is outside [-1, 1].
func Known(v float64) (Sentiment, error) {
	// The negated form also rejects NaN.
	if !(v >= -1 && v <= 1) {
		return Sentiment{}, fmt.Errorf("%w: %v", ErrInvalidSentimentValue, v)
	}
	return Sentiment{value: v, known: true}, nil
}

// MustKnown is like Known but panics on an invalid score. Intended for constants.
func MustKnown(v float64) Sentiment {
	s, err := Known(v)
	if err != nil {
		panic(err)
	}
	return s
}

// IsKnown reports whether s carries a score.
func (s Sentiment) IsKnown() bool {
	return s.known
}

// Value returns the score and whether it is known.
func (s Sentiment) Value() (float64, bool) {
	return s.value, s.known
}

func (s Sentiment) String() string {
	if !s.known {
		return "unknown"
	}
	return strconv.FormatFloat(s.value, 'f', -1, 64)
}

// MarshalJSON encodes a known score as a number and Unknown as null.
func (s Sentiment) MarshalJSON() ([]byte, error) {
	if !s.known {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON decodes null as Unknown and validates numbers.
func (s *Sentiment) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = Unknown()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode sentiment: %w", err)
	}
	known, err := Known(v)
	if err != nil {
		return err
	}
	*s = known
	return nil
}

// RegionSentimentMap maps a region id to its known aggregate sentiment.
type RegionSentimentMap map[string]Sentiment
