package file

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/region-sentiment/internal/domain"
)

// LoadLexicon reads word,score rows from a CSV file.
func LoadLexicon(path string) (domain.MapLexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon file: %w", err)
	}
	defer f.Close()

	return ReadLexicon(f)
}

// ReadLexicon parses word,score rows. Words are lowercased; a later row for
// the same word replaces an earlier one.
func ReadLexicon(r io.Reader) (domain.MapLexicon, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	lex := make(domain.MapLexicon)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return lex, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read lexicon: %w", err)
		}
		line, _ := cr.FieldPos(0)

		word := strings.ToLower(strings.TrimSpace(row[0]))
		if word == "" {
			return nil, fmt.Errorf("lexicon line %d: empty word", line)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: score: %w", line, err)
		}
		s, err := domain.Known(v)
		if err != nil {
			return nil, fmt.Errorf("lexicon line %d: %w", line, err)
		}
		lex[word] = s
	}
}
