package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/region-sentiment/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

// maxLineBytes bounds a single record line.
const maxLineBytes = 1 << 20

// RecordSource reads tab-separated records from a file on every call, so edits
// to the file are picked up by the next run.
//
// Each line has the form:
//
//	[lat, lon]<TAB>ignored<TAB>YYYY-MM-DD HH:MM:SS<TAB>text
type RecordSource struct {
	path string
}

// NewRecordSource creates a source over the file at path.
func NewRecordSource(path string) *RecordSource {
	return &RecordSource{path: path}
}

// Records returns the records whose text contains term as a whole-word
// phrase. An empty term returns every record.
func (s *RecordSource) Records(ctx context.Context, term string) ([]domain.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open records file: %w", err)
	}
	defer f.Close()

	return ReadRecords(ctx, f, term)
}

// ReadRecords parses records from r, keeping those that match term.
func ReadRecords(ctx context.Context, r io.Reader, term string) ([]domain.Record, error) {
	match := termMatcher(term)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []domain.Record
	line := 0
	for scanner.Scan() {
		line++
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := parseRecordLine(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if match(rec.Text) {
			out = append(out, rec)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return out, nil
}

func parseRecordLine(line string) (domain.Record, error) {
	fields := strings.SplitN(line, "\t", 4)
	if len(fields) != 4 {
		return domain.Record{}, fmt.Errorf("expected 4 tab-separated fields, got %d", len(fields))
	}

	lat, lon, err := parseLocation(fields[0])
	if err != nil {
		return domain.Record{}, err
	}

	// An unparsable timestamp only loses the time, not the record.
	ts, err := time.ParseInLocation(timestampLayout, strings.TrimSpace(fields[2]), time.UTC)
	if err != nil {
		ts = time.Time{}
	}

	return domain.NewRecord(strings.ToLower(fields[3]), ts, lat, lon), nil
}

func parseLocation(s string) (lat, lon float64, err error) {
	inner, ok := strings.CutPrefix(strings.TrimSpace(s), "[")
	if ok {
		inner, ok = strings.CutSuffix(inner, "]")
	}
	if !ok {
		return 0, 0, fmt.Errorf("location %q: expected [lat, lon]", s)
	}
	latStr, lonStr, ok := strings.Cut(inner, ",")
	if !ok {
		return 0, 0, fmt.Errorf("location %q: expected [lat, lon]", s)
	}
	if lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64); err != nil {
		return 0, 0, fmt.Errorf("location %q: latitude: %w", s, err)
	}
	if lon, err = strconv.ParseFloat(strings.TrimSpace(lonStr), 64); err != nil {
		return 0, 0, fmt.Errorf("location %q: longitude: %w", s, err)
	}
	return lat, lon, nil
}

// termMatcher matches the lowercased term as a whole-word phrase.
func termMatcher(term string) func(string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return func(string) bool { return true }
	}
	re := regexp.MustCompile(`(^|[^a-z])` + regexp.QuoteMeta(term) + `($|[^a-z])`)
	return re.MatchString
}
