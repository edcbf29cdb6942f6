package domain

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
)

// RegionRow summarizes one region of an assignment.
type RegionRow struct {
	Region      string    `json:"region"`
	Center      Position  `json:"center"`
	RecordCount int       `json:"record_count"`
	Sentiment   Sentiment `json:"sentiment"`
}

// Point is a record location with its known sentiment.
type Point struct {
	Location  Position  `json:"location"`
	Sentiment Sentiment `json:"sentiment"`
}

// Report is the result of analysing the records matching one query term.
type Report struct {
	ID          string      `json:"id"`
	Term        string      `json:"term"`
	GeneratedAt time.Time   `json:"generated_at"`
	RecordCount int         `json:"record_count"`
	Regions     []RegionRow `json:"regions"`
	Points      []Point     `json:"points"`
}

// NewReport assembles a report from an assignment. Every assigned region gets a
// row, sorted by id; rows for regions without known sentiment carry Unknown.
// Points list the records whose own sentiment is known.
func NewReport(term string, records []Record, assignment Assignment, centers CenterMap, a *Analyzer) Report {
	// Each record is scored once and shared by the region rows and the points.
	scored := make(map[Record]Sentiment, len(records))
	score := func(r Record) Sentiment {
		s, ok := scored[r]
		if !ok {
			s = a.RecordSentiment(r)
			scored[r] = s
		}
		return s
	}
	sentiments := averageSentiments(assignment, score)

	rows := make([]RegionRow, 0, len(assignment))
	for name, group := range assignment {
		rows = append(rows, RegionRow{
			Region:      name,
			Center:      centers[name],
			RecordCount: len(group),
			Sentiment:   sentiments[name],
		})
	}
	slices.SortFunc(rows, func(x, y RegionRow) int { return cmp.Compare(x.Region, y.Region) })

	points := make([]Point, 0, len(records))
	for _, r := range records {
		if s := score(r); s.IsKnown() {
			points = append(points, Point{Location: r.Location, Sentiment: s})
		}
	}

	return Report{
		ID:          uuid.NewString(),
		Term:        term,
		GeneratedAt: clock.Now().UTC(),
		RecordCount: len(records),
		Regions:     rows,
		Points:      points,
	}
}

// Sentiments returns the known per-region sentiments of the report.
func (r Report) Sentiments() RegionSentimentMap {
	out := make(RegionSentimentMap, len(r.Regions))
	for _, row := range r.Regions {
		if row.Sentiment.IsKnown() {
			out[row.Region] = row.Sentiment
		}
	}
	return out
}

// UnknownRecords returns how many records had no known sentiment.
func (r Report) UnknownRecords() int {
	return r.RecordCount - len(r.Points)
}
