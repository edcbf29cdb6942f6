package domain

import (
	"fmt"
	"time"
)

// Record is a geotagged short text, e.g. a tweet. Records are passed by value
// and never modified after construction.
type Record struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp,omitzero"`
	Location  Position  `json:"location"`
}

// NewRecord builds a record at (lat, lon). A zero timestamp means the time is unknown.
func NewRecord(text string, ts time.Time, lat, lon float64) Record {
	return Record{Text: text, Timestamp: ts, Location: Position{Lat: lat, Lon: lon}}
}

// HasTimestamp reports whether the record carries a posting time.
func (r Record) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}

// String renders the record as `"text" @ (lat, lon)`.
func (r Record) String() string {
	return fmt.Sprintf("\"%s\" @ (%v, %v)", r.Text, r.Location.Lat, r.Location.Lon)
}
