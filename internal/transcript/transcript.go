// Package transcript projects transcript segments into the downstream JSON
// schema: per-segment millisecond offsets and durations plus a human-readable
// offset label, wrapped with the video's title and channel.
package transcript

import (
	"fmt"
	"math"

	"yttranscript/internal/segmenter"
)

// Entry is one transcript row in the downstream schema. Offset and Duration
// are milliseconds; OffsetText is an "H:MM:SS" label.
type Entry struct {
	Text       string `json:"text"`
	Offset     int    `json:"offset"`
	OffsetText string `json:"offsetText"`
	Duration   int    `json:"duration"`
}

// Validate checks if the Entry has valid values.
func (e *Entry) Validate() error {
	if e.Text == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if e.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}

	if e.Duration < 0 {
		return fmt.Errorf("duration cannot be negative")
	}

	return nil
}

// Document is the complete transcript output for one video.
type Document struct {
	Title      string  `json:"title"`
	Channel    string  `json:"channel"`
	Transcript []Entry `json:"transcript"`
}

// FromSegments projects segments into transcript entries. The projection is
// pure arithmetic: offset = round(start*1000), duration =
// round((end-start)*1000).
func FromSegments(segments []segmenter.Segment) []Entry {
	entries := make([]Entry, 0, len(segments))

	for _, s := range segments {
		entries = append(entries, Entry{
			Text:       s.Text,
			Offset:     int(math.Round(s.StartSec * 1000)),
			OffsetText: offsetLabel(s.StartSec),
			Duration:   int(math.Round((s.EndSec - s.StartSec) * 1000)),
		})
	}

	return entries
}

// offsetLabel renders whole seconds as "H:MM:SS" with unpadded hours.
func offsetLabel(totalSeconds float64) string {
	total := int(totalSeconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}
