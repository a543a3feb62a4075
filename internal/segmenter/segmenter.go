// Package segmenter turns a deduplicated cue sequence into final transcript
// segments, annotating each with a separator that encodes how long the pause
// before it was. Downstream formatting uses the separator to decide between
// word, line and paragraph breaks.
package segmenter

import (
	"fmt"
	"regexp"
	"strings"

	"yttranscript/internal/caption"
	"yttranscript/internal/merger"
	"yttranscript/internal/timestamp"
)

// Separator values, ordered by the length of the pause they encode.
const (
	SeparatorNone      = ""
	SeparatorWord      = " "
	SeparatorLine      = "\n"
	SeparatorParagraph = "\n\n"
)

// Default pause thresholds in seconds.
const (
	DefaultParagraphGap = 3.0
	DefaultLineGap      = 1.0
)

var spaceRuns = regexp.MustCompile(` +`)

// Segment is one deduplicated, single-line unit of transcript text. Start
// and End are clock-formatted timestamps; StartSec and EndSec are the same
// instants as fractional seconds. Separator describes the gap before this
// segment relative to the previous one and is always empty for the first
// segment.
type Segment struct {
	Start     string  `json:"start"`
	End       string  `json:"end"`
	StartSec  float64 `json:"start_sec"`
	EndSec    float64 `json:"end_sec"`
	Separator string  `json:"separator"`
	Text      string  `json:"text"`
}

// Validate checks if the Segment has valid values.
func (s *Segment) Validate() error {
	if s.Text == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if strings.ContainsAny(s.Text, "\n") {
		return fmt.Errorf("text must be a single line")
	}

	switch s.Separator {
	case SeparatorNone, SeparatorWord, SeparatorLine, SeparatorParagraph:
	default:
		return fmt.Errorf("invalid separator %q", s.Separator)
	}

	return nil
}

// Segmenter derives segments from merged cues using configurable pause
// thresholds. Like the merger it holds no per-call state and is safe for
// concurrent use on independent inputs.
type Segmenter struct {
	paragraphGap float64
	lineGap      float64
}

// NewSegmenter creates a Segmenter with the default pause thresholds.
func NewSegmenter() *Segmenter {
	return &Segmenter{paragraphGap: DefaultParagraphGap, lineGap: DefaultLineGap}
}

// NewSegmenterWithGaps creates a Segmenter with custom pause thresholds.
// Non-positive values fall back to the defaults.
func NewSegmenterWithGaps(paragraphGap, lineGap float64) *Segmenter {
	s := NewSegmenter()
	if paragraphGap > 0 {
		s.paragraphGap = paragraphGap
	}
	if lineGap > 0 {
		s.lineGap = lineGap
	}
	return s
}

// Segments converts the merged cue sequence into transcript segments. Cue
// text is collapsed to a single line; timing is normalized to millisecond
// precision through the clock format. Returns merger.ErrEmptyCueSequence for
// an empty input.
func (sg *Segmenter) Segments(cues []caption.Cue) ([]Segment, error) {
	if len(cues) == 0 {
		return nil, merger.ErrEmptyCueSequence
	}

	segments := make([]Segment, 0, len(cues))

	for _, cue := range cues {
		text := strings.ReplaceAll(cue.Text, "\n", " ")
		text = spaceRuns.ReplaceAllString(strings.TrimSpace(text), " ")

		start := timestamp.Format(cue.Start)
		end := timestamp.Format(cue.End)

		startSec, err := timestamp.Parse(start)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize cue start: %w", err)
		}
		endSec, err := timestamp.Parse(end)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize cue end: %w", err)
		}

		separator := SeparatorNone
		if len(segments) > 0 {
			separator = sg.separator(startSec - segments[len(segments)-1].EndSec)
		}

		segments = append(segments, Segment{
			Start:     start,
			End:       end,
			StartSec:  startSec,
			EndSec:    endSec,
			Separator: separator,
			Text:      text,
		})
	}

	return segments, nil
}

// separator maps the pause before a segment to its separator.
func (sg *Segmenter) separator(gap float64) string {
	switch {
	case gap > sg.paragraphGap:
		return SeparatorParagraph
	case gap > sg.lineGap:
		return SeparatorLine
	default:
		return SeparatorWord
	}
}
