package caption

import (
	"fmt"
	"strings"
)

// Cue represents a single timed caption entry as decoded from a subtitle
// track. Start and End are fractional seconds from the beginning of the
// video. Raw cues from auto-generated tracks may be malformed (Start >= End)
// and may carry internal line breaks in Text.
type Cue struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Validate checks if the Cue has well-formed values. Raw cues from a caption
// track may legitimately fail this check; the merger corrects them rather
// than discarding them.
func (c *Cue) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	if c.Start < 0 {
		return fmt.Errorf("start cannot be negative")
	}

	if c.End <= c.Start {
		return fmt.Errorf("end must be greater than start")
	}

	return nil
}

// Duration returns the cue's display duration in seconds.
func (c *Cue) Duration() float64 {
	return c.End - c.Start
}

// Lines splits the cue text on line breaks.
func (c *Cue) Lines() []string {
	return strings.Split(c.Text, "\n")
}
