// Package merger removes the redundancy of auto-generated "rolling" caption
// tracks: consecutive cues repeat the trailing line of the previous cue,
// overlap in time, and carry short filler cues that are pure visual noise.
// The merger reduces such a cue sequence to clean, non-overlapping cues in a
// single left-to-right scan.
package merger

import (
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"yttranscript/internal/caption"
)

// ErrEmptyCueSequence indicates the scan was left with zero cues after
// normalization. Whether an empty transcript is an error is the caller's
// policy, not the merger's.
var ErrEmptyCueSequence = errors.New("empty cue sequence")

// Heuristic constants tuned to the YouTube auto-caption renderer's
// artifacts. They are not general truths about subtitle streams.
const (
	// a repeat shorter than this is a near-instantaneous visual flicker
	shortDupWindow = 0.15

	// cues with at most this many tokens are folded into the previous cue
	// when they do not continue its last line
	annotationMaxTokens = 2

	// a lone line longer than this many characters is treated as a word that
	// must not be re-split across a line break
	singleWordMinLen = 2

	// gap left between cues when correcting an overlap
	overlapGap = 0.001
)

// stepOutcome tags what a single scan step did with the incoming cue.
type stepOutcome int

const (
	// cue discarded, pending untouched apart from an end extension
	outcomeDropped stepOutcome = iota
	// cue folded into pending, pending extended in place
	outcomeMergedIntoPending
	// cue became the new pending; the previous pending was emitted, unless
	// the step flagged it as absorbed
	outcomeAdvanced
)

// Merger deduplicates an ordered raw cue sequence. It is a pure transform
// with no state between calls and is safe to use concurrently on independent
// inputs.
type Merger struct {
	logger *zap.Logger
}

// NewMerger creates a Merger with a no-op logger.
func NewMerger() *Merger {
	return &Merger{logger: zap.NewNop()}
}

// NewMergerWithLogger creates a Merger with the given logger.
func NewMergerWithLogger(logger *zap.Logger) *Merger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Merger{logger: logger}
}

// Merge scans the raw cue sequence left to right, carrying one pending cue
// that is progressively extended or finalized, and returns the reduced
// sequence. The input is never mutated; output cues are new values, some
// inheriting timing from earlier inputs by extension. Returns
// ErrEmptyCueSequence when nothing survives normalization.
func (m *Merger) Merge(cues []caption.Cue) ([]caption.Cue, error) {
	var pending *caption.Cue
	out := make([]caption.Cue, 0, len(cues))

	dropped := 0
	folded := 0

	for _, raw := range cues {
		c := raw

		// The first cue only seeds the pending slot.
		if pending == nil {
			pending = &c
			continue
		}

		c.Text = strings.TrimSpace(c.Text)
		if c.Text == "" {
			dropped++
			continue
		}

		outcome, suppressEmit := m.step(pending, &c)

		switch outcome {
		case outcomeDropped:
			dropped++
			continue
		case outcomeMergedIntoPending:
			folded++
			continue
		case outcomeAdvanced:
			if !suppressEmit {
				emit(&out, *pending)
			}
			pending = &c
		}
	}

	if pending != nil {
		emit(&out, *pending)
	}

	if len(out) == 0 {
		return nil, ErrEmptyCueSequence
	}

	m.logger.Debug("merged cue sequence",
		zap.Int("input_cues", len(cues)),
		zap.Int("output_cues", len(out)),
		zap.Int("dropped", dropped),
		zap.Int("folded", folded))

	return out, nil
}

// step applies the dedup rules to one incoming cue against the pending cue.
// It may rewrite c's text and timing and may extend pending's end. The
// returned suppressEmit flag suppresses pending's emission for this step
// only: c has absorbed pending's content or timing and replaces it outright.
func (m *Merger) step(pending, c *caption.Cue) (stepOutcome, bool) {
	// Near-instantaneous repeat of text already showing: pure visual noise.
	if c.Duration() < shortDupWindow && strings.Contains(pending.Text, c.Text) {
		pending.End = c.End
		return outcomeDropped, false
	}

	// The mirror case: pending was a near-instantaneous flicker whose text
	// the incoming cue already contains in full. The incoming cue takes over
	// pending's start and pending is never emitted.
	if pending.Duration() < shortDupWindow && strings.Contains(c.Text, pending.Text) {
		c.Start = pending.Start
		return outcomeAdvanced, true
	}

	currentLines := c.Lines()
	lastLines := pending.Lines()

	suppressEmit := false

	if currentLines[0] == lastLines[len(lastLines)-1] {
		// Rolling-caption overlap: c's first line was already shown as
		// pending's last line.
		if len(lastLines) == 1 && !strings.Contains(lastLines[0], " ") && len(lastLines[0]) > singleWordMinLen {
			// Pending is one short word about to be re-split across a line
			// break; re-attach the duplicated line with a space instead and
			// let c absorb pending without a separate emission.
			suppressEmit = true
			c.Text = currentLines[0] + " " + strings.Join(currentLines[1:], "\n")
		} else {
			c.Text = strings.Join(currentLines[1:], "\n")
		}
	} else if len(strings.Split(c.Text, " ")) <= annotationMaxTokens {
		// Not a continuation and at most two tokens: a short annotation
		// (title, interjection) folded into pending.
		pending.End = c.End
		text := c.Text
		if text[0] != ' ' {
			text = " " + text
		}
		pending.Text += text
		return outcomeMergedIntoPending, false
	}

	// Overlap correction: shrink pending to leave a 1 ms gap before c.
	if c.Start <= pending.End {
		pending.End = math.Max(c.Start-overlapGap, 0)
	}

	// Order correction: a malformed cue has its bounds swapped, not dropped.
	if c.Start >= c.End {
		m.logger.Debug("corrected reversed cue bounds",
			zap.Float64("start", c.Start),
			zap.Float64("end", c.End))
		c.Start, c.End = c.End, c.Start
	}

	return outcomeAdvanced, suppressEmit
}

// emit appends a finalized cue, skipping cues whose text emptied out after a
// continuation rewrite consumed their only line.
func emit(out *[]caption.Cue, c caption.Cue) {
	if strings.TrimSpace(c.Text) == "" {
		return
	}
	*out = append(*out, c)
}
