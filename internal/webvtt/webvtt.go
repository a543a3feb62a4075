// Package webvtt decodes WebVTT caption text into raw cues. It is the input
// adapter in front of the merger: it keeps the cues' internal line breaks
// and timing exactly as the track delivered them, stripping only inline
// markup.
package webvtt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"yttranscript/internal/caption"
	"yttranscript/internal/timestamp"
)

var (
	// "00:00:00.160 --> 00:00:02.350" with optional cue settings after
	cueTiming = regexp.MustCompile(`^(\S+)\s+-->\s+(\S+)`)

	// inline tags: <c>, </c>, <00:00:01.000>, <v Speaker>
	inlineTags = regexp.MustCompile(`<[^>]*>`)

	entities = strings.NewReplacer(
		"&nbsp;", " ",
		"&lrm;", "",
		"&rlm;", "",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&#39;", "'",
		"&quot;", `"`,
	)
)

// Parse decodes WebVTT content into raw cues. Multi-line cue payloads keep
// their line breaks; cues whose payload is empty after tag stripping are not
// returned. Timestamps that match the cue timing shape but fail to parse
// wrap timestamp.ErrMalformedTimestamp.
func Parse(r io.Reader) ([]caption.Cue, error) {
	var cues []caption.Cue

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// header, cue identifiers, blank separators and NOTE/STYLE/REGION
		// blocks all lack a timing arrow and are skipped
		matches := cueTiming.FindStringSubmatch(line)
		if matches == nil {
			continue
		}

		start, err := timestamp.Parse(matches[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		end, err := timestamp.Parse(matches[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		var textLines []string
		for scanner.Scan() {
			lineNo++
			textLine := strings.TrimSpace(scanner.Text())
			if textLine == "" {
				break
			}

			cleaned := strings.TrimSpace(entities.Replace(inlineTags.ReplaceAllString(textLine, "")))
			if cleaned != "" {
				textLines = append(textLines, cleaned)
			}
		}

		if len(textLines) == 0 {
			continue
		}

		cues = append(cues, caption.Cue{
			Start: start,
			End:   end,
			Text:  strings.Join(textLines, "\n"),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read caption content: %w", err)
	}

	return cues, nil
}

// ParseString decodes WebVTT content from a string.
func ParseString(content string) ([]caption.Cue, error) {
	return Parse(strings.NewReader(content))
}

// ParseFile decodes a WebVTT file from disk.
func ParseFile(path string) ([]caption.Cue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open caption file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}
