package track

import (
	"encoding/json"
	"fmt"
	"io"
)

// Track is one candidate caption stream for a video, identified by its
// delivery format and display name. Field names follow the extractor's
// caption metadata dump.
type Track struct {
	Ext      string `json:"ext"`
	URL      string `json:"url"`
	Name     string `json:"name,omitempty"`
	Protocol string `json:"protocol,omitempty"`
}

// Catalog holds the caption tracks available for a single video, partitioned
// into manually authored subtitles and automatic captions, keyed by language
// code. Title and Channel carry the video metadata the downstream formatter
// attaches to the transcript.
type Catalog struct {
	Title             string             `json:"title"`
	Channel           string             `json:"channel"`
	Subtitles         map[string][]Track `json:"subtitles"`
	AutomaticCaptions map[string][]Track `json:"automatic_captions"`
}

// DecodeCatalog reads a video metadata JSON document and extracts the caption
// track catalog from it.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	if err := json.NewDecoder(r).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("failed to decode track catalog: %w", err)
	}
	return &catalog, nil
}
