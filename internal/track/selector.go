package track

import (
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ErrNoTrackFound indicates the catalog contains no caption track in any of
// the prioritized languages. The condition is terminal for the video, not
// retriable.
var ErrNoTrackFound = errors.New("no caption track found")

// ErrNoUsableFormat indicates a language matched but none of its tracks
// satisfies the format priority and usability filter. Captions exist but are
// undecodable.
var ErrNoUsableFormat = errors.New("no usable caption format")

// segmented-manifest delivery cannot be fetched in a single shot
const segmentedProtocol = "m3u8_native"

// Selector deterministically picks the single caption track to decode from a
// video's catalog. Manual subtitles win over automatic captions; within each
// origin set, languages are tried in a fixed priority order.
type Selector struct {
	subtitleLanguages    []string
	autoCaptionLanguages []string
	formats              []string
	logger               *zap.Logger
}

// NewSelector creates a Selector with the default English language and
// format priorities.
func NewSelector() *Selector {
	return NewSelectorWithLogger(zap.NewNop())
}

// NewSelectorWithLogger creates a Selector with the default priorities and
// the given logger.
func NewSelectorWithLogger(logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Selector{
		subtitleLanguages:    []string{"en-US", "en-CA", "en"},
		autoCaptionLanguages: []string{"en-orig", "en-US", "en-CA", "en"},
		formats:              []string{"vtt", "srt", "ttml"},
		logger:               logger,
	}
}

// NewSelectorWithPriorities creates a Selector with custom language priority
// lists. Empty lists fall back to the defaults.
func NewSelectorWithPriorities(subtitleLanguages, autoCaptionLanguages []string, logger *zap.Logger) *Selector {
	s := NewSelectorWithLogger(logger)
	if len(subtitleLanguages) > 0 {
		s.subtitleLanguages = subtitleLanguages
	}
	if len(autoCaptionLanguages) > 0 {
		s.autoCaptionLanguages = autoCaptionLanguages
	}
	return s
}

// Select picks the single track to decode from the catalog. It returns
// ErrNoTrackFound when no prioritized language matches at all, and
// ErrNoUsableFormat when a language matched but none of its tracks is
// usable.
func (s *Selector) Select(catalog *Catalog) (Track, error) {
	if catalog == nil {
		return Track{}, ErrNoTrackFound
	}

	candidates := s.selectLanguage(catalog)
	if candidates == nil {
		s.logger.Debug("no caption language matched",
			zap.Int("subtitle_languages", len(catalog.Subtitles)),
			zap.Int("auto_caption_languages", len(catalog.AutomaticCaptions)))
		return Track{}, ErrNoTrackFound
	}

	for _, format := range s.formats {
		for _, tr := range candidates {
			if !usable(tr) {
				continue
			}
			if tr.Ext == format {
				s.logger.Debug("selected caption track",
					zap.String("name", tr.Name),
					zap.String("format", tr.Ext))
				return tr, nil
			}
		}
	}

	return Track{}, ErrNoUsableFormat
}

// selectLanguage returns the track list for the highest-priority language, or
// nil when nothing matches.
func (s *Selector) selectLanguage(catalog *Catalog) []Track {
	if len(catalog.Subtitles) > 0 {
		for _, lang := range s.subtitleLanguages {
			if tracks := catalog.Subtitles[lang]; len(tracks) > 0 {
				return tracks
			}
		}

		// Any other en-* manual subtitle. Keys are sorted so the pick is
		// deterministic regardless of map iteration order.
		keys := make([]string, 0, len(catalog.Subtitles))
		for lang := range catalog.Subtitles {
			keys = append(keys, lang)
		}
		sort.Strings(keys)

		for _, lang := range keys {
			if strings.HasPrefix(lang, "en-") && len(catalog.Subtitles[lang]) > 0 {
				return catalog.Subtitles[lang]
			}
		}
	}

	for _, lang := range s.autoCaptionLanguages {
		if tracks := catalog.AutomaticCaptions[lang]; len(tracks) > 0 {
			return tracks
		}
	}

	return nil
}

// usable reports whether a track can be fetched and decoded in a single
// shot: it must carry a display name and must not use segmented-manifest
// delivery.
func usable(tr Track) bool {
	return tr.Name != "" && tr.Protocol != segmentedProtocol
}
