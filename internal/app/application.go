package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"yttranscript/internal/caption"
	"yttranscript/internal/config"
	"yttranscript/internal/logger"
	"yttranscript/internal/merger"
	"yttranscript/internal/segmenter"
	"yttranscript/internal/track"
	"yttranscript/internal/transcript"
	"yttranscript/internal/webvtt"
)

// Application wires the caption processing pipeline: track catalog decode,
// WebVTT parse, cue dedup merge, segmentation and transcript projection.
type Application struct {
	config    *config.Configuration
	logger    *zap.Logger
	selector  *track.Selector
	merger    *merger.Merger
	segmenter *segmenter.Segmenter
}

// NewApplication creates an application instance with all components
// initialized from configuration.
func NewApplication() (*Application, error) {
	var cfg *config.Configuration
	var err error

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		cfg, err = config.NewConfigurationFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.NewConfigurationFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load config from environment: %w", err)
		}
	}

	return NewApplicationWithConfig(cfg, logger.NewLogger()), nil
}

// NewApplicationWithConfig creates an application instance with the given
// configuration and logger.
func NewApplicationWithConfig(cfg *config.Configuration, zapLogger *zap.Logger) *Application {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}

	return &Application{
		config:    cfg,
		logger:    zapLogger,
		selector:  track.NewSelectorWithPriorities(cfg.GetSubtitleLanguages(), cfg.GetAutoCaptionLanguages(), zapLogger),
		merger:    merger.NewMergerWithLogger(zapLogger),
		segmenter: segmenter.NewSegmenterWithGaps(cfg.GetParagraphGapSeconds(), cfg.GetLineGapSeconds()),
	}
}

// Run executes the pipeline: an optional video metadata file supplies the
// caption track catalog and the title/channel envelope, and the caption file
// supplies the raw cues. The resulting transcript document is written to the
// configured output.
func (app *Application) Run(ctx context.Context, infoPath, captionPath string) error {
	catalog, err := app.loadCatalog(infoPath)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	cues, err := webvtt.ParseFile(captionPath)
	if err != nil {
		return fmt.Errorf("failed to parse caption file %s: %w", captionPath, err)
	}
	app.logger.Info("parsed caption file",
		zap.String("path", captionPath),
		zap.Int("raw_cues", len(cues)))

	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := app.BuildDocument(catalog, cues)
	if err != nil {
		return err
	}

	return app.writeDocument(doc)
}

// BuildDocument runs the pure core of the pipeline: merge, segment and
// project the raw cues, wrapped with the catalog's video metadata.
func (app *Application) BuildDocument(catalog *track.Catalog, cues []caption.Cue) (transcript.Document, error) {
	merged, err := app.merger.Merge(cues)
	if err != nil {
		if errors.Is(err, merger.ErrEmptyCueSequence) {
			app.logger.Warn("caption track contains no usable cues",
				zap.Int("raw_cues", len(cues)))
		}
		return transcript.Document{}, fmt.Errorf("failed to merge cues: %w", err)
	}

	segments, err := app.segmenter.Segments(merged)
	if err != nil {
		return transcript.Document{}, fmt.Errorf("failed to segment cues: %w", err)
	}

	app.logger.Info("built transcript",
		zap.Int("raw_cues", len(cues)),
		zap.Int("merged_cues", len(merged)),
		zap.Int("segments", len(segments)))

	doc := transcript.Document{
		Transcript: transcript.FromSegments(segments),
	}
	if catalog != nil {
		doc.Title = catalog.Title
		doc.Channel = catalog.Channel
	}

	return doc, nil
}

// loadCatalog decodes the metadata file and verifies a usable caption track
// exists. An empty path skips catalog handling entirely.
func (app *Application) loadCatalog(infoPath string) (*track.Catalog, error) {
	if infoPath == "" {
		return nil, nil
	}

	file, err := os.Open(infoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer file.Close()

	catalog, err := track.DecodeCatalog(file)
	if err != nil {
		return nil, err
	}

	selected, err := app.selector.Select(catalog)
	switch {
	case errors.Is(err, track.ErrNoTrackFound):
		return nil, fmt.Errorf("video has no usable English captions: %w", err)
	case errors.Is(err, track.ErrNoUsableFormat):
		return nil, fmt.Errorf("captions exist but are undecodable: %w", err)
	case err != nil:
		return nil, err
	}

	if selected.Ext != "vtt" {
		return nil, fmt.Errorf("unsupported caption format: %s", selected.Ext)
	}

	app.logger.Info("selected caption track",
		zap.String("name", selected.Name),
		zap.String("format", selected.Ext),
		zap.String("title", catalog.Title))

	return catalog, nil
}

// writeDocument sends the document to the configured output path, or stdout
// when none is set.
func (app *Application) writeDocument(doc transcript.Document) error {
	var out io.Writer = os.Stdout

	if path := app.config.GetOutputPath(); path != "" {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
		app.logger.Info("writing transcript", zap.String("path", path))
	}

	writer := transcript.NewWriter(out, app.logger)
	return writer.WriteDocument(doc, app.config.GetPrettyOutput())
}
