package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yttranscript/internal/caption"
	"yttranscript/internal/config"
	"yttranscript/internal/merger"
	"yttranscript/internal/track"
	"yttranscript/internal/transcript"
)

const pipelineVTT = `WEBVTT
Kind: captions
Language: en

00:00:00.000 --> 00:00:02.500 align:start position:0%
welcome back everyone to the

00:00:02.400 --> 00:00:04.800 align:start position:0%
welcome back everyone to the
show where we talk about

00:00:04.700 --> 00:00:07.200 align:start position:0%
show where we talk about
all kinds of strange machines

00:00:12.000 --> 00:00:14.000 align:start position:0%
and now a completely new thought
`

const pipelineInfo = `{
	"title": "Strange Machines",
	"channel": "Machine Channel",
	"automatic_captions": {
		"en-orig": [{"ext": "vtt", "url": "https://example.com/a.vtt", "name": "English (original)"}]
	}
}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestApplication_Run(t *testing.T) {
	t.Run("should process a caption file into a transcript document", func(t *testing.T) {
		// Arrange
		outPath := filepath.Join(t.TempDir(), "out.json")
		cfg := NewConfigurationForTest(t, outPath)
		application := NewApplicationWithConfig(cfg, zap.NewNop())

		infoPath := writeTempFile(t, "info.json", pipelineInfo)
		vttPath := writeTempFile(t, "captions.vtt", pipelineVTT)

		// Act
		err := application.Run(context.Background(), infoPath, vttPath)

		// Assert
		require.NoError(t, err)

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)

		var doc transcript.Document
		require.NoError(t, json.Unmarshal(data, &doc))

		assert.Equal(t, "Strange Machines", doc.Title)
		assert.Equal(t, "Machine Channel", doc.Channel)
		require.Len(t, doc.Transcript, 4)
		assert.Equal(t, "welcome back everyone to the", doc.Transcript[0].Text)
		assert.Equal(t, "show where we talk about", doc.Transcript[1].Text)
		assert.Equal(t, "all kinds of strange machines", doc.Transcript[2].Text)
		assert.Equal(t, "and now a completely new thought", doc.Transcript[3].Text)
		assert.Equal(t, 0, doc.Transcript[0].Offset)
		assert.Equal(t, 12000, doc.Transcript[3].Offset)
		assert.Equal(t, 2000, doc.Transcript[3].Duration)
	})

	t.Run("should run without a metadata file", func(t *testing.T) {
		// Arrange
		outPath := filepath.Join(t.TempDir(), "out.json")
		cfg := NewConfigurationForTest(t, outPath)
		application := NewApplicationWithConfig(cfg, zap.NewNop())

		vttPath := writeTempFile(t, "captions.vtt", pipelineVTT)

		// Act
		err := application.Run(context.Background(), "", vttPath)

		// Assert
		require.NoError(t, err)

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)

		var doc transcript.Document
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Empty(t, doc.Title)
		assert.NotEmpty(t, doc.Transcript)
	})

	t.Run("should report a missing caption file", func(t *testing.T) {
		// Arrange
		application := NewApplicationWithConfig(config.NewConfiguration(), zap.NewNop())

		// Act
		err := application.Run(context.Background(), "", "/tmp/missing.vtt")

		// Assert
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse caption file")
	})

	t.Run("should distinguish missing captions from undecodable captions", func(t *testing.T) {
		// Arrange
		application := NewApplicationWithConfig(config.NewConfiguration(), zap.NewNop())
		vttPath := writeTempFile(t, "captions.vtt", pipelineVTT)

		noTrack := writeTempFile(t, "no-track.json", `{"subtitles": {"fr": [{"ext": "vtt", "url": "u", "name": "French"}]}}`)
		noFormat := writeTempFile(t, "no-format.json", `{"subtitles": {"en": [{"ext": "json3", "url": "u", "name": "English"}]}}`)

		// Act
		errTrack := application.Run(context.Background(), noTrack, vttPath)
		errFormat := application.Run(context.Background(), noFormat, vttPath)

		// Assert
		assert.ErrorIs(t, errTrack, track.ErrNoTrackFound)
		assert.ErrorIs(t, errFormat, track.ErrNoUsableFormat)
	})

	t.Run("should surface an empty caption track as EmptyCueSequence", func(t *testing.T) {
		// Arrange
		application := NewApplicationWithConfig(config.NewConfiguration(), zap.NewNop())
		vttPath := writeTempFile(t, "empty.vtt", "WEBVTT\n")

		// Act
		err := application.Run(context.Background(), "", vttPath)

		// Assert
		assert.ErrorIs(t, err, merger.ErrEmptyCueSequence)
	})

	t.Run("should stop when the context is already cancelled", func(t *testing.T) {
		// Arrange
		application := NewApplicationWithConfig(config.NewConfiguration(), zap.NewNop())
		vttPath := writeTempFile(t, "captions.vtt", pipelineVTT)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Act
		err := application.Run(ctx, "", vttPath)

		// Assert
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestApplication_BuildDocument(t *testing.T) {
	t.Run("should wrap merged segments with catalog metadata", func(t *testing.T) {
		// Arrange
		application := NewApplicationWithConfig(config.NewConfiguration(), zap.NewNop())
		catalog := &track.Catalog{Title: "A Video", Channel: "A Channel"}
		cues := []caption.Cue{
			{Start: 0.0, End: 2.0, Text: "line one\nline two"},
			{Start: 2.0, End: 4.0, Text: "line two\nline three it was"},
		}

		// Act
		doc, err := application.BuildDocument(catalog, cues)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "A Video", doc.Title)
		assert.Equal(t, "A Channel", doc.Channel)
		require.Len(t, doc.Transcript, 2)
		assert.Equal(t, "line one line two", doc.Transcript[0].Text)
		assert.Equal(t, "line three it was", doc.Transcript[1].Text)
	})
}

// NewConfigurationForTest builds a Configuration pointing output at the
// given path.
func NewConfigurationForTest(t *testing.T, outputPath string) *config.Configuration {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "output:\n  path: \"" + outputPath + "\"\n  pretty: true\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := config.NewConfigurationFromFile(configPath)
	require.NoError(t, err)
	return cfg
}
