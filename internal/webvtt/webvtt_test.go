package webvtt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yttranscript/internal/timestamp"
)

const autoCaptionSample = `WEBVTT
Kind: captions
Language: en

00:00:00.160 --> 00:00:02.350 align:start position:0%
welcome<00:00:00.799><c> back</c><00:00:01.040><c> everyone</c>

00:00:02.350 --> 00:00:02.360 align:start position:0%
welcome back everyone


00:00:02.360 --> 00:00:04.799 align:start position:0%
welcome back everyone
to<00:00:02.800><c> the</c><00:00:03.120><c> show</c>
`

func TestParse(t *testing.T) {
	t.Run("should parse a YouTube-style auto caption track", func(t *testing.T) {
		// Act
		cues, err := ParseString(autoCaptionSample)

		// Assert
		require.NoError(t, err)
		require.Len(t, cues, 3)

		assert.InDelta(t, 0.160, cues[0].Start, 1e-9)
		assert.InDelta(t, 2.350, cues[0].End, 1e-9)
		assert.Equal(t, "welcome back everyone", cues[0].Text)

		assert.Equal(t, "welcome back everyone", cues[1].Text)

		assert.Equal(t, "welcome back everyone\nto the show", cues[2].Text)
	})

	t.Run("should skip NOTE and STYLE blocks", func(t *testing.T) {
		// Arrange
		content := `WEBVTT

NOTE
this is a comment about the file

STYLE
::cue { color: yellow }

00:00:01.000 --> 00:00:02.000
hello there
`

		// Act
		cues, err := ParseString(content)

		// Assert
		require.NoError(t, err)
		require.Len(t, cues, 1)
		assert.Equal(t, "hello there", cues[0].Text)
	})

	t.Run("should decode character entities", func(t *testing.T) {
		// Arrange
		content := `WEBVTT

00:00:01.000 --> 00:00:02.000
Tom &amp; Jerry&nbsp;&gt;&gt; it&#39;s on
`

		// Act
		cues, err := ParseString(content)

		// Assert
		require.NoError(t, err)
		require.Len(t, cues, 1)
		assert.Equal(t, "Tom & Jerry >> it's on", cues[0].Text)
	})

	t.Run("should skip cues with no payload", func(t *testing.T) {
		// Arrange
		content := `WEBVTT

00:00:01.000 --> 00:00:02.000

00:00:02.000 --> 00:00:03.000
actual words
`

		// Act
		cues, err := ParseString(content)

		// Assert
		require.NoError(t, err)
		require.Len(t, cues, 1)
		assert.Equal(t, "actual words", cues[0].Text)
	})

	t.Run("should keep cue identifiers out of the payload", func(t *testing.T) {
		// Arrange
		content := `WEBVTT

17
00:00:01.000 --> 00:00:02.000
numbered cue text
`

		// Act
		cues, err := ParseString(content)

		// Assert
		require.NoError(t, err)
		require.Len(t, cues, 1)
		assert.Equal(t, "numbered cue text", cues[0].Text)
	})

	t.Run("should return MalformedTimestamp for a garbage timing line", func(t *testing.T) {
		// Arrange
		content := `WEBVTT

00:xx:01.000 --> 00:00:02.000
broken cue
`

		// Act
		cues, err := ParseString(content)

		// Assert
		assert.ErrorIs(t, err, timestamp.ErrMalformedTimestamp)
		assert.Nil(t, cues)
	})

	t.Run("should return no cues for an empty document", func(t *testing.T) {
		// Act
		cues, err := ParseString("WEBVTT\n")

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, cues)
	})
}

func TestParseFile(t *testing.T) {
	t.Run("should parse a caption file from disk", func(t *testing.T) {
		// Arrange
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "captions.vtt")
		require.NoError(t, os.WriteFile(path, []byte(autoCaptionSample), 0644))

		// Act
		cues, err := ParseFile(path)

		// Assert
		require.NoError(t, err)
		assert.Len(t, cues, 3)
	})

	t.Run("should return error for a missing file", func(t *testing.T) {
		// Act
		cues, err := ParseFile("/tmp/does-not-exist.vtt")

		// Assert
		assert.Error(t, err)
		assert.Nil(t, cues)
		assert.Contains(t, err.Error(), "failed to open caption file")
	})
}
