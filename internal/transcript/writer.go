package transcript

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Writer outputs transcript data as JSON to a writer.
type Writer struct {
	writer io.Writer
	logger *zap.Logger
}

// NewWriter creates a new Writer instance.
func NewWriter(writer io.Writer, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{
		writer: writer,
		logger: logger,
	}
}

// WriteDocument writes the whole transcript document as one JSON object.
// When pretty is set the output is indented for human consumption.
func (w *Writer) WriteDocument(doc Document, pretty bool) error {
	for i := range doc.Transcript {
		if err := doc.Transcript[i].Validate(); err != nil {
			w.logger.Error("invalid transcript entry", zap.Int("index", i), zap.Error(err))
			return fmt.Errorf("invalid transcript entry %d: %w", i, err)
		}
	}

	enc := json.NewEncoder(w.writer)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(doc); err != nil {
		w.logger.Error("failed to write transcript document", zap.Error(err))
		return fmt.Errorf("failed to write transcript document: %w", err)
	}

	w.logger.Debug("wrote transcript document",
		zap.String("title", doc.Title),
		zap.Int("entries", len(doc.Transcript)))

	return nil
}

// WriteEntry writes a single transcript entry as one JSON line.
func (w *Writer) WriteEntry(entry Entry) error {
	if err := entry.Validate(); err != nil {
		w.logger.Error("invalid transcript entry", zap.Error(err))
		return fmt.Errorf("invalid transcript entry: %w", err)
	}

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		w.logger.Error("failed to marshal transcript entry", zap.Error(err))
		return fmt.Errorf("failed to marshal transcript entry: %w", err)
	}

	if _, err := fmt.Fprintf(w.writer, "%s\n", jsonBytes); err != nil {
		w.logger.Error("failed to write transcript entry", zap.Error(err))
		return fmt.Errorf("failed to write transcript entry: %w", err)
	}

	return nil
}

// WriteEntries writes each entry as one JSON line.
func (w *Writer) WriteEntries(entries []Entry) error {
	for _, entry := range entries {
		if err := w.WriteEntry(entry); err != nil {
			return err
		}
	}
	return nil
}
