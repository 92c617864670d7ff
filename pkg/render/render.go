// Package render turns a tweet collection into a document on disk.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/lisanmuaddib/twindle/pkg/tweets"
)

// Config holds the renderer settings
type Config struct {
	Logger *logrus.Logger
}

// Renderer writes collections in every supported format
type Renderer struct {
	logger  *logrus.Logger
	writers map[Format]writeFunc
}

// writeFunc writes doc to path, creating or truncating it
type writeFunc func(doc document, path string) error

// NewRenderer creates a Renderer
func NewRenderer(config Config) *Renderer {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	return &Renderer{
		logger: config.Logger,
		writers: map[Format]writeFunc{
			FormatPDF:      writePDF,
			FormatEPUB:     writeEPUB,
			FormatHTML:     writeHTML,
			FormatMarkdown: writeMarkdown,
			FormatDOC:      writeDOC,
		},
	}
}

// Render writes c to path. The document is written to a temporary file in
// the same directory and renamed into place, so path either holds the
// complete document afterwards or is left untouched.
func (r *Renderer) Render(ctx context.Context, c *tweets.Collection, format Format, path string) (Artifact, error) {
	if c == nil {
		return Artifact{}, fmt.Errorf("nothing to render: collection is nil")
	}
	write, ok := r.writers[format]
	if !ok {
		return Artifact{}, fmt.Errorf("unsupported format %q", format)
	}
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	log := r.logger.WithFields(logrus.Fields{
		"format":      format.String(),
		"path":        path,
		"tweet_count": c.Len(),
	})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Artifact{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".twindle-*."+format.Extension())
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return Artifact{}, fmt.Errorf("failed to close temporary file: %w", err)
	}

	log.Debug("Writing document")
	if err := write(newDocument(c), tmpPath); err != nil {
		os.Remove(tmpPath)
		log.WithError(err).Error("Failed to write document")
		return Artifact{}, fmt.Errorf("failed to write %s: %w", format, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return Artifact{}, fmt.Errorf("failed to move document into place: %w", err)
	}

	log.Debug("Document written")
	return Artifact{Path: path, Format: format}, nil
}
