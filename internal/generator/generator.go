package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/0xPuncker/taskboard/internal/board"
	"github.com/0xPuncker/taskboard/internal/render"
	"github.com/0xPuncker/taskboard/internal/source"
)

// WriteError reports that the generated board could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

type Options struct {
	OutputPath     string
	SkipStylesheet bool
	// Title, Subtitle and Footer apply unless the dataset carries its own.
	Title    string
	Subtitle string
	Footer   string
}

// Result describes one completed run.
type Result struct {
	Document *board.Document
	Path     string
	Origin   string
	Fallback source.Fallback
	// AcquisitionErr is set when the source failed but supplied fallback data.
	AcquisitionErr error
}

// Generator performs generation runs: acquire, build, render, write.
type Generator struct {
	logger   *logrus.Logger
	source   source.Source
	builder  *board.Builder
	renderer *render.HTMLRenderer
	opts     Options
	now      func() time.Time

	mu   sync.RWMutex
	last *board.Document
}

func New(logger *logrus.Logger, src source.Source, builder *board.Builder, renderer *render.HTMLRenderer, opts Options) *Generator {
	return &Generator{
		logger:   logger,
		source:   src,
		builder:  builder,
		renderer: renderer,
		opts:     opts,
		now:      time.Now,
	}
}

// SetClock replaces the clock used to stamp generation time.
func (g *Generator) SetClock(now func() time.Time) {
	g.now = now
}

// Run performs one generation. A source that fails without fallback data
// aborts the run with its AcquisitionError; output failures are WriteErrors.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	generatedAt := g.now().UTC()

	ds, err := g.source.Fetch(ctx)
	if ds == nil {
		if err == nil {
			err = &source.AcquisitionError{Source: g.source.Name(), Err: errors.New("no data returned")}
		}
		return nil, err
	}

	doc := g.builder.Build(board.Input{
		Title:    firstNonEmpty(ds.Title, g.opts.Title),
		Subtitle: firstNonEmpty(ds.Subtitle, g.opts.Subtitle),
		Footer:   firstNonEmpty(ds.Footer, g.opts.Footer),
		Records:  ds.Records,
		Groups:   ds.Groups,
	}, generatedAt)

	html, renderErr := g.renderer.RenderBytes(doc)
	if renderErr != nil {
		return nil, fmt.Errorf("failed to render board: %w", renderErr)
	}

	if err := writeFileAtomic(g.opts.OutputPath, html); err != nil {
		return nil, &WriteError{Path: g.opts.OutputPath, Err: err}
	}
	if !g.opts.SkipStylesheet {
		if err := g.ensureStylesheet(); err != nil {
			return nil, err
		}
	}

	g.mu.Lock()
	g.last = doc
	g.mu.Unlock()

	g.logger.WithFields(logrus.Fields{
		"path":     g.opts.OutputPath,
		"origin":   ds.Origin,
		"fallback": ds.Fallback,
		"records":  len(ds.Records),
		"columns":  len(doc.Columns),
		"duration": time.Since(generatedAt).String(),
	}).Info("Board generated")

	return &Result{
		Document:       doc,
		Path:           g.opts.OutputPath,
		Origin:         ds.Origin,
		Fallback:       ds.Fallback,
		AcquisitionErr: err,
	}, nil
}

// Last returns the most recently generated document, or nil before the first
// successful run.
func (g *Generator) Last() *board.Document {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.last
}

func (g *Generator) ensureStylesheet() error {
	path := filepath.Join(filepath.Dir(g.opts.OutputPath), render.StylesheetName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return &WriteError{Path: path, Err: err}
	}

	css, err := render.Stylesheet()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, css); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	g.logger.WithField("path", path).Info("Default stylesheet written")
	return nil
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
