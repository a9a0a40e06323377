// Package assets loads glTF scene files from disk into the runtime scene
// graph and extracts their animation clips.
package assets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lumenworks/lampviewer/internal/engine/animation"
	"github.com/lumenworks/lampviewer/internal/engine/scenegraph"
)

// Result is one fully parsed asset: its node tree plus the animation clips
// authored into the file.
type Result struct {
	Graph *scenegraph.Graph
	Clips []animation.Clip
}

// LoadError wraps a failure while reading or parsing one asset file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load asset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ProgressFunc is notified when an asset load starts (done=false) and when it
// finishes successfully (done=true).
type ProgressFunc func(path string, done bool)

// Loader parses backdrop and product files.
type Loader struct {
	log      *zap.Logger
	progress ProgressFunc
}

// NewLoader creates a loader. A nil logger disables logging.
func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// OnProgress registers the load progress callback. Must not be called while a
// load is in flight.
func (l *Loader) OnProgress(fn ProgressFunc) {
	l.progress = fn
}

func (l *Loader) notify(path string, done bool) {
	if l.progress != nil {
		l.progress(path, done)
	}
}

// Load reads and parses a single .glb or .gltf file.
func (l *Loader) Load(ctx context.Context, path string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.notify(path, false)

	doc, err := parseDocument(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	graph, err := buildGraph(doc)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := &Result{Graph: graph, Clips: buildClips(doc)}
	l.notify(path, true)
	l.log.Info("asset loaded",
		zap.String("path", path),
		zap.Int("clips", len(res.Clips)))
	return res, nil
}

// LoadPair loads the backdrop and the product concurrently. The first failure
// cancels the sibling load and is returned; no partial result escapes.
func (l *Loader) LoadPair(ctx context.Context, backdropPath, productPath string) (*Result, *Result, error) {
	eg, ctx := errgroup.WithContext(ctx)

	var backdrop, product *Result
	eg.Go(func() error {
		r, err := l.Load(ctx, backdropPath)
		backdrop = r
		return err
	})
	eg.Go(func() error {
		r, err := l.Load(ctx, productPath)
		product = r
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return backdrop, product, nil
}
