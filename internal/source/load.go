package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	derrors "git.home.luguber.info/inful/docsource/internal/errors"
	"git.home.luguber.info/inful/docsource/internal/logfields"
	"git.home.luguber.info/inful/docsource/internal/metrics"
	"git.home.luguber.info/inful/docsource/internal/observability"
	"git.home.luguber.info/inful/docsource/internal/vpath"
)

type step struct {
	name string
	run  Transformer
}

type loadOptions struct {
	rootDir      string
	steps        []step
	buildOptions []BuildOption
	recorder     metrics.Recorder
	logger       *slog.Logger
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithRootDir sets the directory all virtual file paths are resolved against.
// The default is the logical root "".
func WithRootDir(dir string) LoadOption {
	return func(o *loadOptions) { o.rootDir = dir }
}

// WithTransformers appends anonymous transformers to the pipeline.
func WithTransformers(ts ...Transformer) LoadOption {
	return func(o *loadOptions) {
		for _, t := range ts {
			o.steps = append(o.steps, step{run: t})
		}
	}
}

// WithNamedTransformer appends a transformer whose name is used in logs,
// metrics and errors.
func WithNamedTransformer(name string, t Transformer) LoadOption {
	return func(o *loadOptions) {
		o.steps = append(o.steps, step{name: name, run: t})
	}
}

// WithBuildOptions forwards options to BuildGraph.
func WithBuildOptions(opts ...BuildOption) LoadOption {
	return func(o *loadOptions) { o.buildOptions = append(o.buildOptions, opts...) }
}

// WithRecorder sets the metrics recorder (default metrics.NoopRecorder).
func WithRecorder(r metrics.Recorder) LoadOption {
	return func(o *loadOptions) {
		if r != nil {
			o.recorder = r
		}
	}
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) LoadOption {
	return func(o *loadOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Load resolves every virtual file, builds the document tree and then runs the
// transformers strictly one after another, in order, against the shared Result.
//
// Any path that cannot be resolved aborts the call before a transformer runs.
// A failing transformer aborts the pipeline: no later transformer runs and no
// Result is returned. The transformer's error is not returned as is: it is
// wrapped in a transform-category DocSourceError carrying the transformer's
// index and name, so callers get an exit code and context. errors.Is and
// errors.As still reach the original error through Unwrap.
// The context is checked between transformer turns only.
func Load(ctx context.Context, files []VirtualFile, opts ...LoadOption) (*Result, error) {
	o := loadOptions{
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	ctx = observability.WithLoadID(ctx, observability.NewLoadID())
	ctx = observability.WithRootDir(ctx, o.rootDir)

	start := time.Now()
	res, outcome, err := load(ctx, files, &o)
	elapsed := time.Since(start)
	o.recorder.ObserveLoadDuration(elapsed)
	o.recorder.IncLoadOutcome(outcome)

	if err != nil {
		observability.Log(ctx, o.logger, slog.LevelDebug, "Load failed",
			logfields.Error(err), logfields.DurationMS(float64(elapsed.Microseconds())/1000))
		return nil, err
	}

	observability.Log(ctx, o.logger, slog.LevelInfo, "Virtual files loaded",
		logfields.Files(len(files)),
		logfields.Pages(len(res.Pages)),
		logfields.Metas(len(res.Metas)),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return res, nil
}

func load(ctx context.Context, files []VirtualFile, o *loadOptions) (*Result, metrics.LoadOutcomeLabel, error) {
	infos := make([]vpath.FileInfo, len(files))
	for i, f := range files {
		info, err := vpath.Parse(f.Path, o.rootDir)
		if err != nil {
			if dse, ok := derrors.As(err); ok {
				dse.WithContext("index", i)
			}
			return nil, metrics.LoadInvalidPath, err
		}
		infos[i] = info
	}

	pages := make([]*Page, 0, len(files))
	metas := make([]*Meta, 0)
	for i, f := range files {
		switch f.Kind {
		case KindPage:
			pages = append(pages, &Page{File: infos[i], Data: copyData(f.Data)})
		case KindMeta:
			metas = append(metas, &Meta{File: infos[i], Data: copyData(f.Data)})
		default:
			return nil, metrics.LoadInvalidInput, derrors.ValidationFailed("type",
				fmt.Sprintf("virtual file %q has unknown type %q", f.Path, f.Kind)).
				WithContext("index", i)
		}
	}

	// Descriptors are already relative to rootDir, so the tree is rooted at "".
	graph, err := BuildGraph("", pages, metas, o.buildOptions...)
	if err != nil {
		return nil, metrics.LoadInternalError, err
	}
	nPages, nMetas, nFolders := graph.Counts()
	o.recorder.SetGraphSize(nPages, nMetas, nFolders)
	observability.Log(ctx, o.logger, slog.LevelDebug, "Graph built",
		logfields.Pages(nPages), logfields.Metas(nMetas), logfields.Folders(nFolders))

	res := &Result{
		Graph: graph,
		Pages: pages,
		Metas: metas,
		Data:  map[string]any{},
	}

	for i, s := range o.steps {
		if s.run == nil {
			continue
		}
		name := s.name
		if name == "" {
			name = fmt.Sprintf("transformer[%d]", i)
		}
		if err := ctx.Err(); err != nil {
			o.recorder.IncTransformerResult(name, metrics.ResultCanceled)
			return nil, metrics.LoadCanceled, err
		}

		tctx := observability.WithTransformer(ctx, name)
		t0 := time.Now()
		err := s.run(tctx, res)
		o.recorder.ObserveTransformerDuration(name, time.Since(t0))
		if err != nil {
			o.recorder.IncTransformerResult(name, metrics.ResultFailed)
			return nil, metrics.LoadTransformError, derrors.TransformerFailed(i, name, err)
		}
		o.recorder.IncTransformerResult(name, metrics.ResultSuccess)
		observability.Log(tctx, o.logger, slog.LevelDebug, "Transformer completed",
			logfields.Index(i), logfields.DurationMS(float64(time.Since(t0).Microseconds())/1000))
	}

	return res, metrics.LoadSuccess, nil
}
