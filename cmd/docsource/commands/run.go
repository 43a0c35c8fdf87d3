package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/docsource/internal/config"
	derrors "git.home.luguber.info/inful/docsource/internal/errors"
	"git.home.luguber.info/inful/docsource/internal/logfields"
	"git.home.luguber.info/inful/docsource/internal/manifest"
	"git.home.luguber.info/inful/docsource/internal/metrics"
	"git.home.luguber.info/inful/docsource/internal/source"
	"git.home.luguber.info/inful/docsource/internal/transforms"
)

// LoadFlags are shared by tree and watch; set values override the configuration.
type LoadFlags struct {
	Format   string `short:"f" help:"Output format: text or json (overrides output.format)"`
	Output   string `short:"o" help:"Write output to this file instead of stdout (overrides output.file)"`
	Root     string `help:"Logical root directory (overrides source.root_dir and the manifest root)"`
	Manifest string `short:"m" help:"Manifest path (overrides source.manifest)"`
}

// apply merges flags into cfg and re-validates it.
func (f LoadFlags) apply(cfg *config.Config) error {
	if f.Format != "" {
		cfg.Output.Format = f.Format
	}
	if f.Output != "" {
		cfg.Output.File = f.Output
	}
	if f.Root != "" {
		cfg.Source.RootDir = f.Root
	}
	if f.Manifest != "" {
		cfg.Source.Manifest = f.Manifest
	}
	return cfg.Validate()
}

// manifestPath resolves the manifest against the config directory unless it came from a flag.
func (f LoadFlags) manifestPath(cfg *config.Config) string {
	if f.Manifest != "" {
		return f.Manifest
	}
	return cfg.ManifestPath()
}

// outputPath resolves output.file against the config directory unless it came from a flag.
func (f LoadFlags) outputPath(cfg *config.Config) string {
	if f.Output != "" {
		return f.Output
	}
	return cfg.ResolvePath(cfg.Output.File)
}

// runner executes one load with a fixed configuration.
type runner struct {
	cfg      *config.Config
	recorder metrics.Recorder
	logger   *slog.Logger

	// outputFile is the resolved destination; stdout when empty.
	outputFile string

	// resolveOnly builds the tree without running transformers.
	resolveOnly bool
}

// load runs the configured pipeline over the manifest's files.
func (r runner) load(ctx context.Context, m *manifest.Manifest) (*source.Result, error) {
	var pipeline []transforms.Transformer
	if !r.resolveOnly {
		selected, err := transforms.Select(transforms.Default(), r.cfg.Pipeline.Transformers, r.cfg.Pipeline.Disabled)
		if err != nil {
			return nil, err
		}
		pipeline = selected
	}

	rootDir := r.cfg.Source.RootDir
	if rootDir == "" {
		rootDir = m.RootDir
	}

	opts := []source.LoadOption{
		source.WithRootDir(rootDir),
		source.WithRecorder(r.recorder),
		source.WithLogger(r.logger),
	}
	if r.cfg.Source.LegacyLengthOrder {
		opts = append(opts, source.WithBuildOptions(source.WithLegacyLengthOrder()))
	}
	opts = append(opts, transforms.LoadOptions(pipeline)...)

	return source.Load(ctx, m.Files, opts...)
}

// write renders the result to the configured destination.
func (r runner) write(stdout io.Writer, res *source.Result) error {
	if r.outputFile == "" {
		return writeResult(stdout, res, r.cfg.Output.Format)
	}

	path := r.outputFile
	f, err := os.Create(path)
	if err != nil {
		return derrors.FileSystem("create", path, err)
	}
	if err := writeResult(f, res, r.cfg.Output.Format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return derrors.FileSystem("close", path, err)
	}
	r.logger.Info("Output written", logfields.File(path), logfields.Format(r.cfg.Output.Format))
	return nil
}

func writeResult(w io.Writer, res *source.Result, format string) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return derrors.InternalError("failed to encode result", err)
		}
		return nil
	case config.FormatText, "":
		if err := source.WriteTree(w, res.Graph); err != nil {
			return derrors.InternalError("failed to write tree", err)
		}
		return nil
	default:
		return derrors.ConfigInvalid("output.format", fmt.Sprintf("unsupported format %q", format))
	}
}
