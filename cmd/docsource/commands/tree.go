package commands

import (
	"context"

	"git.home.luguber.info/inful/docsource/internal/manifest"
	"git.home.luguber.info/inful/docsource/internal/metrics"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	LoadFlags `embed:""`
}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	return t.run(context.Background(), g, root.Config)
}

func (t *TreeCmd) run(ctx context.Context, g *Global, configPath string) error {
	cfg, err := loadConfig(g, configPath)
	if err != nil {
		return err
	}
	if err := t.apply(cfg); err != nil {
		return err
	}

	m, err := manifest.Read(t.manifestPath(cfg))
	if err != nil {
		return err
	}

	r := runner{cfg: cfg, recorder: metrics.NoopRecorder{}, logger: g.Logger, outputFile: t.outputPath(cfg)}
	res, err := r.load(ctx, m)
	if err != nil {
		return err
	}
	return r.write(g.Stdout, res)
}
