package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	derrors "git.home.luguber.info/inful/docsource/internal/errors"
	"git.home.luguber.info/inful/docsource/internal/manifest"
	"git.home.luguber.info/inful/docsource/internal/metrics"
	"git.home.luguber.info/inful/docsource/internal/transforms"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Manifest string `short:"m" help:"Manifest path (overrides source.manifest)"`
}

// Run checks the configuration, the transformer registry and, when present,
// that every manifest entry resolves against the root.
func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root.Config)
	if err != nil {
		return err
	}
	flags := LoadFlags{Manifest: v.Manifest}
	if err := flags.apply(cfg); err != nil {
		return err
	}

	result := transforms.Validate(transforms.Default())
	_, _ = fmt.Fprint(g.Stdout, transforms.FormatValidationResult(result))
	if !result.Valid {
		return derrors.ValidationFailed("transformers", fmt.Sprintf("%d registry error(s)", len(result.Errors)))
	}

	if _, err := transforms.Select(transforms.Default(), cfg.Pipeline.Transformers, cfg.Pipeline.Disabled); err != nil {
		return err
	}

	path := flags.manifestPath(cfg)
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		_, _ = fmt.Fprintf(g.Stdout, "Manifest %s not found, skipped\n", path)
		return nil
	}
	m, err := manifest.Read(path)
	if err != nil {
		return err
	}

	r := runner{cfg: cfg, recorder: metrics.NoopRecorder{}, logger: g.Logger, resolveOnly: true}
	if _, err := r.load(context.Background(), m); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(g.Stdout, "✓ Manifest %s is valid (%d files)\n", path, len(m.Files))
	return nil
}
