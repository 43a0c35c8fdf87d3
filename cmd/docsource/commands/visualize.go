package commands

import (
	"fmt"
	"os"

	derrors "git.home.luguber.info/inful/docsource/internal/errors"
	"git.home.luguber.info/inful/docsource/internal/logfields"
	"git.home.luguber.info/inful/docsource/internal/transforms"
)

// VisualizeCmd implements the 'visualize' command.
type VisualizeCmd struct {
	Format string `short:"f" help:"Output format: text, mermaid, dot, json" default:"text" enum:"text,mermaid,dot,json"`
	Output string `short:"o" help:"Output file path (optional, prints to stdout if not specified)"`
	All    bool   `help:"Show every registered transformer instead of the configured pipeline"`
}

// Run executes the visualize command.
func (cmd *VisualizeCmd) Run(g *Global, root *CLI) error {
	reg := transforms.Default()

	var include, disabled []string
	if !cmd.All {
		cfg, err := loadConfig(g, root.Config)
		if err != nil {
			return err
		}
		include, disabled = cfg.Pipeline.Transformers, cfg.Pipeline.Disabled
	}

	pipeline, err := transforms.Select(reg, include, disabled)
	if err != nil {
		return err
	}

	output, err := transforms.Visualize(pipeline, transforms.VisualizationFormat(cmd.Format))
	if err != nil {
		return derrors.ValidationFailed("format", err.Error())
	}

	if cmd.Output == "" {
		_, err := fmt.Fprint(g.Stdout, output)
		return err
	}
	if err := os.WriteFile(cmd.Output, []byte(output), 0o644); err != nil {
		return derrors.FileSystem("write", cmd.Output, err)
	}
	g.Logger.Info("Pipeline visualization written", logfields.File(cmd.Output), logfields.Format(cmd.Format))
	return nil
}
