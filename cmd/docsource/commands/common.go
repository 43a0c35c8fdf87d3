package commands

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsource/internal/config"
	"git.home.luguber.info/inful/docsource/internal/logfields"
)

// Global carries state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

// NewGlobal returns the process-wide defaults.
func NewGlobal() *Global {
	return &Global{Logger: slog.Default(), Stdout: os.Stdout}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docsource.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Tree      TreeCmd      `cmd:"" help:"Load the manifest, run the transformer pipeline and print the document tree"`
	Watch     WatchCmd     `cmd:"" help:"Like tree, but re-run whenever the manifest or configuration changes"`
	Visualize VisualizeCmd `cmd:"" help:"Visualize the transformer pipeline (text, mermaid, dot, json)"`
	Validate  ValidateCmd  `cmd:"" help:"Validate configuration, transformer registry and manifest"`
	Init      InitCmd      `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig reads the configuration file. A missing file at the default
// location falls back to built-in defaults so the tool works without setup.
func loadConfig(g *Global, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == config.DefaultConfigFile {
		if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
			g.Logger.Debug("No configuration file, using defaults", logfields.File(path))
			return config.Default(), nil
		}
	}
	return nil, err
}
