package config

import (
	"fmt"
	"net"

	derrors "git.home.luguber.info/inful/docsource/internal/errors"
	"git.home.luguber.info/inful/docsource/internal/vpath"
)

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	return newConfigurationValidator(c).validate()
}

// configurationValidator coordinates validation across configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateSource(); err != nil {
		return err
	}
	if err := cv.validatePipeline(); err != nil {
		return err
	}
	if err := cv.validateOutput(); err != nil {
		return err
	}
	return cv.validateMetrics()
}

func (cv *configurationValidator) validateSource() error {
	src := cv.config.Source
	if src.Manifest == "" {
		return derrors.ConfigInvalid("source.manifest", "must not be empty")
	}
	if _, ok := vpath.Normalize(src.RootDir); !ok {
		return derrors.ConfigInvalid("source.root_dir", fmt.Sprintf("%q escapes the logical root", src.RootDir))
	}
	return nil
}

func (cv *configurationValidator) validatePipeline() error {
	p := cv.config.Pipeline
	if err := noDuplicates("pipeline.transformers", p.Transformers); err != nil {
		return err
	}
	if err := noDuplicates("pipeline.disabled", p.Disabled); err != nil {
		return err
	}

	included := make(map[string]bool, len(p.Transformers))
	for _, name := range p.Transformers {
		included[name] = true
	}
	for _, name := range p.Disabled {
		if included[name] {
			return derrors.ConfigInvalid("pipeline.disabled", fmt.Sprintf("transformer %q is both selected and disabled", name))
		}
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	switch cv.config.Output.Format {
	case FormatText, FormatJSON:
		return nil
	default:
		return derrors.ConfigInvalid("output.format",
			fmt.Sprintf("unsupported format %q (expected %s or %s)", cv.config.Output.Format, FormatText, FormatJSON))
	}
}

func (cv *configurationValidator) validateMetrics() error {
	m := cv.config.Metrics
	if !m.Enabled {
		return nil
	}
	if _, _, err := net.SplitHostPort(m.Listen); err != nil {
		return derrors.ConfigInvalid("metrics.listen", err.Error())
	}
	return nil
}

func noDuplicates(field string, names []string) error {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			return derrors.ConfigInvalid(field, "empty transformer name")
		}
		if seen[name] {
			return derrors.ConfigInvalid(field, fmt.Sprintf("duplicate transformer %q", name))
		}
		seen[name] = true
	}
	return nil
}
