package config

import "fmt"

// Default values.
const (
	DefaultManifest      = "content.yaml"
	DefaultMetricsListen = ":9090"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SourceDefaultApplier handles Source configuration defaults.
type SourceDefaultApplier struct{}

func (s *SourceDefaultApplier) Domain() string { return "source" }

func (s *SourceDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Source.Manifest == "" {
		cfg.Source.Manifest = DefaultManifest
	}
	return nil
}

// OutputDefaultApplier handles Output configuration defaults.
type OutputDefaultApplier struct{}

func (o *OutputDefaultApplier) Domain() string { return "output" }

func (o *OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatText
	}
	return nil
}

// MetricsDefaultApplier handles Metrics configuration defaults.
type MetricsDefaultApplier struct{}

func (m *MetricsDefaultApplier) Domain() string { return "metrics" }

func (m *MetricsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = DefaultMetricsListen
	}
	return nil
}

// CompositeDefaultApplier applies defaults across all configuration domains.
type CompositeDefaultApplier struct {
	appliers []DefaultApplier
}

// NewDefaultApplier creates a composite default applier with all domain appliers.
func NewDefaultApplier() *CompositeDefaultApplier {
	return &CompositeDefaultApplier{
		appliers: []DefaultApplier{
			&SourceDefaultApplier{},
			&OutputDefaultApplier{},
			&MetricsDefaultApplier{},
		},
	}
}

// ApplyDefaults applies defaults for all configuration domains.
func (c *CompositeDefaultApplier) ApplyDefaults(cfg *Config) error {
	for _, applier := range c.appliers {
		if err := applier.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", applier.Domain(), err)
		}
	}
	return nil
}

// GetApplierByDomain returns a specific domain applier (useful for testing).
func (c *CompositeDefaultApplier) GetApplierByDomain(domain string) DefaultApplier {
	for _, applier := range c.appliers {
		if applier.Domain() == domain {
			return applier
		}
	}
	return nil
}
