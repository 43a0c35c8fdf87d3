// Package manifest reads virtual file manifests: YAML or JSON documents that
// list the files a Load call operates on.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docsource/internal/errors"
	"git.home.luguber.info/inful/docsource/internal/source"
)

// Format is the encoding of a manifest document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Manifest lists virtual files and an optional logical root.
type Manifest struct {
	RootDir string               `json:"root_dir,omitempty" yaml:"root_dir,omitempty"`
	Files   []source.VirtualFile `json:"files" yaml:"files"`
}

// FormatFromPath picks JSON for ".json" files and YAML otherwise.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Read loads and validates a manifest file.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, derrors.New(derrors.CategoryFileSystem, derrors.SeverityFatal,
				fmt.Sprintf("manifest not found: %s", path)).WithContext("path", path)
		}
		return nil, derrors.FileSystem("read", path, err)
	}
	m, err := Parse(data, FormatFromPath(path))
	if err != nil {
		if dse, ok := derrors.As(err); ok {
			return nil, dse.WithContext("manifest", path)
		}
		return nil, err
	}
	return m, nil
}

// Parse decodes and validates manifest bytes.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &m)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	default:
		return nil, derrors.ValidationFailed("format", fmt.Sprintf("unsupported manifest format %q", format))
	}
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryValidation, derrors.SeverityFatal,
			fmt.Sprintf("failed to decode %s manifest", format))
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every entry names a path and a known kind.
func (m *Manifest) Validate() error {
	for i, f := range m.Files {
		if strings.TrimSpace(f.Path) == "" {
			return derrors.ValidationFailed(fmt.Sprintf("files[%d].path", i), "must not be empty").
				WithContext("index", i)
		}
		if !f.Kind.IsValid() {
			return derrors.ValidationFailed(fmt.Sprintf("files[%d].type", i),
				fmt.Sprintf("unknown type %q (expected %s or %s)", f.Kind, source.KindPage, source.KindMeta)).
				WithContext("index", i).
				WithContext("path", f.Path)
		}
	}
	return nil
}

// Hash computes a deterministic hash of the manifest's root and files.
// Watch mode uses it to skip reloads when a write left the content unchanged.
func (m *Manifest) Hash() (string, error) {
	// encoding/json sorts map keys, so equal data hashes equally.
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}
