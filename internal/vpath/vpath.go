// Package vpath resolves logical virtual-file paths into structured descriptors.
//
// Paths are always '/'-separated regardless of host OS. Nothing in this
// package touches the filesystem.
package vpath

import (
	"path"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	derrors "git.home.luguber.info/inful/docsource/internal/errors"
)

// Separator is the logical path separator.
const Separator = "/"

// FileInfo describes a resolved virtual file path relative to the root directory.
type FileInfo struct {
	// Dirname is the '/'-joined directory of the file ("" at the root).
	Dirname string `json:"dirname" yaml:"dirname"`
	// Name is the leaf name without extension and locale suffix. Dots that do
	// not introduce a locale are kept.
	Name string `json:"name" yaml:"name"`
	// Locale is the optional locale suffix (index.fr.mdx -> "fr").
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`
	// Ext is the extension including its dot, empty when absent.
	Ext string `json:"ext,omitempty" yaml:"ext,omitempty"`
	// FlattenedPath is Dirname joined with the leaf name (locale kept), no extension.
	FlattenedPath string `json:"flattenedPath" yaml:"flattened_path"`
	// Path is the normalized path relative to the root.
	Path string `json:"path" yaml:"path"`
}

// SplitPath splits a path into its non-empty segments.
func SplitPath(p string) []string {
	parts := strings.Split(p, Separator)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Join joins segments with the logical separator.
func Join(segments ...string) string {
	return strings.Join(segments, Separator)
}

// Depth returns the number of segments in a directory key ("" has depth 0).
func Depth(dir string) int {
	return len(SplitPath(dir))
}

// Normalize converts a raw path into canonical form: forward slashes, NFC
// unicode, and resolved "." / ".." segments. The returned path has no leading
// or trailing separator. ok is false when the path climbs above its start.
func Normalize(raw string) (normalized string, ok bool) {
	p := strings.ReplaceAll(raw, "\\", Separator)
	p = norm.NFC.String(p)
	segments := SplitPath(p)
	if len(segments) == 0 {
		return "", true
	}
	cleaned := path.Clean(Join(segments...))
	if cleaned == "." {
		return "", true
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", false
	}
	return cleaned, true
}

// Parse resolves raw relative to rootDir.
//
// rootDir must be a segment-wise prefix of raw when non-empty: "docs" is a
// prefix of "docs/a.md" but not of "docs2/a.md".
func Parse(raw, rootDir string) (FileInfo, error) {
	p, ok := Normalize(raw)
	if !ok {
		return FileInfo{}, derrors.InvalidPath(raw, rootDir, "path escapes its root")
	}
	segments := SplitPath(p)

	root, ok := Normalize(rootDir)
	if !ok {
		return FileInfo{}, derrors.InvalidPath(raw, rootDir, "root directory escapes the logical root")
	}
	if rootSegments := SplitPath(root); len(rootSegments) > 0 {
		if !hasSegmentPrefix(segments, rootSegments) {
			return FileInfo{}, derrors.InvalidPath(raw, rootDir, "path is not inside the root directory")
		}
		segments = segments[len(rootSegments):]
	}

	if len(segments) == 0 {
		return FileInfo{}, derrors.InvalidPath(raw, rootDir, "path has no file name")
	}

	return fromSegments(segments), nil
}

func fromSegments(segments []string) FileInfo {
	dirname := Join(segments[:len(segments)-1]...)
	base := segments[len(segments)-1]

	nameWithLocale, ext := splitExt(base)
	name, locale := splitLocale(nameWithLocale)

	flattened := nameWithLocale
	if dirname != "" {
		flattened = dirname + Separator + nameWithLocale
	}

	return FileInfo{
		Dirname:       dirname,
		Name:          name,
		Locale:        locale,
		Ext:           ext,
		FlattenedPath: flattened,
		Path:          Join(segments...),
	}
}

// splitExt splits the final extension. Dotfiles such as ".hidden" keep their name.
func splitExt(base string) (string, string) {
	idx := strings.LastIndex(base, ".")
	if idx <= 0 {
		return base, ""
	}
	return base[:idx], base[idx:]
}

// splitLocale splits a trailing ".<locale>" suffix from an extension-less name.
// The suffix must be a known BCP 47 tag, so names such as "v1.2" or
// "next.config" stay whole.
func splitLocale(name string) (string, string) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return name, ""
	}
	suffix := name[idx+1:]
	if !isLocale(suffix) {
		return name, ""
	}
	return name[:idx], suffix
}

func isLocale(s string) bool {
	tag, err := language.Parse(s)
	return err == nil && tag != language.Und
}

func hasSegmentPrefix(segments, prefix []string) bool {
	if len(prefix) > len(segments) {
		return false
	}
	for i := range prefix {
		if segments[i] != prefix[i] {
			return false
		}
	}
	return true
}
