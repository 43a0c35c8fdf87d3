// Package source turns flat virtual files into a document tree and runs an
// ordered transformer pipeline over the result.
//
// Data flows Load -> vpath.Parse (per file) -> BuildGraph (once) -> transformers
// (in order). Nothing here touches the filesystem.
package source

import (
	"context"
	"encoding/json"
)

// FileKind discriminates virtual files.
type FileKind string

const (
	KindPage FileKind = "page"
	KindMeta FileKind = "meta"
)

// IsValid reports whether k is a known kind.
func (k FileKind) IsValid() bool {
	return k == KindPage || k == KindMeta
}

// VirtualFile is an in-memory stand-in for a content source. Load never mutates it.
type VirtualFile struct {
	Path string         `json:"path" yaml:"path"`
	Kind FileKind       `json:"type" yaml:"type"`
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// Transformer enriches a Result in place. Transformers run one at a time and
// have exclusive access to the Result during their turn.
type Transformer func(ctx context.Context, r *Result) error

// Result is the outcome of one Load call.
type Result struct {
	// Graph is always a folder node rooted at the configured root.
	Graph *Node
	Pages []*Page
	Metas []*Meta
	// Data is the channel transformers use to publish artifacts to callers and to each other.
	Data map[string]any
}

// MarshalJSON renders the result with lower-case keys.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Graph *Node          `json:"graph"`
		Pages []*Page        `json:"pages"`
		Metas []*Meta        `json:"metas"`
		Data  map[string]any `json:"data"`
	}{r.Graph, r.Pages, r.Metas, r.Data})
}

// copyData returns a shallow copy so records never alias caller maps.
func copyData(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// flatten merges the descriptor under "file" with the free-form fields; the
// descriptor always wins.
func flatten(file any, data map[string]any) map[string]any {
	out := make(map[string]any, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	out["file"] = file
	return out
}

// stringField reads a string-valued field from free-form data.
func stringField(data map[string]any, key string) (string, bool) {
	v, ok := data[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// stringsField reads a list of strings, accepting []string or []any of strings.
func stringsField(data map[string]any, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
