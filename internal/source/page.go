package source

import (
	"encoding/json"

	"git.home.luguber.info/inful/docsource/internal/vpath"
)

// Page is a resolved page record: its path descriptor plus the free-form
// fields of the originating virtual file.
type Page struct {
	File vpath.FileInfo
	Data map[string]any
}

// String returns a string field from the page data.
func (p *Page) String(key string) (string, bool) {
	return stringField(p.Data, key)
}

// Set stores a free-form field, allocating Data when needed.
func (p *Page) Set(key string, value any) {
	if p.Data == nil {
		p.Data = make(map[string]any)
	}
	p.Data[key] = value
}

// MarshalJSON emits the data fields merged with "file".
func (p *Page) MarshalJSON() ([]byte, error) {
	return json.Marshal(flatten(p.File, p.Data))
}

// Meta is a resolved meta record describing its directory.
type Meta struct {
	File vpath.FileInfo
	Data map[string]any
}

// String returns a string field from the meta data.
func (m *Meta) String(key string) (string, bool) {
	return stringField(m.Data, key)
}

// Strings returns a string-list field from the meta data (nil if absent).
func (m *Meta) Strings(key string) []string {
	return stringsField(m.Data, key)
}

// MarshalJSON emits the data fields merged with "file".
func (m *Meta) MarshalJSON() ([]byte, error) {
	return json.Marshal(flatten(m.File, m.Data))
}
