package transforms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsource/internal/source"
)

type mockTransformer struct {
	name  string
	stage Stage
	deps  Dependencies
	run   func(*source.Result) error
}

func (m mockTransformer) Name() string               { return m.name }
func (m mockTransformer) Stage() Stage               { return m.stage }
func (m mockTransformer) Dependencies() Dependencies { return m.deps }
func (m mockTransformer) Transform(_ context.Context, r *source.Result) error {
	if m.run == nil {
		return nil
	}
	return m.run(r)
}

func names(ts []Transformer) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Name())
	}
	return out
}

func page(path string, data map[string]any) source.VirtualFile {
	return source.VirtualFile{Path: path, Kind: source.KindPage, Data: data}
}

func meta(path string, data map[string]any) source.VirtualFile {
	return source.VirtualFile{Path: path, Kind: source.KindMeta, Data: data}
}

// run loads files through the given transformers, in order.
func run(t *testing.T, files []source.VirtualFile, ts ...Transformer) *source.Result {
	t.Helper()
	res, err := source.Load(context.Background(), files, LoadOptions(ts)...)
	require.NoError(t, err)
	return res
}
