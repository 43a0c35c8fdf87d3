package transforms

import (
	"context"
	"testing"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsource/internal/errors"
	"git.home.luguber.info/inful/docsource/internal/observability"
	"git.home.luguber.info/inful/docsource/internal/source"
	"git.home.luguber.info/inful/docsource/internal/vpath"
)

func TestTitles(t *testing.T) {
	res := run(t, []source.VirtualFile{
		page("index.mdx", nil),
		page("guides/index.mdx", nil),
		page("guides/getting-started.mdx", nil),
		page("guides/api_reference.mdx", map[string]any{"title": "API"}),
		page("guides/blank.mdx", map[string]any{"title": "  "}),
	}, Titles())

	want := map[string]string{
		"index":                  "Index",
		"guides/index":           "Guides",
		"guides/getting-started": "Getting Started",
		"guides/api_reference":   "API",
		"guides/blank":           "Blank",
	}
	assert.Equal(t, want, res.Data[DataTitles])

	title, _ := res.Pages[2].String("title")
	assert.Equal(t, "Getting Started", title)
}

func TestSlugs(t *testing.T) {
	res := run(t, []source.VirtualFile{
		page("index.mdx", nil),
		page("guides/index.mdx", nil),
		page("guides/Quick Start.mdx", nil),
		page("guides/setup.fr.mdx", nil),
		page("guides/setup.mdx", nil),
	}, Slugs())

	want := map[string][]string{
		"index":              {},
		"guides/index":       {"guides"},
		"guides/Quick Start": {"guides", "quick-start"},
		"guides/setup.fr":    {"guides", "setup"},
		"guides/setup":       {"guides", "setup"},
	}
	assert.Equal(t, want, res.Data[DataSlugs])
}

func TestSlugs_DuplicateWithinLocale(t *testing.T) {
	_, err := source.Load(context.Background(), []source.VirtualFile{
		page("guides.mdx", nil),
		page("guides/index.mdx", nil),
	}, LoadOptions([]Transformer{Slugs()})...)

	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryTransform))
	assert.Contains(t, err.Error(), "same slug")
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "/", PageURL("", nil))
	assert.Equal(t, "/a/b", PageURL("", []string{"a", "b"}))
	assert.Equal(t, "/fr", PageURL("fr", []string{}))
	assert.Equal(t, "/fr/a", PageURL("fr", []string{"a"}))
}

func TestPageSlugs(t *testing.T) {
	info, err := vpath.Parse("Docs/Intro.md", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"docs", "intro"}, PageSlugs(info))
}

func TestComputeFingerprint(t *testing.T) {
	fp, err := ComputeFingerprint(map[string]any{"title": "A", "content": "Hello"})
	require.NoError(t, err)
	assert.Equal(t, mdfp.CalculateFingerprintFromParts("title: A", "Hello"), fp)

	withOld, err := ComputeFingerprint(map[string]any{"title": "A", "content": "Hello", mdfp.FingerprintField: "stale"})
	require.NoError(t, err)
	assert.Equal(t, fp, withOld)

	changed, err := ComputeFingerprint(map[string]any{"title": "A", "content": "Hello!"})
	require.NoError(t, err)
	assert.NotEqual(t, fp, changed)

	empty, err := ComputeFingerprint(nil)
	require.NoError(t, err)
	assert.Equal(t, mdfp.CalculateFingerprintFromParts("", ""), empty)
}

func TestFingerprint_Transform(t *testing.T) {
	res := run(t, []source.VirtualFile{
		page("a.mdx", map[string]any{"title": "A", "body": "text"}),
	}, Titles(), Fingerprint())

	fps, ok := res.Data[DataFingerprints].(map[string]string)
	require.True(t, ok)
	stored, _ := res.Pages[0].String(mdfp.FingerprintField)
	assert.Equal(t, fps["a"], stored)
	assert.NotEmpty(t, stored)

	again, err := ComputeFingerprint(res.Pages[0].Data)
	require.NoError(t, err)
	assert.Equal(t, stored, again)
}

func TestSortPages(t *testing.T) {
	res := run(t, []source.VirtualFile{
		page("z.mdx", nil),
		page("b/c.mdx", nil),
		page("index.mdx", nil),
		page("a.fr.mdx", nil),
		page("a.mdx", nil),
	}, Slugs(), SortPages())

	var got []string
	for _, p := range res.Pages {
		got = append(got, p.File.Path)
	}
	assert.Equal(t, []string{"index.mdx", "a.mdx", "a.fr.mdx", "b/c.mdx", "z.mdx"}, got)
}

func TestAdapt(t *testing.T) {
	var stage string
	probe := mockTransformer{name: "probe", stage: StageFinalize, run: func(r *source.Result) error {
		r.Data["probed"] = true
		return nil
	}}
	spy := stageSpy{fn: func(ctx context.Context, _ *source.Result) error {
		stage = observability.GetContext(ctx).Stage
		return nil
	}}

	fns := Adapt([]Transformer{probe, spy})
	require.Len(t, fns, 2)

	res, err := source.Load(context.Background(), nil, source.WithTransformers(fns...))
	require.NoError(t, err)
	assert.Equal(t, true, res.Data["probed"])
	assert.Equal(t, string(StageStructure), stage)
}

// stageSpy records the stage seen in the context.
type stageSpy struct {
	fn source.Transformer
}

func (stageSpy) Name() string               { return "spy" }
func (stageSpy) Stage() Stage               { return StageStructure }
func (stageSpy) Dependencies() Dependencies { return Dependencies{} }
func (s stageSpy) Transform(ctx context.Context, r *source.Result) error {
	return s.fn(ctx, r)
}
