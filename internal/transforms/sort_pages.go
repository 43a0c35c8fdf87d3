package transforms

import (
	"context"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docsource/internal/source"
)

type sortPagesTransformer struct{}

// SortPages orders Result.Pages by slug path, then locale. Pages with equal
// keys keep their relative order.
func SortPages() Transformer { return sortPagesTransformer{} }

func (sortPagesTransformer) Name() string { return "sort_pages" }

func (sortPagesTransformer) Stage() Stage { return StageFinalize }

func (sortPagesTransformer) Dependencies() Dependencies {
	return Dependencies{
		MustRunAfter: []string{"slugs"},
		Consumes:     []string{DataSlugs},
	}
}

func (sortPagesTransformer) Transform(_ context.Context, r *source.Result) error {
	slugs, _ := r.Data[DataSlugs].(map[string][]string)
	key := func(p *source.Page) string {
		s, ok := slugs[p.File.FlattenedPath]
		if !ok {
			s = PageSlugs(p.File)
		}
		return strings.Join(s, "/")
	}

	sort.SliceStable(r.Pages, func(i, j int) bool {
		a, b := r.Pages[i], r.Pages[j]
		ka, kb := key(a), key(b)
		if ka != kb {
			return ka < kb
		}
		return a.File.Locale < b.File.Locale
	})
	return nil
}
