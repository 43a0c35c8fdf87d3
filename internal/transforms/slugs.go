package transforms

import (
	"context"
	"fmt"
	"strings"

	derrors "git.home.luguber.info/inful/docsource/internal/errors"
	"git.home.luguber.info/inful/docsource/internal/source"
	"git.home.luguber.info/inful/docsource/internal/vpath"
)

type slugsTransformer struct{}

// Slugs computes the URL segments of every page. Two pages of the same locale
// may not share a slug path.
func Slugs() Transformer { return slugsTransformer{} }

func (slugsTransformer) Name() string { return "slugs" }

func (slugsTransformer) Stage() Stage { return StageEnrich }

func (slugsTransformer) Dependencies() Dependencies {
	return Dependencies{Produces: []string{DataSlugs}}
}

func (slugsTransformer) Transform(_ context.Context, r *source.Result) error {
	slugs := make(map[string][]string, len(r.Pages))
	owners := make(map[string]string, len(r.Pages))

	for _, p := range r.Pages {
		slug := PageSlugs(p.File)
		key := p.File.Locale + ":" + strings.Join(slug, "/")
		if prev, dup := owners[key]; dup {
			return derrors.ValidationFailed("slugs",
				fmt.Sprintf("pages %q and %q resolve to the same slug %q", prev, p.File.Path, "/"+strings.Join(slug, "/"))).
				WithContext("path", p.File.Path).
				WithContext("locale", p.File.Locale)
		}
		owners[key] = p.File.Path
		slugs[p.File.FlattenedPath] = slug
	}

	r.Data[DataSlugs] = slugs
	return nil
}

// PageSlugs returns the slug segments of a page: its directories plus its
// name, with a trailing "index" dropped. The root index page has no segments.
func PageSlugs(info vpath.FileInfo) []string {
	segs := vpath.SplitPath(info.Dirname)
	if info.Name != "index" {
		segs = append(segs, info.Name)
	}
	for i, s := range segs {
		segs[i] = slugify(s)
	}
	return segs
}

// PageURL joins slugs into an absolute URL, prefixed by a non-default locale.
func PageURL(locale string, slugs []string) string {
	parts := slugs
	if locale != "" {
		parts = append([]string{locale}, slugs...)
	}
	return "/" + strings.Join(parts, "/")
}

func slugify(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
