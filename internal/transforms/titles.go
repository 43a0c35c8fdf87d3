package transforms

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/docsource/internal/source"
	"git.home.luguber.info/inful/docsource/internal/vpath"
)

type titlesTransformer struct{}

// Titles derives a display title for every page that has none.
func Titles() Transformer { return titlesTransformer{} }

func (titlesTransformer) Name() string { return "titles" }

func (titlesTransformer) Stage() Stage { return StageEnrich }

func (titlesTransformer) Dependencies() Dependencies {
	return Dependencies{Produces: []string{DataTitles}}
}

func (titlesTransformer) Transform(_ context.Context, r *source.Result) error {
	caser := cases.Title(language.Und)
	titles := make(map[string]string, len(r.Pages))

	for _, p := range r.Pages {
		title, ok := p.String("title")
		if !ok || strings.TrimSpace(title) == "" {
			title = titleFromFile(caser, p.File)
			p.Set("title", title)
		}
		titles[p.File.FlattenedPath] = title
	}

	r.Data[DataTitles] = titles
	return nil
}

// titleFromFile uses the directory name for index pages outside the root.
func titleFromFile(caser cases.Caser, info vpath.FileInfo) string {
	base := info.Name
	if base == "index" {
		if segs := vpath.SplitPath(info.Dirname); len(segs) > 0 {
			base = segs[len(segs)-1]
		}
	}
	return humanize(caser, base)
}

// humanize turns "getting-started" into "Getting Started".
func humanize(caser cases.Caser, s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return caser.String(strings.Join(strings.Fields(s), " "))
}
