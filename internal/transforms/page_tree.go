package transforms

import (
	"context"
	"path"
	"sort"

	"git.home.luguber.info/inful/docsource/internal/source"
)

// Node types of a navigation tree.
const (
	TreeRoot   = "root"
	TreeFolder = "folder"
	TreePage   = "page"
)

// restMarker in a meta "pages" list stands for every item not listed.
const restMarker = "..."

// PageTreeNode is one entry of the navigation tree.
type PageTreeNode struct {
	Type     string          `json:"type"`
	Name     string          `json:"name"`
	URL      string          `json:"url,omitempty"`
	Index    *PageTreeNode   `json:"index,omitempty"`
	Children []*PageTreeNode `json:"children,omitempty"`
}

type pageTreeTransformer struct{}

// PageTree converts the document tree into a navigation tree. The default
// locale tree is stored under DataPageTree; every other locale found on pages
// gets its own tree under DataPageTrees, falling back to default-locale files.
func PageTree() Transformer { return pageTreeTransformer{} }

func (pageTreeTransformer) Name() string { return "page_tree" }

func (pageTreeTransformer) Stage() Stage { return StageStructure }

func (pageTreeTransformer) Dependencies() Dependencies {
	return Dependencies{
		MustRunAfter: []string{"titles", "slugs"},
		Produces:     []string{DataPageTree, DataPageTrees},
		Consumes:     []string{DataSlugs},
	}
}

func (pageTreeTransformer) Transform(_ context.Context, r *source.Result) error {
	slugs, _ := r.Data[DataSlugs].(map[string][]string)
	b := treeBuilder{slugs: slugs}

	b.locale = ""
	r.Data[DataPageTree] = b.folder(r.Graph, true)

	locales := pageLocales(r.Pages)
	if len(locales) > 0 {
		trees := make(map[string]*PageTreeNode, len(locales))
		for _, locale := range locales {
			b.locale = locale
			trees[locale] = b.folder(r.Graph, true)
		}
		r.Data[DataPageTrees] = trees
	}
	return nil
}

func pageLocales(pages []*source.Page) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range pages {
		if l := p.File.Locale; l != "" && !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}

type treeBuilder struct {
	locale string
	slugs  map[string][]string
}

type treeItem struct {
	name string
	node *PageTreeNode
}

func (b treeBuilder) folder(n *source.Node, isRoot bool) *PageTreeNode {
	out := &PageTreeNode{Type: TreeFolder, Name: path.Base(n.Dir)}
	if isRoot {
		out.Type, out.Name = TreeRoot, ""
	}

	meta := b.pickMeta(n.Children)
	if meta != nil {
		if title, ok := meta.String("title"); ok && title != "" {
			out.Name = title
		}
	}

	var items []treeItem
	for _, p := range b.pickPages(n.Children) {
		page := b.page(p)
		if !isRoot && p.File.Name == "index" {
			out.Index = page
			continue
		}
		items = append(items, treeItem{name: p.File.Name, node: page})
	}
	for _, child := range n.Children {
		if !child.IsFolder() {
			continue
		}
		sub := b.folder(child, false)
		if sub.Index == nil && len(sub.Children) == 0 {
			continue
		}
		items = append(items, treeItem{name: path.Base(child.Dir), node: sub})
	}

	var order []string
	if meta != nil {
		order = meta.Strings("pages")
	}
	for _, item := range orderItems(items, order) {
		out.Children = append(out.Children, item.node)
	}
	return out
}

func (b treeBuilder) page(p *source.Page) *PageTreeNode {
	name, ok := p.String("title")
	if !ok || name == "" {
		name = p.File.Name
	}
	slug, ok := b.slugs[p.File.FlattenedPath]
	if !ok {
		slug = PageSlugs(p.File)
	}
	return &PageTreeNode{Type: TreePage, Name: name, URL: PageURL(b.locale, slug)}
}

// pickPages returns one page per name: the builder's locale variant if present,
// otherwise the default-locale file. Order follows first appearance.
func (b treeBuilder) pickPages(children []*source.Node) []*source.Page {
	var names []string
	chosen := map[string]*source.Page{}
	for _, c := range children {
		if c.Kind != source.NodePage {
			continue
		}
		p := c.Page
		if p.File.Locale != b.locale && p.File.Locale != "" {
			continue
		}
		prev, seen := chosen[p.File.Name]
		if !seen {
			names = append(names, p.File.Name)
		}
		if !seen || (p.File.Locale == b.locale && prev.File.Locale != b.locale) {
			chosen[p.File.Name] = p
		}
	}

	out := make([]*source.Page, 0, len(names))
	for _, name := range names {
		out = append(out, chosen[name])
	}
	return out
}

func (b treeBuilder) pickMeta(children []*source.Node) *source.Meta {
	var fallback *source.Meta
	for _, c := range children {
		if c.Kind != source.NodeMeta {
			continue
		}
		switch c.Meta.File.Locale {
		case b.locale:
			return c.Meta
		case "":
			if fallback == nil {
				fallback = c.Meta
			}
		}
	}
	return fallback
}

// orderItems applies a meta "pages" list. Without a list the original order is
// kept. With one, listed items come first in list order, unknown names are
// ignored, and unlisted items appear only where the rest marker is placed.
func orderItems(items []treeItem, order []string) []treeItem {
	if len(order) == 0 {
		return items
	}

	used := make([]bool, len(items))
	var out []treeItem
	restAt := -1

	for _, entry := range order {
		if entry == restMarker {
			if restAt < 0 {
				restAt = len(out)
			}
			continue
		}
		for i, item := range items {
			if !used[i] && item.name == entry {
				used[i] = true
				out = append(out, item)
			}
		}
	}

	if restAt < 0 {
		return out
	}

	var rest []treeItem
	for i, item := range items {
		if !used[i] {
			rest = append(rest, item)
		}
	}
	tail := append([]treeItem(nil), out[restAt:]...)
	return append(append(out[:restAt], rest...), tail...)
}
