package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGraph_NestedDirectories(t *testing.T) {
	root := mustPage(t, "index.mdx")
	guides := mustPage(t, "guides/index.mdx")
	auth := mustPage(t, "guides/auth/login.mdx")

	graph, err := BuildGraph("", []*Page{root, guides, auth}, nil)
	require.NoError(t, err)

	expected := FolderNode("", []*Node{
		PageNode(root),
		FolderNode("guides", []*Node{
			PageNode(guides),
			FolderNode("guides/auth", []*Node{PageNode(auth)}),
		}),
	})
	assert.Equal(t, expected, graph)
}

func TestBuildGraph_SiblingsWithoutRootFile(t *testing.T) {
	a := mustPage(t, "a/one.mdx")
	b := mustPage(t, "b/two.mdx")

	graph, err := BuildGraph("", []*Page{a, b}, nil)
	require.NoError(t, err)

	require.True(t, graph.IsFolder())
	require.Len(t, graph.Children, 2)
	assert.Equal(t, FolderNode("a", []*Node{PageNode(a)}), graph.Children[0])
	assert.Equal(t, FolderNode("b", []*Node{PageNode(b)}), graph.Children[1])
}

func TestBuildGraph_EmptyInputYieldsEmptyRoot(t *testing.T) {
	graph, err := BuildGraph("", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, FolderNode("", nil), graph)
	assert.NotNil(t, graph.Children)
}

func TestBuildGraph_PagesBeforeMetas(t *testing.T) {
	meta := mustMeta(t, "meta.json")
	p1 := mustPage(t, "b.mdx")
	p2 := mustPage(t, "a.mdx")
	sub := mustMeta(t, "guides/meta.json")

	graph, err := BuildGraph("", []*Page{p1, p2}, []*Meta{meta, sub})
	require.NoError(t, err)

	require.Len(t, graph.Children, 4)
	assert.Equal(t, PageNode(p1), graph.Children[0])
	assert.Equal(t, PageNode(p2), graph.Children[1])
	assert.Equal(t, MetaNode(meta), graph.Children[2])
	assert.Equal(t, FolderNode("guides", []*Node{MetaNode(sub)}), graph.Children[3])
}

func TestBuildGraph_MissingIntermediateAttachesToNearestAncestor(t *testing.T) {
	deep := mustPage(t, "a/b/c.mdx")
	mid := mustPage(t, "x/y.mdx")
	deeper := mustPage(t, "x/y/z/w.mdx")

	graph, err := BuildGraph("", []*Page{deep, mid, deeper}, nil)
	require.NoError(t, err)

	expected := FolderNode("", []*Node{
		FolderNode("x", []*Node{
			PageNode(mid),
			FolderNode("x/y/z", []*Node{PageNode(deeper)}),
		}),
		FolderNode("a/b", []*Node{PageNode(deep)}),
	})
	assert.Equal(t, expected, graph)
}

func TestBuildGraph_DirectoryOrdering(t *testing.T) {
	long := mustPage(t, "abcdefgh/page.mdx")
	short := mustPage(t, "a/b/page.mdx")

	t.Run("segment count", func(t *testing.T) {
		graph, err := BuildGraph("", []*Page{long, short}, nil)
		require.NoError(t, err)
		require.Len(t, graph.Children, 2)
		assert.Equal(t, "abcdefgh", graph.Children[0].Dir)
		assert.Equal(t, "a/b", graph.Children[1].Dir)
	})

	t.Run("legacy string length", func(t *testing.T) {
		graph, err := BuildGraph("", []*Page{long, short}, nil, WithLegacyLengthOrder())
		require.NoError(t, err)
		require.Len(t, graph.Children, 2)
		assert.Equal(t, "a/b", graph.Children[0].Dir)
		assert.Equal(t, "abcdefgh", graph.Children[1].Dir)
	})
}

func TestBuildGraph_NonEmptyRootKey(t *testing.T) {
	// Direct callers may build over un-stripped directories.
	top := mustPage(t, "docs/index.mdx")
	nested := mustPage(t, "docs/api/ref.mdx")
	outside := mustPage(t, "blog/post.mdx")

	graph, err := BuildGraph("docs", []*Page{top, nested, outside}, nil)
	require.NoError(t, err)

	expected := FolderNode("docs", []*Node{
		PageNode(top),
		FolderNode("docs/api", []*Node{PageNode(nested)}),
	})
	assert.Equal(t, expected, graph)
}

func TestBuildGraph_AncestorChainsArePrefixes(t *testing.T) {
	paths := []string{
		"index.mdx", "a/x.mdx", "a/b/x.mdx", "a/b/c/x.mdx", "a/bc/x.mdx",
		"ab/x.mdx", "ab/c/d/x.mdx", "z/y/x/w/v.mdx", "z/y.mdx",
	}
	pages := make([]*Page, 0, len(paths))
	for _, p := range paths {
		pages = append(pages, mustPage(t, p))
	}

	graph, err := BuildGraph("", pages, nil)
	require.NoError(t, err)

	err = graph.Walk(func(n *Node, ancestors []*Node) error {
		if !n.IsFolder() || len(ancestors) == 0 {
			return nil
		}
		chain := append(append([]*Node{}, ancestors...), n)
		assert.Equal(t, "", chain[0].Dir, "chain must start at the root")
		for i := 1; i < len(chain); i++ {
			parent, child := chain[i-1].Dir, chain[i].Dir
			assert.NotEqual(t, parent, child)
			if parent != "" {
				assert.True(t, strings.HasPrefix(child, parent+"/"), "%q is not under %q", child, parent)
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestBuildGraph_RegroupingReproducesInput(t *testing.T) {
	pages := []*Page{
		mustPage(t, "b.mdx"), mustPage(t, "guides/one.mdx"), mustPage(t, "a.mdx"),
		mustPage(t, "guides/two.mdx"), mustPage(t, "api/v1/ref.mdx"),
	}
	metas := []*Meta{
		mustMeta(t, "guides/meta.json"), mustMeta(t, "meta.json"), mustMeta(t, "api/v1/meta.json"),
	}

	graph, err := BuildGraph("", pages, metas)
	require.NoError(t, err)

	got := map[string][]string{}
	err = graph.Walk(func(n *Node, _ []*Node) error {
		switch n.Kind {
		case NodePage:
			got[n.Page.File.Dirname] = append(got[n.Page.File.Dirname], "page:"+n.Page.File.Path)
		case NodeMeta:
			got[n.Meta.File.Dirname] = append(got[n.Meta.File.Dirname], "meta:"+n.Meta.File.Path)
		}
		return nil
	})
	require.NoError(t, err)

	want := map[string][]string{}
	for _, p := range pages {
		want[p.File.Dirname] = append(want[p.File.Dirname], "page:"+p.File.Path)
	}
	for _, m := range metas {
		want[m.File.Dirname] = append(want[m.File.Dirname], "meta:"+m.File.Path)
	}
	assert.Equal(t, want, got)
}

func TestBuildGraph_Idempotent(t *testing.T) {
	pages := []*Page{mustPage(t, "index.mdx"), mustPage(t, "a/b.mdx"), mustPage(t, "a/c/d.mdx")}
	metas := []*Meta{mustMeta(t, "a/meta.json")}

	first, err := BuildGraph("", pages, metas)
	require.NoError(t, err)
	second, err := BuildGraph("", pages, metas)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
