package source

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleGraph(t *testing.T) *Node {
	t.Helper()
	graph, err := BuildGraph("", []*Page{
		mustPage(t, "index.mdx"),
		mustPage(t, "guides/index.mdx"),
		mustPage(t, "guides/auth/login.mdx"),
	}, []*Meta{mustMeta(t, "guides/meta.json")})
	require.NoError(t, err)
	return graph
}

func TestNode_MarshalJSON(t *testing.T) {
	page := mustPage(t, "guides/intro.mdx")
	page.Set("title", "Intro")
	page.Set("file", "ignored")

	raw, err := json.Marshal(FolderNode("guides", []*Node{PageNode(page)}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "folder", decoded["type"])
	assert.Equal(t, "guides", decoded["dir"])
	children := decoded["children"].([]any)
	require.Len(t, children, 1)

	child := children[0].(map[string]any)
	assert.Equal(t, "page", child["type"])
	fields := child["page"].(map[string]any)
	assert.Equal(t, "Intro", fields["title"])
	file := fields["file"].(map[string]any)
	assert.Equal(t, "guides/intro.mdx", file["path"])
	assert.Equal(t, "intro", file["name"])
}

func TestNode_MarshalJSON_UnknownKind(t *testing.T) {
	_, err := json.Marshal(&Node{Kind: "asset"})
	assert.Error(t, err)
}

func TestNode_WalkAndCounts(t *testing.T) {
	graph := exampleGraph(t)

	pages, metas, folders := graph.Counts()
	assert.Equal(t, 3, pages)
	assert.Equal(t, 1, metas)
	assert.Equal(t, 3, folders)

	var visited []string
	err := graph.Walk(func(n *Node, ancestors []*Node) error {
		if n.IsFolder() && n.Dir == "guides/auth" {
			assert.Len(t, ancestors, 2)
			return SkipChildren
		}
		if n.Kind == NodePage {
			visited = append(visited, n.Page.File.Path)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"index.mdx", "guides/index.mdx"}, visited)
}

func TestWriteTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, exampleGraph(t)))

	expected := "/\n" +
		"├── page index.mdx\n" +
		"└── guides/\n" +
		"    ├── page guides/index.mdx\n" +
		"    ├── meta guides/meta.json\n" +
		"    └── guides/auth/\n" +
		"        └── page guides/auth/login.mdx\n"
	assert.Equal(t, expected, buf.String())
}

func TestResult_MarshalJSON(t *testing.T) {
	res := &Result{Graph: FolderNode("", nil), Data: map[string]any{"k": "v"}}
	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"graph":{"type":"folder","dir":"","children":[]},"pages":null,"metas":null,"data":{"k":"v"}}`, string(raw))
}

func TestMeta_Strings(t *testing.T) {
	m := mustMeta(t, "meta.json")
	m.Data["pages"] = []any{"a", 1, "b"}
	assert.Equal(t, []string{"a", "b"}, m.Strings("pages"))

	m.Data["pages"] = []string{"x"}
	assert.Equal(t, []string{"x"}, m.Strings("pages"))

	assert.Nil(t, m.Strings("missing"))
}
