package vpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/docsource/internal/errors"
)

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"/", []string{}},
		{"a", []string{"a"}},
		{"a/b/c.md", []string{"a", "b", "c.md"}},
		{"/a//b/", []string{"a", "b"}},
		{"///x///", []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPath(tt.in))
		})
	}
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, Depth(""))
	assert.Equal(t, 1, Depth("abcdef"))
	assert.Equal(t, 2, Depth("a/b"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		root string
		want FileInfo
	}{
		{
			name: "nested page",
			raw:  "guides/auth/login.mdx",
			want: FileInfo{Dirname: "guides/auth", Name: "login", Ext: ".mdx", FlattenedPath: "guides/auth/login", Path: "guides/auth/login.mdx"},
		},
		{
			name: "root file",
			raw:  "index.mdx",
			want: FileInfo{Dirname: "", Name: "index", Ext: ".mdx", FlattenedPath: "index", Path: "index.mdx"},
		},
		{
			name: "locale suffix",
			raw:  "guides/index.fr.mdx",
			want: FileInfo{Dirname: "guides", Name: "index", Locale: "fr", Ext: ".mdx", FlattenedPath: "guides/index.fr", Path: "guides/index.fr.mdx"},
		},
		{
			name: "region locale suffix",
			raw:  "guides/setup.en-us.mdx",
			want: FileInfo{Dirname: "guides", Name: "setup", Locale: "en-us", Ext: ".mdx", FlattenedPath: "guides/setup.en-us", Path: "guides/setup.en-us.mdx"},
		},
		{
			name: "version number is not a locale",
			raw:  "v1.2.mdx",
			want: FileInfo{Name: "v1.2", Ext: ".mdx", FlattenedPath: "v1.2", Path: "v1.2.mdx"},
		},
		{
			name: "dotted name is not a locale",
			raw:  "next.config.mdx",
			want: FileInfo{Name: "next.config", Ext: ".mdx", FlattenedPath: "next.config", Path: "next.config.mdx"},
		},
		{
			name: "no extension",
			raw:  "a/README",
			want: FileInfo{Dirname: "a", Name: "README", FlattenedPath: "a/README", Path: "a/README"},
		},
		{
			name: "dotfile keeps its name",
			raw:  ".hidden",
			want: FileInfo{Name: ".hidden", FlattenedPath: ".hidden", Path: ".hidden"},
		},
		{
			name: "root stripped",
			raw:  "docs/guide.mdx",
			root: "docs",
			want: FileInfo{Dirname: "", Name: "guide", Ext: ".mdx", FlattenedPath: "guide", Path: "guide.mdx"},
		},
		{
			name: "messy separators on both sides",
			raw:  "/docs//api/ref.md",
			root: "docs/",
			want: FileInfo{Dirname: "api", Name: "ref", Ext: ".md", FlattenedPath: "api/ref", Path: "api/ref.md"},
		},
		{
			name: "backslashes",
			raw:  `a\b\c.md`,
			want: FileInfo{Dirname: "a/b", Name: "c", Ext: ".md", FlattenedPath: "a/b/c", Path: "a/b/c.md"},
		},
		{
			name: "dot segments resolved",
			raw:  "a/./b/../c.md",
			want: FileInfo{Dirname: "a", Name: "c", Ext: ".md", FlattenedPath: "a/c", Path: "a/c.md"},
		},
		{
			name: "multi-segment root",
			raw:  "content/docs/x/y.md",
			root: "content/docs",
			want: FileInfo{Dirname: "x", Name: "y", Ext: ".md", FlattenedPath: "x/y", Path: "x/y.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw, tt.root)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_UnicodeNormalization(t *testing.T) {
	decomposed, err := Parse("cafe\u0301/menu.md", "")
	require.NoError(t, err)
	composed, err := Parse("caf\u00e9/menu.md", "")
	require.NoError(t, err)

	assert.Equal(t, composed.Dirname, decomposed.Dirname)
	assert.Equal(t, "caf\u00e9", decomposed.Dirname)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		root string
	}{
		{"root is not a prefix", "guide.mdx", "docs"},
		{"root is only a string prefix", "docs2/guide.mdx", "docs"},
		{"path equals root", "docs", "docs"},
		{"empty path", "", ""},
		{"only separators", "///", ""},
		{"escapes root", "../secret.md", ""},
		{"escapes after resolution", "a/../../b.md", ""},
		{"root escapes", "a.md", "../x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw, tt.root)
			require.Error(t, err)
			assert.True(t, derrors.IsCategory(err, derrors.CategoryPath), "want path error, got %v", err)
		})
	}
}

func TestNormalize(t *testing.T) {
	p, ok := Normalize(`\a\\b\`)
	assert.True(t, ok)
	assert.Equal(t, "a/b", p)

	p, ok = Normalize("./.")
	assert.True(t, ok)
	assert.Equal(t, "", p)

	_, ok = Normalize("..")
	assert.False(t, ok)
}
