package source

import (
	"sort"

	derrors "git.home.luguber.info/inful/docsource/internal/errors"
	"git.home.luguber.info/inful/docsource/internal/vpath"
)

type buildOptions struct {
	legacyLengthOrder bool
}

// BuildOption configures BuildGraph.
type BuildOption func(*buildOptions)

// WithLegacyLengthOrder orders directories by raw key length instead of
// segment count. Only needed to reproduce trees built by older versions.
// A proper prefix is always the shorter string, so parents still precede
// their children; only the order of sibling folders can differ.
func WithLegacyLengthOrder() BuildOption {
	return func(o *buildOptions) { o.legacyLengthOrder = true }
}

// BuildGraph groups pages and metas by directory and assembles a single tree
// rooted at rootDir.
//
// Each directory becomes one folder whose children are its pages (input
// order), then its metas (input order), then child folders in processing
// order. Directories are processed shallowest first, and each folder is
// attached to its nearest already-registered ancestor. Ancestors without any
// files of their own are not synthesized. The root folder is always
// registered, so every chain terminates there.
func BuildGraph(rootDir string, pages []*Page, metas []*Meta, opts ...BuildOption) (*Node, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	leaves := make(map[string][]*Node)
	var keys []string
	add := func(dir string, n *Node) {
		if _, ok := leaves[dir]; !ok {
			keys = append(keys, dir)
		}
		leaves[dir] = append(leaves[dir], n)
	}

	for _, p := range pages {
		if p != nil {
			add(p.File.Dirname, PageNode(p))
		}
	}
	for _, m := range metas {
		if m != nil {
			add(m.File.Dirname, MetaNode(m))
		}
	}
	if _, ok := leaves[rootDir]; !ok {
		leaves[rootDir] = nil
		keys = append(keys, rootDir)
	}

	orderDirectories(keys, o.legacyLengthOrder)

	folders := make(map[string]*Node, len(keys))
	for _, key := range keys {
		segments := vpath.SplitPath(key)

		var parent *Node
		for i := len(segments); i >= 0; i-- {
			if node, ok := folders[vpath.Join(segments[:i]...)]; ok {
				parent = node
				break
			}
		}

		folder := FolderNode(key, leaves[key])
		folders[key] = folder
		if parent != nil {
			parent.Children = append(parent.Children, folder)
		}
	}

	root, ok := folders[rootDir]
	if !ok {
		return nil, derrors.InvariantViolation("no folder registered for root directory").
			WithContext("root_dir", rootDir)
	}
	return root, nil
}

// orderDirectories sorts keys shallowest first. Ties keep first-seen order.
func orderDirectories(keys []string, legacyLength bool) {
	depth := make(map[string]int, len(keys))
	for _, k := range keys {
		if legacyLength {
			depth[k] = len(k)
		} else {
			depth[k] = vpath.Depth(k)
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return depth[keys[i]] < depth[keys[j]]
	})
}
