package source

import (
	"encoding/json"
	"errors"
	"fmt"
)

// NodeKind tags a graph node.
type NodeKind string

const (
	NodePage   NodeKind = "page"
	NodeMeta   NodeKind = "meta"
	NodeFolder NodeKind = "folder"
)

// Node is one of: a page leaf, a meta leaf, or a folder with ordered children.
// Only the field matching Kind is set. Build nodes with PageNode, MetaNode and
// FolderNode.
type Node struct {
	Kind NodeKind

	Page *Page
	Meta *Meta

	// Dir is the directory key of a folder node.
	Dir      string
	Children []*Node
}

// PageNode wraps a page.
func PageNode(p *Page) *Node {
	return &Node{Kind: NodePage, Page: p}
}

// MetaNode wraps a meta.
func MetaNode(m *Meta) *Node {
	return &Node{Kind: NodeMeta, Meta: m}
}

// FolderNode creates a folder for dir with the given children.
func FolderNode(dir string, children []*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Kind: NodeFolder, Dir: dir, Children: children}
}

// IsFolder reports whether n is a folder node.
func (n *Node) IsFolder() bool {
	return n != nil && n.Kind == NodeFolder
}

// SkipChildren may be returned from a WalkFunc to skip a folder's children.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node in depth-first pre-order. ancestors holds
// the folder chain from the root down to n's parent; it must not be retained.
type WalkFunc func(n *Node, ancestors []*Node) error

// Walk visits n and its descendants depth-first, pre-order.
func (n *Node) Walk(fn WalkFunc) error {
	err := n.walk(fn, nil)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func (n *Node) walk(fn WalkFunc, ancestors []*Node) error {
	if n == nil {
		return nil
	}
	if err := fn(n, ancestors); err != nil {
		return err
	}
	if n.Kind != NodeFolder {
		return nil
	}
	ancestors = append(ancestors, n)
	for _, child := range n.Children {
		if err := child.walk(fn, ancestors); err != nil {
			if errors.Is(err, SkipChildren) {
				continue
			}
			return err
		}
	}
	return nil
}

// Counts returns the number of page, meta and folder nodes under n (inclusive).
func (n *Node) Counts() (pages, metas, folders int) {
	_ = n.Walk(func(node *Node, _ []*Node) error {
		switch node.Kind {
		case NodePage:
			pages++
		case NodeMeta:
			metas++
		case NodeFolder:
			folders++
		}
		return nil
	})
	return pages, metas, folders
}

// MarshalJSON emits the tagged form {"type": ..., <payload>}.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case NodePage:
		return json.Marshal(struct {
			Type NodeKind `json:"type"`
			Page *Page    `json:"page"`
		}{n.Kind, n.Page})
	case NodeMeta:
		return json.Marshal(struct {
			Type NodeKind `json:"type"`
			Meta *Meta    `json:"meta"`
		}{n.Kind, n.Meta})
	case NodeFolder:
		return json.Marshal(struct {
			Type     NodeKind `json:"type"`
			Dir      string   `json:"dir"`
			Children []*Node  `json:"children"`
		}{n.Kind, n.Dir, n.Children})
	default:
		return nil, fmt.Errorf("unknown node kind %q", n.Kind)
	}
}
