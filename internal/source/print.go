package source

import (
	"fmt"
	"io"
	"strings"
)

// WriteTree writes an indented, box-drawn rendering of the tree to w.
//
//	/
//	├── page index.mdx
//	└── guides/
//	    └── page guides/intro.mdx
func WriteTree(w io.Writer, root *Node) error {
	if root == nil {
		return nil
	}
	if _, err := fmt.Fprintln(w, label(root)); err != nil {
		return err
	}
	return writeChildren(w, root, "")
}

func writeChildren(w io.Writer, n *Node, prefix string) error {
	for i, child := range n.Children {
		last := i == len(n.Children)-1
		branch, next := "├── ", "│   "
		if last {
			branch, next = "└── ", "    "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, label(child)); err != nil {
			return err
		}
		if child.IsFolder() {
			if err := writeChildren(w, child, prefix+next); err != nil {
				return err
			}
		}
	}
	return nil
}

func label(n *Node) string {
	switch n.Kind {
	case NodePage:
		return "page " + n.Page.File.Path
	case NodeMeta:
		return "meta " + n.Meta.File.Path
	case NodeFolder:
		if n.Dir == "" {
			return "/"
		}
		return strings.TrimSuffix(n.Dir, "/") + "/"
	default:
		return string(n.Kind)
	}
}
