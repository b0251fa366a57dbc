// Package treediff turns flat repository output into structured views.
package treediff

import "strings"

// Node types.
const (
	TypeDirectory = "directory"
	TypeFile      = "file"
)

// Node is an entry of a file tree.
type Node struct {
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Type     string  `json:"type"`
	Children []*Node `json:"children,omitempty"`
}

// BuildTree folds slash-separated paths into a tree. Children keep the order
// in which they were first encountered and names are unique within a parent;
// a name already taken by a file is not reused for a directory.
func BuildTree(paths []string) []*Node {
	root := &Node{Type: TypeDirectory, Children: []*Node{}}
	for _, p := range paths {
		segments := splitPath(p)
		if len(segments) == 0 {
			continue
		}
		parent := root
		for i, seg := range segments {
			last := i == len(segments)-1
			existing := findChild(parent, seg)
			if last {
				if existing == nil {
					parent.Children = append(parent.Children, &Node{
						Name: seg,
						Path: strings.Join(segments, "/"),
						Type: TypeFile,
					})
				}
				break
			}
			if existing == nil {
				existing = &Node{
					Name:     seg,
					Path:     strings.Join(segments[:i+1], "/"),
					Type:     TypeDirectory,
					Children: []*Node{},
				}
				parent.Children = append(parent.Children, existing)
			} else if existing.Type != TypeDirectory {
				// a file already holds this name at this level
				break
			}
			parent = existing
		}
	}
	return root.Children
}

func findChild(n *Node, name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
