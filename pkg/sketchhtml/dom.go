package sketchhtml

import "strings"

// Node is one element or text run in the parsed tree.
type Node struct {
	Tag      string // empty for text nodes
	Attrs    map[string]string
	Text     string
	Children []*Node
	Parent   *Node
}

func (n *Node) IsText() bool { return n.Tag == "" }

func (n *Node) Attr(name string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[name]
}

func (n *Node) addChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// InnerText concatenates all text runs beneath the node.
func (n *Node) InnerText() string {
	var parts []string
	var walk func(*Node)
	walk = func(node *Node) {
		if node.IsText() {
			parts = append(parts, node.Text)
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}

// Find returns the first descendant with the given tag, depth-first, or
// nil.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// Elements returns the element children only, skipping text runs.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if !c.IsText() {
			out = append(out, c)
		}
	}
	return out
}
