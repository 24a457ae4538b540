package recorder

import "strings"

// LabelAttribute marks an element as a named recording target.
const LabelAttribute = "data-recorder-label"

var interactiveTags = map[string]bool{
	"a":        true,
	"button":   true,
	"input":    true,
	"textarea": true,
}

// Element is the slice of a DOM node the recorder needs for target resolution.
type Element interface {
	TagName() string
	ID() string
	Attribute(name string) (string, bool)
	Parent() Element
}

// ResolveTarget walks el and its ancestors and labels the nearest labelled or
// interactive element. It returns "" when nothing qualifies.
func ResolveTarget(el Element) string {
	for cur := el; cur != nil; cur = cur.Parent() {
		label, labelled := cur.Attribute(LabelAttribute)
		tag := strings.ToLower(cur.TagName())
		if !labelled && !interactiveTags[tag] {
			continue
		}
		if label != "" {
			return label
		}
		if id := cur.ID(); id != "" {
			return tag + "#" + id
		}
		return tag
	}
	return ""
}

// Node is a minimal Element for synthetic pages. A nil *Node behaves as a
// detached element with no attributes.
type Node struct {
	Tag    string
	NodeID string
	Attrs  map[string]string
	Up     *Node
}

func (n *Node) TagName() string {
	if n == nil {
		return ""
	}
	return n.Tag
}

func (n *Node) ID() string {
	if n == nil {
		return ""
	}
	return n.NodeID
}

func (n *Node) Attribute(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

func (n *Node) Parent() Element {
	if n == nil || n.Up == nil {
		return nil
	}
	return n.Up
}
