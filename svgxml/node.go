// Package svgxml holds a small dynamic-tag XML tree, used for the parts of
// the emitted document whose shape is decided at runtime (per-depth nested
// transform groups, variable-length defs) rather than fixed by a struct's
// field layout.
package svgxml

import "encoding/xml"

// Attr is one XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is an element with a runtime-chosen tag name, attributes, optional
// text content, and child nodes.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// New returns an empty Node with the given tag.
func New(tag string) *Node {
	return &Node{Tag: tag}
}

// Attr appends an attribute and returns the node, for chaining.
func (n *Node) Attr(name, value string) *Node {
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
	return n
}

// Add appends a child node and returns the parent, for chaining.
func (n *Node) Add(child *Node) *Node {
	n.Children = append(n.Children, child)
	return n
}

// SetText sets the node's text content.
func (n *Node) SetText(text string) *Node {
	n.Text = text
	return n
}

// MarshalXML implements xml.Marshaler directly rather than relying on
// struct tags, since a Node's tag name and attribute set are both
// determined at runtime (grounded on the companion runtime's data-object
// pattern: dynamic structure that a fixed struct can't describe).
func (n *Node) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	for _, a := range n.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if n.Text != "" {
		if err := e.EncodeToken(xml.CharData(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := e.Encode(c); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}
