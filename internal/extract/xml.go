// Package extract pulls article structure and document metadata out of
// semi-structured statute XML. The two source feeds format their documents
// differently, so everything here works on local tag names and per-source
// tag conventions rather than fixed paths.
package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrMalformedXML marks a whole-document parse failure. Individual elements
// that cannot be interpreted are skipped, not reported.
var ErrMalformedXML = errors.New("malformed XML document")

// Node is a generic XML element tree. Text holds the character data directly
// inside the element; Children holds child elements in document order.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []Node     `xml:",any"`
}

// ParseXML decodes an XML document into a Node tree. Non-UTF-8 documents are
// converted via their declared encoding (the e-Gov feed has shipped
// Shift_JIS in the past).
func ParseXML(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var root Node
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	return &root, nil
}

// Local returns the element's local tag name without namespace.
func (n *Node) Local() string {
	return n.XMLName.Local
}

// Attr returns the value of the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Walk visits n and every descendant in document order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for i := range n.Children {
		n.Children[i].Walk(visit)
	}
}

// FindFirst returns the first descendant (or n itself) whose local name
// matches, in document order.
func (n *Node) FindFirst(local string) *Node {
	var found *Node
	n.Walk(func(c *Node) {
		if found == nil && c.Local() == local {
			found = c
		}
	})
	return found
}

// FindAll returns every descendant (including n) whose local name matches,
// in document order.
func (n *Node) FindAll(local string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) {
		if c.Local() == local {
			out = append(out, c)
		}
	})
	return out
}

// AllText concatenates the trimmed character data of n and all descendants,
// space-joined in document order.
func (n *Node) AllText() string {
	var parts []string
	n.Walk(func(c *Node) {
		if t := strings.TrimSpace(c.Text); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(parts, " ")
}
