// Package ast defines the page tree produced by the parser.
//
// Nodes live in a flat arena indexed by NodeID. Child lists express
// ownership, parent ids allow upward lookup, and every node carries the
// byte range of the source text it was built from. The tree never stores
// copies of the source; consumers re-slice Page.Source on demand.
package ast

import (
	"encoding/json"
	"fmt"

	"akhil.cc/concisemark/meta"
)

// NodeID indexes a node in a Page's arena.
type NodeID int32

// None is the id of no node. It is the parent of the document root.
const None NodeID = -1

// Tag identifies what a node represents.
type Tag uint8

const (
	Document Tag = iota
	Heading1
	Heading2
	Heading3
	Heading4
	Heading5
	Heading6
	Paragraph
	Blockquote
	List
	ListItem
	CodeBlock
	MathBlock
	Text
	Emphasis
	Strong
	InlineCode
	MathInline
	Link
	Image
	Extension
)

var tagNames = [...]string{
	Document:   "document",
	Heading1:   "heading1",
	Heading2:   "heading2",
	Heading3:   "heading3",
	Heading4:   "heading4",
	Heading5:   "heading5",
	Heading6:   "heading6",
	Paragraph:  "paragraph",
	Blockquote: "blockquote",
	List:       "list",
	ListItem:   "listitem",
	CodeBlock:  "codeblock",
	MathBlock:  "mathblock",
	Text:       "text",
	Emphasis:   "emphasis",
	Strong:     "strong",
	InlineCode: "inlinecode",
	MathInline: "mathinline",
	Link:       "link",
	Image:      "image",
	Extension:  "extension",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", int(t))
}

// Heading returns the heading tag for a level, clamped to 1 through 6.
func Heading(level int) Tag {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Heading1 + Tag(level-1)
}

// HeadingLevel returns n for a HeadingN tag and 0 for every other tag.
func (t Tag) HeadingLevel() int {
	if t >= Heading1 && t <= Heading6 {
		return int(t-Heading1) + 1
	}
	return 0
}

// Range is a half-open byte interval [Start, End) into a page's source.
type Range struct {
	Start int
	End   int
}

// Node is one element of a page's arena. Only the fields relevant to its
// tag are set: Dest for links and images, Alt for images, Key for
// extensions, and Value for an extension's argument or a math block's
// content.
type Node struct {
	Tag      Tag
	Range    Range
	Parent   NodeID
	Children []NodeID

	Dest  string
	Alt   string
	Key   string
	Value string
}

// Warning records a recoverable defect in the source, such as a list item
// whose indentation does not line up.
type Warning struct {
	Range Range
	Msg   string
}

// Page is the parsed form of one document. Nodes[0] is the document root
// and Source is the text all node ranges index into. A Page is built once
// and read-only afterwards, so any number of renderers may share it.
type Page struct {
	Meta     *meta.Meta
	Source   string
	Nodes    []Node
	Warnings []Warning
}

// NewPage returns a page holding only a document root spanning source.
func NewPage(source string) *Page {
	return &Page{
		Source: source,
		Nodes:  []Node{{Tag: Document, Parent: None, Range: Range{0, len(source)}}},
	}
}

// Append adds n to the arena as the last child of parent and returns its id.
func (p *Page) Append(parent NodeID, n Node) NodeID {
	id := NodeID(len(p.Nodes))
	n.Parent = parent
	p.Nodes = append(p.Nodes, n)
	if parent != None {
		p.Nodes[parent].Children = append(p.Nodes[parent].Children, id)
	}
	return id
}

// Node returns the node for id. The pointer stays valid only until the
// next Append.
func (p *Page) Node(id NodeID) *Node { return &p.Nodes[id] }

// Slice returns the source text covered by the node's range.
func (p *Page) Slice(id NodeID) string {
	r := p.Nodes[id].Range
	return p.Source[r.Start:r.End]
}

// Walk visits id and its descendants in source order. It descends into a
// node's children only when f returns true.
func (p *Page) Walk(id NodeID, f func(NodeID) bool) {
	if !f(id) {
		return
	}
	for _, c := range p.Nodes[id].Children {
		p.Walk(c, f)
	}
}

// InvariantError reports a malformed arena. It signals a bug in the
// builder, not a defect in the source document.
type InvariantError struct {
	ID  NodeID
	Msg string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated at node %d: %s", e.ID, e.Msg)
}

func leaf(t Tag) bool {
	switch t {
	case Text, CodeBlock, InlineCode, MathBlock, MathInline, Image, Extension:
		return true
	}
	return false
}

// Check verifies the structural invariants of the arena: a single document
// root, every other node owned by exactly one parent, parent links
// matching child lists, child ranges contained in their parent's range,
// sibling ranges ordered and disjoint, and no children under leaf tags.
// It returns an *InvariantError describing the first violation found.
func (p *Page) Check() error {
	if len(p.Nodes) == 0 || p.Nodes[0].Tag != Document {
		return &InvariantError{ID: 0, Msg: "missing document root"}
	}
	if p.Nodes[0].Parent != None {
		return &InvariantError{ID: 0, Msg: "root has a parent"}
	}
	owned := make([]bool, len(p.Nodes))
	for id := range p.Nodes {
		n := &p.Nodes[id]
		if n.Range.Start < 0 || n.Range.Start > n.Range.End || n.Range.End > len(p.Source) {
			return &InvariantError{ID: NodeID(id), Msg: "range out of bounds"}
		}
		if leaf(n.Tag) && len(n.Children) > 0 {
			return &InvariantError{ID: NodeID(id), Msg: n.Tag.String() + " owns children"}
		}
		prev := -1
		for _, c := range n.Children {
			if c <= 0 || int(c) >= len(p.Nodes) {
				return &InvariantError{ID: NodeID(id), Msg: "child id out of bounds"}
			}
			if owned[c] {
				return &InvariantError{ID: c, Msg: "owned by two parents"}
			}
			owned[c] = true
			cn := &p.Nodes[c]
			if cn.Parent != NodeID(id) {
				return &InvariantError{ID: c, Msg: "parent link does not match owner"}
			}
			if cn.Range.Start < n.Range.Start || cn.Range.End > n.Range.End {
				return &InvariantError{ID: c, Msg: "range escapes parent"}
			}
			if cn.Range.Start < prev {
				return &InvariantError{ID: c, Msg: "overlaps preceding sibling"}
			}
			prev = cn.Range.End
		}
	}
	for id := 1; id < len(p.Nodes); id++ {
		if !owned[id] {
			return &InvariantError{ID: NodeID(id), Msg: "unreachable from root"}
		}
	}
	return nil
}

type jsonRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonNode struct {
	Tag      string     `json:"tag"`
	Range    jsonRange  `json:"range"`
	Children []jsonNode `json:"children"`
}

// MarshalJSON encodes the tree rooted at Nodes[0] in the interchange form:
// each node is an object with tag, range, and children. Parent ids and
// per-tag payloads are omitted. The encoding is for inspection, not for
// reconstructing a Page.
func (p *Page) MarshalJSON() ([]byte, error) {
	if len(p.Nodes) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(p.jsonTree(0))
}

func (p *Page) jsonTree(id NodeID) jsonNode {
	n := &p.Nodes[id]
	jn := jsonNode{
		Tag:      n.Tag.String(),
		Range:    jsonRange{n.Range.Start, n.Range.End},
		Children: []jsonNode{},
	}
	for _, c := range n.Children {
		jn.Children = append(jn.Children, p.jsonTree(c))
	}
	return jn
}
