// MIT License

// Copyright (c) 2018 Akhil Indurti

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package parser turns source text into an *ast.Page. It takes in an
// io.Reader as input and never fails on the document body: malformed
// constructs degrade to plain text or collect warnings on the page, so
// the only parse errors are unusable front matter and a failed
// post-build invariant check.
//
// The parser adheres to the following grammar for source files, applied
// line by line after CRLF line endings are normalized to newlines:
//
//	unicode_char = /* an arbitrary Unicode code point except newline */ .
//	newline      = /* the Unicode code point U+000A */ .
//	space        = /* the Unicode code point U+0020 */ .
//	octothorpe   = /* the Unicode code point U+0023 */ .
//
//	document   = [ front_matter ] { block } .
//	block      = blank | heading | blockquote | list | code_block | paragraph .
//	blank      = { space } newline .
//	heading    = octothorpe { octothorpe } [ space ] inline newline .
//	blockquote = quote_line { quote_line } .
//	quote_line = { space } ">" [ space ] { unicode_char } newline .
//	list       = item { item | body_line | blank } .
//	item       = { space } "- " inline { continuation } .
//	code_block = deep_line { deep_line } .
//	paragraph  = inline { newline inline } .
//	inline     = { text | code | math | link | image | extension |
//	               strong | emphasis } .
//	code       = "`" text "`" .
//	math       = "$" text "$" .
//	link       = "[" [ text ] "](" text ")" .
//	image      = "![" [ text ] "](" text ")" .
//	extension  = "@" key "{" { unicode_char } "}" .
//	key        = /* ASCII letters, digits, and underscore */ .
//	strong     = "**" text "**" .
//	emphasis   = "*" text "*" .
//	text       = unicode_char { unicode_char } .
//
// A continuation is a line indented exactly two columns past its item's
// marker, and a body_line is one indented at least four columns past it.
// A deep_line is indented at least four columns past the nearest
// preceding non-blank line. A heading of more than six octothorpes reads
// as a paragraph. A backslash makes the following character literal for
// delimiter recognition; the backslash itself stays part of the text.
// Inline delimiters match within a single line, pair boundaries never
// enclose empty content, and an unmatched or empty pair reads as plain
// text. A paragraph whose whole trimmed content is a single math span is
// a display math block.
package parser // import "akhil.cc/concisemark/parser"

import (
	"fmt"
	"io"
	"strings"

	"akhil.cc/concisemark/ast"
	"akhil.cc/concisemark/logger"
	"akhil.cc/concisemark/meta"
)

// MustParse is like Parse but panics if the source cannot be parsed.
func MustParse(src io.Reader) *ast.Page {
	p, err := Parse(src)
	if err != nil {
		panic("Parse error: " + err.Error())
	}
	return p
}

// Parse parses the source and, if successful, returns its corresponding
// page. A generator can be used to transform the returned page into
// another format. The error is a *meta.ParseError when front matter is
// present but unusable, and an *ast.InvariantError when the built tree
// fails its structural check.
func Parse(src io.Reader) (*ast.Page, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(b), "\r\n", "\n")
	m, body, err := meta.Extract(text)
	if err != nil {
		return nil, err
	}
	p := &parser{src: text, page: ast.NewPage(text)}
	p.page.Meta = m
	p.page.Node(0).Range = ast.Range{Start: body, End: len(text)}
	p.segment(p.scan(body, len(text)), 0)
	if err := p.page.Check(); err != nil {
		return nil, err
	}
	for _, w := range p.page.Warnings {
		logger.Warn(w.Msg, "start", w.Range.Start, "end", w.Range.End)
	}
	return p.page, nil
}

type parser struct {
	src  string
	page *ast.Page
}

// span is one line of a window: the half-open interval [off, end) into
// p.src, without the newline that ended it. Windows carved out of a
// container block keep the original offsets and only advance off past
// the stripped markers, so every range still indexes the page source.
type span struct {
	off int
	end int
}

// scan splits [lo, hi) into lines.
func (p *parser) scan(lo, hi int) []span {
	var win []span
	off := lo
	for i := lo; i < hi; i++ {
		if p.src[i] == '\n' {
			win = append(win, span{off, i})
			off = i + 1
		}
	}
	if off < hi {
		win = append(win, span{off, hi})
	}
	return win
}

func (p *parser) blank(ln span) bool {
	return strings.TrimSpace(p.src[ln.off:ln.end]) == ""
}

// indent counts the leading spaces of a line.
func (p *parser) indent(ln span) int {
	n := 0
	for i := ln.off; i < ln.end && p.src[i] == ' '; i++ {
		n++
	}
	return n
}

// quoteLine reports whether the first non-space character is ">".
func (p *parser) quoteLine(ln span) bool {
	i := ln.off + p.indent(ln)
	return i < ln.end && p.src[i] == '>'
}

// listLine reports whether the line opens a list item, "- " after any
// indentation.
func (p *parser) listLine(ln span) bool {
	i := ln.off + p.indent(ln)
	return i+1 < ln.end && p.src[i] == '-' && p.src[i+1] == ' '
}

// base returns the indent of the nearest non-blank line before win[t].
func (p *parser) base(win []span, t int) int {
	for j := t - 1; j >= 0; j-- {
		if !p.blank(win[j]) {
			return p.indent(win[j])
		}
	}
	return 0
}

// block = blank | heading | blockquote | list | code_block | paragraph .
//
// segment classifies the lines of one window and appends the blocks it
// finds to parent. The indent test for verbatim code comes first: a
// sufficiently indented line is taken literally no matter what it
// contains.
func (p *parser) segment(win []span, parent ast.NodeID) {
	t := 0
	for t < len(win) {
		ln := win[t]
		switch {
		case p.blank(ln):
			t++
		case p.indent(ln) >= p.base(win, t)+4:
			t = p.codeBlock(win, t, parent)
		case p.indent(ln) == 0 && p.src[ln.off] == '#':
			t = p.heading(win, t, parent)
		case p.quoteLine(ln):
			t = p.blockquote(win, t, parent)
		case p.listLine(ln):
			t = p.list(win, t, parent)
		default:
			t = p.paragraph(win, t, parent)
		}
	}
}

// heading = octothorpe { octothorpe } [ space ] inline newline .
func (p *parser) heading(win []span, t int, parent ast.NodeID) int {
	ln := win[t]
	n := 0
	i := ln.off
	for i < ln.end && p.src[i] == '#' {
		n++
		i++
	}
	if n > 6 {
		// too deep to be a heading; the line reads as paragraph text
		return p.paragraph(win, t, parent)
	}
	if i < ln.end && p.src[i] == ' ' {
		i++
	}
	h := p.page.Append(parent, ast.Node{Tag: ast.Heading(n), Range: ast.Range{Start: i, End: ln.end}})
	p.inline([]span{{i, ln.end}}, h)
	return t + 1
}

// code_block = deep_line { deep_line } .
func (p *parser) codeBlock(win []span, t int, parent ast.NodeID) int {
	req := p.base(win, t) + 4
	start := win[t]
	last := win[t]
	for t < len(win) && !p.blank(win[t]) && p.indent(win[t]) >= req {
		last = win[t]
		t++
	}
	p.page.Append(parent, ast.Node{Tag: ast.CodeBlock, Range: ast.Range{Start: start.off, End: last.end}})
	return t
}

// blockquote = quote_line { quote_line } .
//
// The marker and one following space are stripped from each line; the
// remainder is segmented again, so a quote holds any block structure. A
// line of just ">" reads as a blank line inside the quote.
func (p *parser) blockquote(win []span, t int, parent ast.NodeID) int {
	start := win[t]
	last := win[t]
	var inner []span
	for t < len(win) && p.quoteLine(win[t]) {
		ln := win[t]
		i := ln.off + p.indent(ln) + 1
		if i < ln.end && p.src[i] == ' ' {
			i++
		}
		inner = append(inner, span{i, ln.end})
		last = ln
		t++
	}
	q := p.page.Append(parent, ast.Node{Tag: ast.Blockquote, Range: ast.Range{Start: start.off, End: last.end}})
	p.segment(inner, q)
	return t
}

// paragraph = inline { newline inline } .
//
// Accumulation stops at a blank line and at any line that opens a
// higher-priority block.
func (p *parser) paragraph(win []span, t int, parent ast.NodeID) int {
	start := t
	for t < len(win) {
		ln := win[t]
		if p.blank(ln) {
			break
		}
		if t > start {
			if p.indent(ln) == 0 && p.src[ln.off] == '#' {
				break
			}
			if p.quoteLine(ln) || p.listLine(ln) {
				break
			}
			if p.indent(ln) >= p.indent(win[t-1])+4 {
				break
			}
		}
		t++
	}
	lines := win[start:t]
	if mb, ok := p.mathBlock(lines); ok {
		p.page.Append(parent, mb)
		return t
	}
	par := p.page.Append(parent, ast.Node{
		Tag:   ast.Paragraph,
		Range: ast.Range{Start: lines[0].off, End: lines[len(lines)-1].end},
	})
	p.inline(lines, par)
	return t
}

// mathBlock reports whether the paragraph lines form exactly one math
// span and nothing else. The node keeps the delimited content in Value,
// since the lines may have been carved out of a container block.
func (p *parser) mathBlock(lines []span) (ast.Node, bool) {
	var b strings.Builder
	for i, ln := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(p.src[ln.off:ln.end])
	}
	text := strings.TrimSpace(b.String())
	if len(text) < 3 || text[0] != '$' || text[len(text)-1] != '$' {
		return ast.Node{}, false
	}
	inner := text[1 : len(text)-1]
	if strings.ContainsRune(inner, '$') || strings.TrimSpace(inner) == "" {
		return ast.Node{}, false
	}
	return ast.Node{
		Tag:   ast.MathBlock,
		Range: ast.Range{Start: lines[0].off, End: lines[len(lines)-1].end},
		Value: inner,
	}, true
}

// flatItem is one collected list item before the nesting structure is
// assembled from the marker indents.
type flatItem struct {
	level int
	ind   int
	mark  int // offset of the "-" marker
	end   int // end of the last line of the item's own head and body
	head  []span
	body  []span
}

// list = item { item | body_line | blank } .
//
// Items are collected flat with level = indent/4 and the tree is rebuilt
// afterwards. An indent that is not a multiple of four, or that skips a
// nesting level, degrades to the nearest valid level and records a
// warning on the page. Blank lines end the list unless the next line
// still belongs to it.
func (p *parser) list(win []span, t int, parent ast.NodeID) int {
	var items []flatItem
	level := 0
collect:
	for t < len(win) {
		ln := win[t]
		if p.blank(ln) {
			j := t + 1
			for j < len(win) && p.blank(win[j]) {
				j++
			}
			if j >= len(win) || len(items) == 0 {
				break
			}
			cur := &items[len(items)-1]
			switch {
			case p.listLine(win[j]):
				t = j
			case p.indent(win[j]) >= cur.ind+4:
				// keep the separators so the body segments on its own
				for ; t < j; t++ {
					cur.body = append(cur.body, span{win[t].off, win[t].off})
				}
			default:
				break collect
			}
			continue
		}
		ind := p.indent(ln)
		switch {
		case p.listLine(ln):
			raw := ind / 4
			lv := raw
			if len(items) == 0 {
				lv = 0
			} else if lv > level+1 {
				lv = level + 1
			}
			if lv != raw {
				p.warnf(ln, "list item skips nesting levels")
			}
			if ind%4 != 0 {
				p.warnf(ln, "list item indent %d is not a multiple of 4", ind)
			}
			mark := ln.off + ind
			it := flatItem{level: lv, ind: ind, mark: mark, end: ln.end}
			it.head = append(it.head, span{mark + 2, ln.end})
			t++
			// continuation lines sit exactly two columns past the marker
			for t < len(win) && !p.blank(win[t]) && !p.listLine(win[t]) && p.indent(win[t]) == ind+2 {
				it.head = append(it.head, span{win[t].off + ind + 2, win[t].end})
				it.end = win[t].end
				t++
			}
			items = append(items, it)
			level = lv
		case len(items) > 0 && ind >= items[len(items)-1].ind+4:
			cur := &items[len(items)-1]
			cur.body = append(cur.body, span{ln.off + cur.ind + 4, ln.end})
			cur.end = ln.end
			t++
		default:
			break collect
		}
	}
	p.buildList(items, parent)
	return t
}

type listFrame struct {
	list  ast.NodeID
	item  ast.NodeID
	level int
}

// buildList assembles the nested structure from the flat items. Ancestor
// ranges grow as deeper items land inside them.
func (p *parser) buildList(items []flatItem, parent ast.NodeID) {
	first := items[0]
	root := p.page.Append(parent, ast.Node{
		Tag:   ast.List,
		Range: ast.Range{Start: first.mark - first.ind, End: first.end},
	})
	stack := []listFrame{{list: root, item: ast.None}}
	for _, it := range items {
		for it.level < stack[len(stack)-1].level {
			stack = stack[:len(stack)-1]
		}
		top := &stack[len(stack)-1]
		if it.level > top.level {
			nested := p.page.Append(top.item, ast.Node{
				Tag:   ast.List,
				Range: ast.Range{Start: it.mark - it.ind, End: it.end},
			})
			stack = append(stack, listFrame{list: nested, item: ast.None, level: it.level})
			top = &stack[len(stack)-1]
		}
		id := p.page.Append(top.list, ast.Node{
			Tag:   ast.ListItem,
			Range: ast.Range{Start: it.mark + 2, End: it.end},
		})
		top.item = id
		for i := range stack {
			if n := p.page.Node(stack[i].list); n.Range.End < it.end {
				n.Range.End = it.end
			}
			if stack[i].item != ast.None {
				if n := p.page.Node(stack[i].item); n.Range.End < it.end {
					n.Range.End = it.end
				}
			}
		}
		p.inline(it.head, id)
		p.segment(it.body, id)
	}
}

func (p *parser) warnf(ln span, format string, args ...interface{}) {
	p.page.Warnings = append(p.page.Warnings, ast.Warning{
		Range: ast.Range{Start: ln.off, End: ln.end},
		Msg:   fmt.Sprintf(format, args...),
	})
}
