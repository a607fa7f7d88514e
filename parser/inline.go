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

package parser

import "akhil.cc/concisemark/ast"

// inline = { text | code | math | link | image | extension | strong | emphasis } .
//
// inline scans the lines of one leaf region and appends the spans it
// finds to parent. The line breaks inside the region read as literal
// newlines, so adjacent text runs glue into a single node.
func (p *parser) inline(lines []span, parent ast.NodeID) {
	for i, ln := range lines {
		if i > 0 {
			p.flush(parent, lines[i-1].end, lines[i-1].end+1)
		}
		p.inlineLine(ln, parent)
	}
}

// inlineLine walks one line. A span must open and close within the line.
// When a delimiter finds no closer, or would enclose nothing, it stays
// literal text and the scan moves on by one character. At the same start
// position code wins over math, then link, image, extension, strong,
// emphasis.
func (p *parser) inlineLine(ln span, parent ast.NodeID) {
	run := ln.off
	i := ln.off
	for i < ln.end {
		switch p.src[i] {
		case '\\':
			// the next character reads literally; both bytes stay text
			i++
			if i < ln.end {
				i++
			}
			continue
		case '`':
			if j, ok := p.closer(ln, i+1, '`'); ok && j > i+1 {
				p.flush(parent, run, i)
				p.page.Append(parent, ast.Node{Tag: ast.InlineCode, Range: ast.Range{Start: i, End: j + 1}})
				i, run = j+1, j+1
				continue
			}
		case '$':
			if j, ok := p.closer(ln, i+1, '$'); ok && j > i+1 {
				p.flush(parent, run, i)
				p.page.Append(parent, ast.Node{Tag: ast.MathInline, Range: ast.Range{Start: i, End: j + 1}})
				i, run = j+1, j+1
				continue
			}
		case '[':
			if j, k, ok := p.bracketPair(ln, i); ok {
				p.flush(parent, run, i)
				id := p.page.Append(parent, ast.Node{
					Tag:   ast.Link,
					Range: ast.Range{Start: i, End: k + 1},
					Dest:  p.src[j+2 : k],
				})
				if j > i+1 {
					p.page.Append(id, ast.Node{Tag: ast.Text, Range: ast.Range{Start: i + 1, End: j}})
				}
				i, run = k+1, k+1
				continue
			}
		case '!':
			if i+1 < ln.end && p.src[i+1] == '[' {
				if j, k, ok := p.bracketPair(ln, i+1); ok {
					p.flush(parent, run, i)
					p.page.Append(parent, ast.Node{
						Tag:   ast.Image,
						Range: ast.Range{Start: i, End: k + 1},
						Alt:   p.src[i+2 : j],
						Dest:  p.src[j+2 : k],
					})
					i, run = k+1, k+1
					continue
				}
			}
		case '@':
			if lb, rb, ok := p.atBraces(ln, i); ok {
				p.flush(parent, run, i)
				p.page.Append(parent, ast.Node{
					Tag:   ast.Extension,
					Range: ast.Range{Start: i, End: rb + 1},
					Key:   p.src[i+1 : lb],
					Value: p.src[lb+1 : rb],
				})
				i, run = rb+1, rb+1
				continue
			}
		case '*':
			if i+1 < ln.end && p.src[i+1] == '*' {
				if j, ok := p.strongClose(ln, i+2); ok && j > i+2 {
					p.flush(parent, run, i)
					id := p.page.Append(parent, ast.Node{Tag: ast.Strong, Range: ast.Range{Start: i, End: j + 2}})
					p.page.Append(id, ast.Node{Tag: ast.Text, Range: ast.Range{Start: i + 2, End: j}})
					i, run = j+2, j+2
					continue
				}
			} else if j, ok := p.closer(ln, i+1, '*'); ok && j > i+1 {
				p.flush(parent, run, i)
				id := p.page.Append(parent, ast.Node{Tag: ast.Emphasis, Range: ast.Range{Start: i, End: j + 1}})
				p.page.Append(id, ast.Node{Tag: ast.Text, Range: ast.Range{Start: i + 1, End: j}})
				i, run = j+1, j+1
				continue
			}
		}
		i++
	}
	p.flush(parent, run, ln.end)
}

// closer returns the position of the next unescaped delim in the line.
func (p *parser) closer(ln span, from int, delim byte) (int, bool) {
	for j := from; j < ln.end; j++ {
		switch p.src[j] {
		case '\\':
			j++
		case delim:
			return j, true
		}
	}
	return 0, false
}

// strongClose returns the position of the next unescaped "**".
func (p *parser) strongClose(ln span, from int) (int, bool) {
	for j := from; j+1 < ln.end; j++ {
		switch p.src[j] {
		case '\\':
			j++
		case '*':
			if p.src[j+1] == '*' {
				return j, true
			}
		}
	}
	return 0, false
}

// bracketPair matches "[...](...)" from the opening bracket at i,
// returning the positions of "]" and ")". The destination may not be
// empty; the label may.
func (p *parser) bracketPair(ln span, i int) (j, k int, ok bool) {
	j, ok = p.closer(ln, i+1, ']')
	if !ok || j+1 >= ln.end || p.src[j+1] != '(' {
		return 0, 0, false
	}
	k, ok = p.closer(ln, j+2, ')')
	if !ok || k == j+2 {
		return 0, 0, false
	}
	return j, k, true
}

// atBraces matches "@key{value}" from the at sign at i, returning the
// positions of the braces. The key is one or more ASCII letters, digits,
// or underscores; the value runs to the first unescaped closing brace
// and may be empty.
func (p *parser) atBraces(ln span, i int) (lb, rb int, ok bool) {
	j := i + 1
	for j < ln.end && ident(p.src[j]) {
		j++
	}
	if j == i+1 || j >= ln.end || p.src[j] != '{' {
		return 0, 0, false
	}
	c, ok := p.closer(ln, j+1, '}')
	if !ok {
		return 0, 0, false
	}
	return j, c, true
}

func ident(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_'
}

// flush emits [run, end) as a text node, merging with a preceding text
// node when the two touch.
func (p *parser) flush(parent ast.NodeID, run, end int) {
	if run >= end {
		return
	}
	if ch := p.page.Node(parent).Children; len(ch) > 0 {
		last := p.page.Node(ch[len(ch)-1])
		if last.Tag == ast.Text && last.Range.End == run {
			last.Range.End = end
			return
		}
	}
	p.page.Append(parent, ast.Node{Tag: ast.Text, Range: ast.Range{Start: run, End: end}})
}
