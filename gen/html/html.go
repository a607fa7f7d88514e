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

// Package html renders a page as an HTML fragment.
// Text, code, and attribute values are escaped automatically; math
// content and extension handler output pass through untouched.
//
// Nodes correspond to the following HTML:
//
//	Document       <div></div>
//	Heading1-6     <h1></h1> through <h6></h6>
//	Paragraph      <p></p>
//	Blockquote     <blockquote></blockquote>
//	List           <ul></ul>
//	ListItem       <li></li>
//	CodeBlock      <pre><code></code></pre>
//	InlineCode     <code></code>
//	MathBlock      <div class="math">\[ \]</div>
//	MathInline     <span class="math">\( \)</span>
//	Text           escaped source text
//	Emphasis       <em></em>
//	Strong         <strong></strong>
//	Link           <a href=""></a>
//	Image          <img src="" alt=""/>
//	Extension      the registered handler's output, or the escaped
//	               literal @KEY{VALUE} text when the key is unknown
package html // import "akhil.cc/concisemark/gen/html"

import (
	"io"
	"strconv"
	"strings"

	"akhil.cc/concisemark/ast"
	"akhil.cc/concisemark/extension"
	"akhil.cc/concisemark/gen"
	"akhil.cc/concisemark/logger"
)

// Hook overrides rendering for single nodes. It runs before the default
// rendering of each node; returning true replaces that node's entire
// output, children included, with the returned fragment.
type Hook func(p *ast.Page, id ast.NodeID) (string, bool)

// Generator converts a page into an HTML fragment. A nil Ext falls back
// to extension.Default. Generators never mutate the page, so any number
// of them may share one.
type Generator struct {
	Page *ast.Page
	Ext  *extension.Registry
	Hook Hook
}

// Render renders the page with the default extension registry.
func Render(p *ast.Page) string {
	return (&Generator{Page: p}).Render()
}

// Render returns the rendered fragment. The same page and registry
// always yield identical output.
func (g *Generator) Render() string {
	var b strings.Builder
	g.node(&b, 0)
	return b.String()
}

// WriteTo renders the page and writes the fragment to w.
func (g *Generator) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.Render())
	return int64(n), err
}

func (g *Generator) node(b *strings.Builder, id ast.NodeID) {
	if g.Hook != nil {
		if s, ok := g.Hook(g.Page, id); ok {
			b.WriteString(s)
			return
		}
	}
	n := g.Page.Node(id)
	switch n.Tag {
	case ast.Document:
		b.WriteString("<div>")
		g.children(b, id)
		b.WriteString("</div>")
	case ast.Heading1, ast.Heading2, ast.Heading3, ast.Heading4, ast.Heading5, ast.Heading6:
		tag := "h" + strconv.Itoa(n.Tag.HeadingLevel())
		b.WriteString("<" + tag + ">")
		g.children(b, id)
		b.WriteString("</" + tag + ">")
	case ast.Paragraph:
		b.WriteString("<p>")
		g.children(b, id)
		b.WriteString("</p>")
	case ast.Blockquote:
		b.WriteString("<blockquote>")
		g.children(b, id)
		b.WriteString("</blockquote>")
	case ast.List:
		b.WriteString("<ul>")
		g.children(b, id)
		b.WriteString("</ul>")
	case ast.ListItem:
		b.WriteString("<li>")
		g.children(b, id)
		b.WriteString("</li>")
	case ast.CodeBlock:
		b.WriteString("<pre><code>")
		b.WriteString(gen.EscapeHTML(gen.Dedent(g.Page.Slice(id))))
		b.WriteString("</code></pre>")
	case ast.InlineCode:
		b.WriteString("<code>")
		b.WriteString(gen.EscapeHTML(inner(g.Page, id)))
		b.WriteString("</code>")
	case ast.MathBlock:
		b.WriteString(`<div class="math">\[`)
		b.WriteString(gen.EscapeMath(n.Value))
		b.WriteString(`\]</div>`)
	case ast.MathInline:
		b.WriteString(`<span class="math">\(`)
		b.WriteString(gen.EscapeMath(inner(g.Page, id)))
		b.WriteString(`\)</span>`)
	case ast.Text:
		b.WriteString(gen.EscapeHTML(g.Page.Slice(id)))
	case ast.Emphasis:
		b.WriteString("<em>")
		g.children(b, id)
		b.WriteString("</em>")
	case ast.Strong:
		b.WriteString("<strong>")
		g.children(b, id)
		b.WriteString("</strong>")
	case ast.Link:
		b.WriteString(`<a href="` + gen.EscapeHTML(n.Dest) + `">`)
		if len(n.Children) == 0 {
			// no label; the destination stands in
			b.WriteString(gen.EscapeHTML(n.Dest))
		} else {
			g.children(b, id)
		}
		b.WriteString("</a>")
	case ast.Image:
		b.WriteString(`<img src="` + gen.EscapeHTML(n.Dest) + `" alt="` + gen.EscapeHTML(n.Alt) + `"/>`)
	case ast.Extension:
		g.extension(b, n)
	}
}

func (g *Generator) children(b *strings.Builder, id ast.NodeID) {
	for _, c := range g.Page.Node(id).Children {
		g.node(b, c)
	}
}

// inner returns the node's source text without its one-byte delimiters.
func inner(p *ast.Page, id ast.NodeID) string {
	s := p.Slice(id)
	return s[1 : len(s)-1]
}

func (g *Generator) extension(b *strings.Builder, n *ast.Node) {
	ext := g.Ext
	if ext == nil {
		ext = extension.Default
	}
	if h, ok := ext.Lookup(n.Key); ok {
		b.WriteString(h.HTML(n.Value))
		return
	}
	logger.Warn("unknown extension key", "key", n.Key)
	b.WriteString(gen.EscapeHTML("@" + n.Key + "{" + n.Value + "}"))
}
