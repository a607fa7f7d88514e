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

// Package latex renders a page as a LaTeX body fragment, suitable for
// inclusion between \begin{document} and \end{document}. Reserved
// characters in text are escaped; math content, verbatim code, and
// extension handler output pass through untouched. Top-level blocks are
// separated by blank lines.
//
// Nodes correspond to the following LaTeX:
//
//	Heading1       \section{}
//	Heading2       \subsection{}
//	Heading3-6     \subsubsection{}
//	Paragraph      plain text
//	Blockquote     quote environment
//	List           itemize environment
//	ListItem       \item
//	CodeBlock      verbatim environment
//	InlineCode     \verb
//	MathBlock      \[ \]
//	MathInline     $ $
//	Text           escaped source text
//	Emphasis       \textit{}
//	Strong         \textbf{}
//	Link           \href{}{}
//	Image          figure environment with \includegraphics
//	Extension      the registered handler's output, or the escaped
//	               literal @KEY{VALUE} text when the key is unknown
package latex // import "akhil.cc/concisemark/gen/latex"

import (
	"io"
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

// Generator converts a page into a LaTeX body fragment. A nil Ext falls
// back to extension.Default. Generators never mutate the page, so any
// number of them may share one.
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
		g.blocks(b, id)
	case ast.Heading1, ast.Heading2, ast.Heading3, ast.Heading4, ast.Heading5, ast.Heading6:
		sec := "subsubsection"
		switch n.Tag.HeadingLevel() {
		case 1:
			sec = "section"
		case 2:
			sec = "subsection"
		}
		b.WriteString("\\" + sec + "{")
		g.children(b, id)
		b.WriteString("}")
	case ast.Paragraph:
		g.children(b, id)
	case ast.Blockquote:
		var qb strings.Builder
		g.blocks(&qb, id)
		b.WriteString(NewEnv("quote").Line(qb.String()).String())
	case ast.List:
		env := NewEnv("itemize")
		for _, c := range g.Page.Node(id).Children {
			var ib strings.Builder
			g.node(&ib, c)
			env.Line(ib.String())
		}
		b.WriteString(env.String())
	case ast.ListItem:
		b.WriteString("\\item ")
		for _, c := range n.Children {
			if blockTag(g.Page.Node(c).Tag) {
				b.WriteString("\n")
			}
			g.node(b, c)
		}
	case ast.CodeBlock:
		b.WriteString(NewEnv("verbatim").Line(gen.Dedent(g.Page.Slice(id))).String())
	case ast.MathBlock:
		b.WriteString(`\[` + n.Value + `\]`)
	case ast.MathInline:
		b.WriteString("$" + inner(g.Page, id) + "$")
	case ast.InlineCode:
		b.WriteString(verb(inner(g.Page, id)))
	case ast.Text:
		b.WriteString(gen.EscapeLatex(g.Page.Slice(id)))
	case ast.Emphasis:
		b.WriteString("\\textit{")
		g.children(b, id)
		b.WriteString("}")
	case ast.Strong:
		b.WriteString("\\textbf{")
		g.children(b, id)
		b.WriteString("}")
	case ast.Link:
		var lb strings.Builder
		if len(n.Children) == 0 {
			// no label; the destination stands in
			lb.WriteString(gen.EscapeLatex(n.Dest))
		} else {
			g.children(&lb, id)
		}
		b.WriteString(NewCmd("href").Arg(gen.EscapeLatex(n.Dest)).Arg(lb.String()).String())
	case ast.Image:
		env := NewEnv("figure").Option("ht")
		env.Line(NewCmd("centering").String())
		env.Line(NewCmd("includegraphics").Option("width=\\textwidth").Arg(gen.EscapeLatex(n.Dest)).String())
		if n.Alt != "" {
			env.Line(NewCmd("caption").Arg(gen.EscapeLatex(n.Alt)).String())
		}
		b.WriteString(env.String())
	case ast.Extension:
		g.extension(b, n)
	}
}

// blocks renders the node's children separated by blank lines.
func (g *Generator) blocks(b *strings.Builder, id ast.NodeID) {
	for i, c := range g.Page.Node(id).Children {
		if i > 0 {
			b.WriteString("\n\n")
		}
		g.node(b, c)
	}
}

func (g *Generator) children(b *strings.Builder, id ast.NodeID) {
	for _, c := range g.Page.Node(id).Children {
		g.node(b, c)
	}
}

func blockTag(t ast.Tag) bool {
	switch t {
	case ast.Paragraph, ast.Blockquote, ast.List, ast.CodeBlock, ast.MathBlock:
		return true
	}
	return false
}

// inner returns the node's source text without its one-byte delimiters.
func inner(p *ast.Page, id ast.NodeID) string {
	s := p.Slice(id)
	return s[1 : len(s)-1]
}

// verb wraps s in \verb, picking a delimiter that does not occur in s.
func verb(s string) string {
	for _, d := range []string{"|", "!", "+", ";", "="} {
		if !strings.Contains(s, d) {
			return "\\verb" + d + s + d
		}
	}
	// every candidate delimiter occurs in the text
	return "\\texttt{" + gen.EscapeLatex(s) + "}"
}

func (g *Generator) extension(b *strings.Builder, n *ast.Node) {
	ext := g.Ext
	if ext == nil {
		ext = extension.Default
	}
	if h, ok := ext.Lookup(n.Key); ok {
		b.WriteString(h.Latex(n.Value))
		return
	}
	logger.Warn("unknown extension key", "key", n.Key)
	b.WriteString(gen.EscapeLatex("@" + n.Key + "{" + n.Value + "}"))
}
