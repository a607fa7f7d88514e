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

// Tests for gen.go
package gen

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

type smallcase struct {
	in   string
	want string
}

var dedentSmall = []smallcase{
	{"    a\n    b", "a\nb"},
	{"    a\n      b", "a\n  b"},
	{"  a\n    b\n  c", "a\n  b\nc"},
	{"a\n  b", "a\n  b"},
	{"    a\n\n    b", "a\n\nb"},
	// a whitespace-only line neither sets the margin nor keeps it
	{"    a\n   \n    b", "a\n\nb"},
	{"", ""},
	{"   ", "   "},
}

func TestDedent(t *testing.T) {
	for i, test := range dedentSmall {
		if got := Dedent(test.in); got != test.want {
			t.Errorf("case %d, in %q, want %q, got %q", i, test.in, test.want, got)
		}
	}
}

var escapeHTMLSmall = []smallcase{
	{`a < b & c > d "e"`, "a &lt; b &amp; c &gt; d &quot;e&quot;"},
	{"plain", "plain"},
	{"&amp;", "&amp;amp;"},
}

func TestEscapeHTML(t *testing.T) {
	for i, test := range escapeHTMLSmall {
		if got := EscapeHTML(test.in); got != test.want {
			t.Errorf("case %d, in %q, want %q, got %q", i, test.in, test.want, got)
		}
	}
}

var escapeLatexSmall = []smallcase{
	{"a & b", `a \& b`},
	{"50% #1 $2", `50\% \#1 \$2`},
	{"_x_", `\_x\_`},
	{"{}", `\{\}`},
	{`\cmd`, `\textbackslash{}cmd`},
	{"~ and ^", `\textasciitilde{} and \textasciicircum{}`},
}

func TestEscapeLatex(t *testing.T) {
	for i, test := range escapeLatexSmall {
		if got := EscapeLatex(test.in); got != test.want {
			t.Errorf("case %d, in %q, want %q, got %q", i, test.in, test.want, got)
		}
	}
}

func TestTypeset(t *testing.T) {
	tex := filepath.Join(t.TempDir(), "doc.tex")
	if err := (&Command{}).Typeset("true", tex); err != nil {
		t.Fatal(err)
	}
	if err := (&Command{}).Typeset("false", tex); err == nil {
		t.Error("want exit error from failing engine, got nil")
	}
}

func TestTypesetSplitsEngine(t *testing.T) {
	var out bytes.Buffer
	c := &Command{Stderr: &out}
	tex := filepath.Join(t.TempDir(), "doc.tex")
	if err := c.Typeset("echo -n 'two words'", tex); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "two words doc.tex"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestTypesetBadEngine(t *testing.T) {
	err := (&Command{}).Typeset("", "doc.tex")
	if want := `no valid engine command: ""`; err == nil || err.Error() != want {
		t.Errorf("want error %q, got %v", want, err)
	}
	// unterminated quote fails word splitting
	if err := (&Command{}).Typeset("pdflatex 'oops", "doc.tex"); err == nil {
		t.Error("want split error, got nil")
	}
}

func TestTypesetContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := &Command{Ctx: ctx}
	tex := filepath.Join(t.TempDir(), "doc.tex")
	if err := c.Typeset("sleep 5", tex); err == nil {
		t.Error("want error from canceled context, got nil")
	}
}
