package html

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"akhil.cc/concisemark/ast"
	"akhil.cc/concisemark/extension"
	"akhil.cc/concisemark/logger"
	"akhil.cc/concisemark/parser"
)

func TestMain(m *testing.M) {
	// unknown extension keys log a warning; keep it out of test output
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type smallcase struct {
	in   string
	want string
}

var escapeSmall = []smallcase{
	{"`n >= 3`", "<div><p><code>n &gt;= 3</code></p></div>"},
	{"a < b & c", "<div><p>a &lt; b &amp; c</p></div>"},
	{`"quoted"`, "<div><p>&quot;quoted&quot;</p></div>"},
	// spans do not nest, so the backticks are literal label text
	{"**`n`**", "<div><p><strong>`n`</strong></p></div>"},
	{"[a](u?x=1&y=2)", `<div><p><a href="u?x=1&amp;y=2">a</a></p></div>`},
	{"![a<b](p)", `<div><p><img src="p" alt="a&lt;b"/></p></div>`},
	{"    x < y", "<div><pre><code>x &lt; y</code></pre></div>"},
	// math text is entity-escaped but otherwise left alone
	{"$a<b$", `<div><div class="math">\[a&lt;b\]</div></div>`},
	{"sum $i&j$ done", `<div><p>sum <span class="math">\(i&amp;j\)</span> done</p></div>`},
}

func TestEscape(t *testing.T) {
	for i, test := range escapeSmall {
		p := parser.MustParse(strings.NewReader(test.in))
		got := Render(p)
		if test.want != got {
			t.Errorf("case %d, in %q,\nwant %s, \ngot %s", i, test.in, test.want, got)
		}
	}
}

var tagSmall = []smallcase{
	{"# T", "<div><h1>T</h1></div>"},
	{"###### six", "<div><h6>six</h6></div>"},
	{"> q", "<div><blockquote><p>q</p></blockquote></div>"},
	{"- a\n- b", "<div><ul><li>a</li><li>b</li></ul></div>"},
	{"- a\n    - b", "<div><ul><li>a<ul><li>b</li></ul></li></ul></div>"},
	{"$x^2$", `<div><div class="math">\[x^2\]</div></div>`},
	{"a $x$ b", `<div><p>a <span class="math">\(x\)</span> b</p></div>`},
	{"*e* and **s**", "<div><p><em>e</em> and <strong>s</strong></p></div>"},
	{"[](u)", `<div><p><a href="u">u</a></p></div>`},
	{"a\nb", "<div><p>a\nb</p></div>"},
	{"x\n\ny", "<div><p>x</p><p>y</p></div>"},
}

func TestTags(t *testing.T) {
	for i, test := range tagSmall {
		p := parser.MustParse(strings.NewReader(test.in))
		got := Render(p)
		if test.want != got {
			t.Errorf("case %d, in %q,\nwant %s, \ngot %s", i, test.in, test.want, got)
		}
	}
}

var extensionSmall = []smallcase{
	{"@emoji{smile}", "<div><p>😄</p></div>"},
	{"@emoji{smile;+1}", "<div><p>😄👍</p></div>"},
	{"@emoji{smile; +1}", "<div><p>😄👍</p></div>"},
	{"@emoji{notexist}", "<div><p> notexist </p></div>"},
	{"@kbd{Ctrl+C}", "<div><p><kbd>Ctrl</kbd>+<kbd>C</kbd></p></div>"},
	{"@kbd{cmd+S}", "<div><p><kbd>⌘</kbd>+<kbd>S</kbd></p></div>"},
	{"@kbd{cmd + S}", "<div><p><kbd>⌘</kbd>+<kbd>S</kbd></p></div>"},
	{"@math{E=mc^2}", `<div><p><span class="math">\(E=mc^2\)</span></p></div>`},
	// char gives a line a literal leading marker
	{"@char{#} one", "<div><p># one</p></div>"},
	// an unregistered key degrades to the literal text
	{"@nope{v}", "<div><p>@nope{v}</p></div>"},
}

func TestExtensions(t *testing.T) {
	for i, test := range extensionSmall {
		p := parser.MustParse(strings.NewReader(test.in))
		got := Render(p)
		if test.want != got {
			t.Errorf("case %d, in %q,\nwant %s, \ngot %s", i, test.in, test.want, got)
		}
	}
}

func TestCustomRegistry(t *testing.T) {
	reg := extension.NewRegistry()
	reg.Register("upper", extension.Funcs{HTMLFunc: strings.ToUpper})
	p := parser.MustParse(strings.NewReader("@upper{shout}"))
	g := Generator{Page: p, Ext: reg}
	want := "<div><p>SHOUT</p></div>"
	if got := g.Render(); got != want {
		t.Errorf("want %s, \ngot %s", want, got)
	}
}

func TestHook(t *testing.T) {
	p := parser.MustParse(strings.NewReader("# T\n\nbody"))
	g := Generator{
		Page: p,
		Hook: func(pg *ast.Page, id ast.NodeID) (string, bool) {
			if pg.Node(id).Tag == ast.Paragraph {
				return "<section>replaced</section>", true
			}
			return "", false
		},
	}
	want := "<div><h1>T</h1><section>replaced</section></div>"
	if got := g.Render(); got != want {
		t.Errorf("want %s, \ngot %s", want, got)
	}
}

func TestWriteTo(t *testing.T) {
	p := parser.MustParse(strings.NewReader("hi"))
	var buf bytes.Buffer
	n, err := (&Generator{Page: p}).WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := "<div><p>hi</p></div>"
	if buf.String() != want || n != int64(len(want)) {
		t.Errorf("want %q (%d bytes), got %q (%d bytes)", want, len(want), buf.String(), n)
	}
}
