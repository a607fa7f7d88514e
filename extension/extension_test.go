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

// Tests for extension.go
package extension_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"akhil.cc/concisemark/extension"
)

func TestEmoji(t *testing.T) {
	h, ok := extension.Default.Lookup("emoji")
	require.True(t, ok)
	require.Equal(t, "😄", h.HTML("smile"))
	require.Equal(t, "😄👍", h.HTML("smile;+1"))
	// space around a name is not part of it
	require.Equal(t, "😄👍", h.HTML("smile; +1"))
	require.Equal(t, "😄", h.HTML(" smile "))
	// unresolved names keep their spelling, set off by spaces
	require.Equal(t, " notexist ", h.HTML("notexist"))
	require.Equal(t, "😄", h.Latex("smile"))
	require.Equal(t, "😄👍", h.Latex("smile; +1"))
}

func TestKbd(t *testing.T) {
	h, ok := extension.Default.Lookup("kbd")
	require.True(t, ok)
	require.Equal(t, "<kbd>Ctrl</kbd>+<kbd>C</kbd>", h.HTML("Ctrl+C"))
	require.Equal(t, "<kbd>⌘</kbd>+<kbd>S</kbd>", h.HTML("cmd+S"))
	// space around a key is not part of it
	require.Equal(t, "<kbd>⌘</kbd>+<kbd>S</kbd>", h.HTML("cmd + S"))
	require.Equal(t, "<kbd>&lt;</kbd>", h.HTML("<"))
	require.Equal(t, "Ctrl+C", h.Latex("Ctrl+C"))
	require.Equal(t, "⌘+S", h.Latex("cmd+S"))
	require.Equal(t, "Ctrl+Alt+Del", h.Latex("Ctrl + Alt + Del"))
	require.Equal(t, `\#`, h.Latex("#"))
}

func TestMath(t *testing.T) {
	h, ok := extension.Default.Lookup("math")
	require.True(t, ok)
	require.Equal(t, `<span class="math">\(E=mc^2\)</span>`, h.HTML("E=mc^2"))
	require.Equal(t, `<span class="math">\(a&lt;b\)</span>`, h.HTML("a<b"))
	require.Equal(t, "$E=mc^2$", h.Latex("E=mc^2"))
}

func TestChar(t *testing.T) {
	h, ok := extension.Default.Lookup("char")
	require.True(t, ok)
	require.Equal(t, "&lt;", h.HTML("<"))
	// only the first character survives
	require.Equal(t, "a", h.HTML("abc"))
	require.Equal(t, "", h.HTML(""))
	require.Equal(t, `\#`, h.Latex("#"))
	require.Equal(t, `\textbackslash{}`, h.Latex(`\`))
}

func TestFuncs(t *testing.T) {
	// nil functions pass the value through
	var f extension.Funcs
	require.Equal(t, "v", f.HTML("v"))
	require.Equal(t, "v", f.Latex("v"))

	f = extension.Funcs{HTMLFunc: strings.ToUpper}
	require.Equal(t, "V", f.HTML("v"))
	require.Equal(t, "v", f.Latex("v"))
}

func TestRegistry(t *testing.T) {
	r := extension.NewRegistry()
	_, ok := r.Lookup("missing")
	require.False(t, ok)

	r.Register("k", extension.Funcs{HTMLFunc: strings.ToUpper})
	r.Register("k", extension.Funcs{HTMLFunc: strings.ToLower})
	h, ok := r.Lookup("k")
	require.True(t, ok)
	require.Equal(t, "abc", h.HTML("ABC"))

	r.Register("zeta", extension.Funcs{})
	r.Register("alpha", extension.Funcs{})
	require.Equal(t, []string{"alpha", "k", "zeta"}, r.Keys())
}

func TestClone(t *testing.T) {
	r := extension.NewRegistry()
	r.Register("k", extension.Funcs{})
	c := r.Clone()
	c.Register("extra", extension.Funcs{})

	_, ok := r.Lookup("extra")
	require.False(t, ok)
	_, ok = c.Lookup("k")
	require.True(t, ok)
}

func TestDefault(t *testing.T) {
	require.Equal(t, []string{"char", "emoji", "kbd", "math"}, extension.Default.Keys())
}
