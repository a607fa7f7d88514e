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

// Package extension dispatches the @KEY{VALUE} syntax to handlers.
//
// The parser recognizes the syntax for any key; handlers come into play
// only when a renderer resolves the node. Keys missing from the registry
// degrade at that point to the literal @KEY{VALUE} text.
package extension // import "akhil.cc/concisemark/extension"

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark-emoji/definition"

	"akhil.cc/concisemark/gen"
)

// Handler renders one extension's value for each output format. A handler
// returns the final fragment, escaped however the format requires.
type Handler interface {
	HTML(value string) string
	Latex(value string) string
}

// Funcs adapts a pair of rendering functions to a Handler. A nil function
// passes the value through unchanged.
type Funcs struct {
	HTMLFunc  func(value string) string
	LatexFunc func(value string) string
}

func (f Funcs) HTML(value string) string {
	if f.HTMLFunc == nil {
		return value
	}
	return f.HTMLFunc(value)
}

func (f Funcs) Latex(value string) string {
	if f.LatexFunc == nil {
		return value
	}
	return f.LatexFunc(value)
}

// Registry maps extension keys to their handlers. Mutating a registry is
// not safe while renderers consult it; populate one at program start, or
// give each worker its own Clone.
type Registry struct {
	m map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[string]Handler)}
}

// Register binds key to h, replacing any previous handler for key.
func (r *Registry) Register(key string, h Handler) {
	r.m[key] = h
}

// Lookup returns the handler bound to key.
func (r *Registry) Lookup(key string) (Handler, bool) {
	h, ok := r.m[key]
	return h, ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.m))
	for k := range r.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a registry with the same bindings that can be mutated
// independently of r.
func (r *Registry) Clone() *Registry {
	c := NewRegistry()
	for k, h := range r.m {
		c.m[k] = h
	}
	return c
}

// Default is the registry renderers fall back on. It starts with the
// built-in char, emoji, kbd, and math handlers.
var Default = func() *Registry {
	r := NewRegistry()
	r.Register("char", char{})
	r.Register("emoji", emoji{})
	r.Register("kbd", kbd{})
	r.Register("math", math{})
	return r
}()

// char renders the first character of its value, escaped for the format.
// It makes a literal # or - possible at the start of a line.
type char struct{}

func (char) HTML(value string) string {
	if value == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(value)
	return gen.EscapeHTML(string(r))
}

func (char) Latex(value string) string {
	if value == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(value)
	return gen.EscapeLatex(string(r))
}

var github = definition.Github()

// emoji expands semicolon-separated GitHub shortnames, ignoring space
// around each name. Names that do not resolve keep their spelling, set
// off by spaces.
type emoji struct{}

func (emoji) HTML(value string) string  { return expandEmoji(value) }
func (emoji) Latex(value string) string { return expandEmoji(value) }

func expandEmoji(value string) string {
	var b strings.Builder
	for _, name := range strings.Split(strings.TrimSpace(value), ";") {
		name = strings.TrimSpace(name)
		if em, ok := github.Get(name); ok && em.IsUnicode() {
			b.WriteString(string(em.Unicode))
		} else {
			b.WriteString(" " + name + " ")
		}
	}
	return b.String()
}

// kbd renders plus-separated key names as keystrokes, ignoring space
// around each key. The name cmd stands for the command key.
type kbd struct{}

func (kbd) HTML(value string) string {
	keys := strings.Split(strings.TrimSpace(value), "+")
	for i, k := range keys {
		keys[i] = "<kbd>" + gen.EscapeHTML(keyName(k)) + "</kbd>"
	}
	return strings.Join(keys, "+")
}

func (kbd) Latex(value string) string {
	keys := strings.Split(strings.TrimSpace(value), "+")
	for i, k := range keys {
		keys[i] = keyName(k)
	}
	return gen.EscapeLatex(strings.Join(keys, "+"))
}

func keyName(k string) string {
	k = strings.TrimSpace(k)
	if k == "cmd" {
		return "⌘"
	}
	return k
}

// math renders its value as inline math, delimiters included.
type math struct{}

func (math) HTML(value string) string {
	return `<span class="math">\(` + gen.EscapeMath(value) + `\)</span>`
}

func (math) Latex(value string) string { return "$" + value + "$" }
