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

package latex

import "strings"

// Cmd assembles a LaTeX command, a backslash name followed by optional
// bracket options and braced arguments. Arguments are emitted verbatim,
// so escape them first when they carry user text.
type Cmd struct {
	name string
	opts []string
	args []string
}

func NewCmd(name string) *Cmd { return &Cmd{name: name} }

// Option appends one bracket option.
func (c *Cmd) Option(opt string) *Cmd {
	c.opts = append(c.opts, opt)
	return c
}

// Arg appends one braced argument.
func (c *Cmd) Arg(arg string) *Cmd {
	c.args = append(c.args, arg)
	return c
}

func (c *Cmd) String() string {
	var b strings.Builder
	b.WriteByte('\\')
	b.WriteString(c.name)
	if len(c.opts) > 0 {
		b.WriteByte('[')
		b.WriteString(strings.Join(c.opts, ","))
		b.WriteByte(']')
	}
	for _, a := range c.args {
		b.WriteByte('{')
		b.WriteString(a)
		b.WriteByte('}')
	}
	return b.String()
}

// Env assembles a LaTeX environment, a \begin{name}...\end{name} pair
// with optional bracket options and one body line per Line call.
type Env struct {
	name string
	opts []string
	body []string
}

func NewEnv(name string) *Env { return &Env{name: name} }

// Option appends one bracket option to the \begin line.
func (e *Env) Option(opt string) *Env {
	e.opts = append(e.opts, opt)
	return e
}

// Line appends a body line. Multi-line strings keep their breaks.
func (e *Env) Line(s string) *Env {
	e.body = append(e.body, s)
	return e
}

func (e *Env) String() string {
	var b strings.Builder
	b.WriteString("\\begin{")
	b.WriteString(e.name)
	b.WriteByte('}')
	if len(e.opts) > 0 {
		b.WriteByte('[')
		b.WriteString(strings.Join(e.opts, ","))
		b.WriteByte(']')
	}
	for _, ln := range e.body {
		b.WriteByte('\n')
		b.WriteString(ln)
	}
	b.WriteString("\n\\end{")
	b.WriteString(e.name)
	b.WriteByte('}')
	return b.String()
}
