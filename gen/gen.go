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

// Package gen holds helpers shared by the output generators.
package gen // import "akhil.cc/concisemark/gen"

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	sq "github.com/kballard/go-shellquote"
)

// Dedent strips the longest run of leading spaces common to every
// non-blank line of s. Relative indentation inside the block survives,
// and whitespace-only lines come out empty.
func Dedent(s string) string {
	lines := strings.Split(s, "\n")
	common := -1
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		n := len(ln) - len(strings.TrimLeft(ln, " "))
		if common == -1 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return s
	}
	for i, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			lines[i] = ""
		} else {
			lines[i] = ln[common:]
		}
	}
	return strings.Join(lines, "\n")
}

var htmlEsc = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeHTML escapes the characters HTML gives meaning to.
func EscapeHTML(s string) string { return htmlEsc.Replace(s) }

var mathEsc = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
)

// EscapeMath escapes & and < for math text embedded in HTML, leaving the
// rest of the TeX source untouched.
func EscapeMath(s string) string { return mathEsc.Replace(s) }

var latexEsc = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"#", `\#`,
	"$", `\$`,
	"%", `\%`,
	"&", `\&`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

// EscapeLatex escapes the characters LaTeX gives meaning to.
func EscapeLatex(s string) string { return latexEsc.Replace(s) }

// Command holds the cancellation context and Stderr stream for an invoked
// typesetting engine.
type Command struct {
	Ctx    context.Context
	Stderr io.Writer
}

// Typeset runs the engine command line on the named .tex file, in that
// file's directory. The engine string is split according to the Bourne
// shell's word-splitting rules and the file name is appended as the last
// argument. Engine output is written to the command's Stderr when set.
func (c *Command) Typeset(engine, texfile string) error {
	words, err := sq.Split(engine)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("no valid engine command: %q", engine)
	}
	args := append(words[1:], filepath.Base(texfile))
	var cmd *exec.Cmd
	if c.Ctx == nil {
		cmd = exec.Command(words[0], args...)
	} else {
		cmd = exec.CommandContext(c.Ctx, words[0], args...)
	}
	cmd.Dir = filepath.Dir(texfile)
	if c.Stderr != nil {
		cmd.Stdout = c.Stderr
		cmd.Stderr = c.Stderr
	}
	return cmd.Run()
}
