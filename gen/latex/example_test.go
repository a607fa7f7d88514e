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

// Examples for latex.go
package latex_test

import (
	"fmt"
	"strings"

	"akhil.cc/concisemark/extension"
	"akhil.cc/concisemark/gen/latex"
	"akhil.cc/concisemark/parser"
)

func ExampleRender() {
	src := `# Results

The method converges in $O(n)$ steps.`
	page := parser.MustParse(strings.NewReader(src))
	fmt.Println(latex.Render(page))
	// Output:
	// \section{Results}
	//
	// The method converges in $O(n)$ steps.
}

func ExampleGenerator_Render() {
	reg := extension.NewRegistry()
	reg.Register("sc", extension.Funcs{LatexFunc: func(v string) string {
		return `\textsc{` + v + `}`
	}})
	page := parser.MustParse(strings.NewReader("@sc{Special} thanks to the reviewers."))
	g := latex.Generator{Page: page, Ext: reg}
	fmt.Println(g.Render())
	// Output:
	// \textsc{Special} thanks to the reviewers.
}
