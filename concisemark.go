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

// This CLI utility runs a command listed below to run its
// corresponding output generator on a concisemark source file.
//
// Usage:
//   concisemark [command]
//
// Available Commands:
//   ast         JSON syntax tree output for concisemark source files
//   help        Help about any command
//   html        HTML output generator for concisemark source files
//   latex       LaTeX output generator for concisemark source files
//   pdf         PDF typesetting for concisemark source files
//
// Flags:
//   -h, --help      help for concisemark
//   -v, --verbose   enable debug logging
//
// Use "concisemark [command] --help" for more information about a command.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"akhil.cc/concisemark/gen"
	"akhil.cc/concisemark/gen/html"
	"akhil.cc/concisemark/gen/latex"
	"akhil.cc/concisemark/logger"
	"akhil.cc/concisemark/parser"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

func prefix(msg string, err error) error {
	return errors.New(msg + err.Error())
}

func open(args []string) (*os.File, error) {
	if len(args) != 0 {
		return os.Open(args[0])
	}
	return os.Stdin, nil
}

func create(name string) (*os.File, error) {
	if len(name) != 0 {
		return os.Create(name)
	}
	return os.Stdout, nil
}

var preamble = template.Must(template.New("doc").Parse(`\documentclass{article}
\usepackage[utf8]{inputenc}
\usepackage{graphicx}
\usepackage{hyperref}
\usepackage{amsmath}
\title{ {{- .Title -}} }
\author{ {{- .Author -}} }
\date{ {{- .Date -}} }
\begin{document}
{{if .Title}}\maketitle
{{end}}{{.Body}}
\end{document}
`))

func main() {
	rootCmd := &cobra.Command{
		Use:   "concisemark generator",
		Short: "output generation for concisemark source files",
		Long: `This CLI utility runs a command listed below to run its
corresponding output generator on a concisemark source file.`,
	}
	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "``enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	}

	var htmlOut string
	prefixHTML := "(HTML) "
	htmlCmd := &cobra.Command{
		Use:   "html [input] [-o output]",
		Short: "HTML output generator for concisemark source files",
		Long: `This command parses a concisemark source file and renders its page
tree as an HTML fragment. Text, code, and attribute values are escaped
automatically. Front matter between <!--- and --> populates the page
metadata and produces no output. Malformed markup is rendered as
literal text.

If no input file is specified, input is read from
standard input. Similarly, if no output argument is
specified, output is written to standard output.`,
		Args:                  cobra.MaximumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := open(args)
			if err != nil {
				return prefix(prefixHTML, err)
			}
			defer src.Close()
			out, err := create(htmlOut)
			if err != nil {
				return prefix(prefixHTML, err)
			}
			defer out.Close()
			page, err := parser.Parse(src)
			if err != nil {
				return prefix(prefixHTML, err)
			}
			g := html.Generator{Page: page}
			if _, err := g.WriteTo(out); err != nil {
				return prefix(prefixHTML, err)
			}
			return nil
		},
	}
	htmlCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if err != nil {
			return prefix(prefixHTML, err)
		}
		return nil
	})
	// pflag includes the argument type when it unquotes its usage.
	// To prevent this behavior we prefix the usage with backquotes ``.
	htmlCmd.Flags().StringVarP(&htmlOut, "output", "o", "", "``name of the output file")

	var latexOut string
	prefixLatex := "(LaTeX) "
	latexCmd := &cobra.Command{
		Use:   "latex [input] [-o output]",
		Short: "LaTeX output generator for concisemark source files",
		Long: `This command parses a concisemark source file and renders its page
tree as a LaTeX body fragment. Reserved characters in text are escaped;
code blocks become verbatim environments and math spans pass through
untouched. Front matter between <!--- and --> populates the page
metadata and produces no output.

If no input file is specified, input is read from
standard input. Similarly, if no output argument is
specified, output is written to standard output.`,
		Args:                  cobra.MaximumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := open(args)
			if err != nil {
				return prefix(prefixLatex, err)
			}
			defer src.Close()
			out, err := create(latexOut)
			if err != nil {
				return prefix(prefixLatex, err)
			}
			defer out.Close()
			page, err := parser.Parse(src)
			if err != nil {
				return prefix(prefixLatex, err)
			}
			g := latex.Generator{Page: page}
			if _, err := g.WriteTo(out); err != nil {
				return prefix(prefixLatex, err)
			}
			return nil
		},
	}
	latexCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if err != nil {
			return prefix(prefixLatex, err)
		}
		return nil
	})
	latexCmd.Flags().StringVarP(&latexOut, "output", "o", "", "``name of the output file")

	var astOut string
	var dump bool
	prefixAST := "(AST) "
	astCmd := &cobra.Command{
		Use:   "ast [input] [-o output]",
		Short: "JSON syntax tree output for concisemark source files",
		Long: `This command parses a concisemark source file and prints its page
tree as JSON. Every node carries its tag, its byte range in the
normalized source, and its children. The --dump flag prints the full
node arena as a Go literal instead.

If no input file is specified, input is read from
standard input. Similarly, if no output argument is
specified, output is written to standard output.`,
		Args:                  cobra.MaximumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := open(args)
			if err != nil {
				return prefix(prefixAST, err)
			}
			defer src.Close()
			out, err := create(astOut)
			if err != nil {
				return prefix(prefixAST, err)
			}
			defer out.Close()
			page, err := parser.Parse(src)
			if err != nil {
				return prefix(prefixAST, err)
			}
			if dump {
				fmt.Fprintln(out, litter.Sdump(page))
				return nil
			}
			buf, err := json.MarshalIndent(page, "", "\t")
			if err != nil {
				return prefix(prefixAST, err)
			}
			buf = append(buf, '\n')
			if _, err := out.Write(buf); err != nil {
				return prefix(prefixAST, err)
			}
			return nil
		},
	}
	astCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if err != nil {
			return prefix(prefixAST, err)
		}
		return nil
	})
	astCmd.Flags().StringVarP(&astOut, "output", "o", "", "``name of the output file")
	astCmd.Flags().BoolVarP(&dump, "dump", "d", false, "``print the node arena as a Go literal")

	var pdfOut string
	var engine string
	var timeout time.Duration
	prefixPDF := "(PDF) "
	pdfCmd := &cobra.Command{
		Use:   "pdf [input] [-o output]",
		Short: "PDF typesetting for concisemark source files",
		Long: `This command parses a concisemark source file, wraps the rendered
LaTeX in an article preamble, and typesets it with an external engine.
The engine command is split according to the Bourne shell's
word-splitting rules and runs in a temporary directory. Front matter
supplies the document's title, author, and date.

If no input file is specified, input is read from standard input. If no
output argument is specified, the PDF is written next to the input file,
or to out.pdf when reading from standard input.`,
		Args:                  cobra.MaximumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := open(args)
			if err != nil {
				return prefix(prefixPDF, err)
			}
			defer src.Close()
			page, err := parser.Parse(src)
			if err != nil {
				return prefix(prefixPDF, err)
			}
			doc := struct {
				Title, Author, Date, Body string
			}{
				Body: latex.Render(page),
			}
			if m := page.Meta; m != nil {
				doc.Title = gen.EscapeLatex(m.Title)
				names := make([]string, len(m.Authors))
				for i, a := range m.Authors {
					names[i] = gen.EscapeLatex(a)
				}
				doc.Author = strings.Join(names, " \\and ")
				if !m.Date.IsZero() {
					doc.Date = m.Date.Format("January 2, 2006")
				}
			}
			var b bytes.Buffer
			if err := preamble.Execute(&b, doc); err != nil {
				return prefix(prefixPDF, err)
			}
			tmp, err := os.MkdirTemp("", "concisemark")
			if err != nil {
				return prefix(prefixPDF, err)
			}
			defer os.RemoveAll(tmp)
			texfile := filepath.Join(tmp, "doc.tex")
			if err := os.WriteFile(texfile, b.Bytes(), 0666); err != nil {
				return prefix(prefixPDF, err)
			}
			ctx := context.Background()
			if timeout > -1 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			c := gen.Command{Ctx: ctx, Stderr: os.Stderr}
			if err := c.Typeset(engine, texfile); err != nil {
				return prefix(prefixPDF, err)
			}
			pdf, err := os.Open(filepath.Join(tmp, "doc.pdf"))
			if err != nil {
				return prefix(prefixPDF, err)
			}
			defer pdf.Close()
			name := pdfOut
			if name == "" {
				name = "out.pdf"
				if len(args) != 0 {
					name = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".pdf"
				}
			}
			out, err := os.Create(name)
			if err != nil {
				return prefix(prefixPDF, err)
			}
			defer out.Close()
			if _, err := io.Copy(out, pdf); err != nil {
				return prefix(prefixPDF, err)
			}
			return nil
		},
	}
	pdfCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		if err != nil {
			return prefix(prefixPDF, err)
		}
		return nil
	})
	pdfCmd.Flags().StringVarP(&pdfOut, "output", "o", "", "``name of the output file")
	pdfCmd.Flags().StringVarP(&engine, "engine", "e", "xelatex -interaction=nonstopmode -halt-on-error", "``typesetting command to run on the generated LaTeX")
	pdfCmd.Flags().DurationVarP(&timeout, "timeout", "t", -1, "``timeout used to halt a long-running typesetting engine")
	// Set string version of default value to be zero-value to prevent it from being printed by FlagUsages.
	pdfCmd.Flags().Lookup("timeout").DefValue = "0"

	rootCmd.AddCommand(htmlCmd, latexCmd, astCmd, pdfCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
