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

// Package meta extracts TOML front matter from a source document.
//
// Front matter is optional. When present it must open the document as its
// very first bytes, with the markers each on a line of their own:
//
//	<!---
//	title = "An Entry"
//	date = "2024-05-01 10:00:00"
//	authors = ["a author"]
//	tags = ["draft"]
//	-->
//
// The text between the markers is TOML. Unrecognized keys are ignored.
package meta // import "akhil.cc/concisemark/meta"

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"akhil.cc/concisemark/logger"
)

// DateLayout is the accepted format of the date field.
const DateLayout = "2006-01-02 15:04:05"

const (
	openMark  = "<!---\n"
	closeMark = "-->\n"
)

// Meta holds the recognized front matter fields. All of them are optional.
type Meta struct {
	Title    string
	Subtitle string
	Date     time.Time
	Authors  []string
	Tags     []string
}

// ParseError reports front matter that is present but unusable.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "front matter: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

var errUnterminated = errors.New("missing closing -->")

// frontMatter is the TOML shape of the block. The date stays a string
// here so its layout can be enforced separately.
type frontMatter struct {
	Title    string   `toml:"title"`
	Subtitle string   `toml:"subtitle"`
	Date     string   `toml:"date"`
	Authors  []string `toml:"authors"`
	Tags     []string `toml:"tags"`
}

// Extract parses front matter at the start of src. It returns the parsed
// fields and the byte offset where the document body begins. A document
// that does not open with the front matter marker yields (nil, 0, nil).
// A document that opens with the marker but lacks the terminator, holds
// invalid TOML, or carries a malformed date yields a *ParseError.
func Extract(src string) (*Meta, int, error) {
	if !strings.HasPrefix(src, openMark) {
		return nil, 0, nil
	}
	rest := src[len(openMark):]
	var block string
	var body int
	switch end := strings.Index(rest, closeMark); {
	case end >= 0:
		block = rest[:end]
		body = len(openMark) + end + len(closeMark)
	case strings.HasSuffix(rest, "-->"):
		// terminated at end of input without a trailing newline
		block = rest[:len(rest)-len("-->")]
		body = len(src)
	default:
		return nil, 0, &ParseError{Err: errUnterminated}
	}
	var fm frontMatter
	md, err := toml.Decode(block, &fm)
	if err != nil {
		return nil, 0, &ParseError{Err: err}
	}
	for _, k := range md.Undecoded() {
		logger.Debug("ignoring front matter key", "key", k.String())
	}
	m := &Meta{
		Title:    fm.Title,
		Subtitle: fm.Subtitle,
		Authors:  fm.Authors,
		Tags:     fm.Tags,
	}
	if fm.Date != "" {
		t, err := time.Parse(DateLayout, fm.Date)
		if err != nil {
			return nil, 0, &ParseError{Err: fmt.Errorf("date %q: want layout %s", fm.Date, DateLayout)}
		}
		m.Date = t
	}
	return m, body, nil
}
