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

// Package logger holds the process-wide logger shared by the library.
//
// The default logger writes to standard error at the warn level, so a
// clean parse stays silent. Change the level or output at program start,
// before parsing or rendering begins.
package logger // import "akhil.cc/concisemark/logger"

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var std = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Level:           log.WarnLevel,
})

// Default returns the shared logger.
func Default() *log.Logger { return std }

// SetOutput redirects the shared logger to w.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// SetLevel sets the minimum level the shared logger reports.
func SetLevel(level log.Level) { std.SetLevel(level) }

// SetVerbose lowers the level to debug when v is true and restores the
// warn default otherwise.
func SetVerbose(v bool) {
	if v {
		std.SetLevel(log.DebugLevel)
	} else {
		std.SetLevel(log.WarnLevel)
	}
}

// Debug logs a message at the debug level.
func Debug(msg interface{}, keyvals ...interface{}) { std.Debug(msg, keyvals...) }

// Info logs a message at the info level.
func Info(msg interface{}, keyvals ...interface{}) { std.Info(msg, keyvals...) }

// Warn logs a message at the warn level.
func Warn(msg interface{}, keyvals ...interface{}) { std.Warn(msg, keyvals...) }

// Error logs a message at the error level.
func Error(msg interface{}, keyvals ...interface{}) { std.Error(msg, keyvals...) }
