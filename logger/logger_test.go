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

// Tests for logger.go
package logger_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"akhil.cc/concisemark/logger"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	logger.Debug("quiet")
	logger.Info("quiet")
	logger.Warn("loud", "key", "val")
	logger.Error("loud")
	out := buf.String()
	require.NotContains(t, out, "quiet")
	require.Contains(t, out, "loud")
	require.Contains(t, out, "key=val")
}

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)
	logger.SetVerbose(true)
	defer logger.SetVerbose(false)

	logger.Debug("now visible")
	require.Contains(t, buf.String(), "now visible")

	logger.SetVerbose(false)
	buf.Reset()
	logger.Debug("quiet again")
	require.Empty(t, buf.String())
}

func TestDefault(t *testing.T) {
	require.Same(t, logger.Default(), logger.Default())
}
