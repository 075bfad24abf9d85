/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Banner prints a one-line startup announcement (binary name plus the
// target or bind address it's about to drive) to w, or to stdout when w is
// nil. The program name is printed in bold cyan when w is a terminal; the
// line is plain text otherwise.
func Banner(w io.Writer, program, detail string) {
	if w == nil {
		w = os.Stdout
	}

	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		bold := color.New(color.FgCyan, color.Bold)
		_, _ = bold.Fprintf(w, "%s", program)
		_, _ = fmt.Fprintf(w, " %s\n", detail)
		return
	}

	_, _ = fmt.Fprintf(w, "%s %s\n", program, detail)
}
