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

// Package logger builds the structured logrus.Logger shared by the load
// and server binaries: JSON on a non-interactive output, colorized text on
// a terminal.
package logger

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Options configures New.
type Options struct {
	// Level is the minimum level logged. Invalid strings fall back to Info.
	Level string

	// Output overrides the destination stream. Defaults to os.Stderr.
	Output io.Writer

	// Component is attached as a "component" field to every entry.
	Component string
}

// New builds a logrus.Logger honoring Options: a color-aware text formatter
// writing through go-colorable when Output is an interactive terminal,
// JSON otherwise, so piped/log-shipped output stays structured.
func New(opts Options) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		out = colorable.NewColorable(f)
		log.SetFormatter(&logrus.TextFormatter{
			ForceColors:   true,
			FullTimestamp: true,
		})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	log.SetOutput(out)

	if opts.Component != "" {
		return entryLogger(log, opts.Component)
	}
	return log
}

// entryLogger returns log itself after adding a componentHook, which sets
// the "component" field on every entry that does not already carry one;
// logrus has no notion of a logger-wide default field.
func entryLogger(log *logrus.Logger, component string) *logrus.Logger {
	log.AddHook(componentHook{component: component})
	return log
}

type componentHook struct {
	component string
}

func (h componentHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h componentHook) Fire(entry *logrus.Entry) error {
	if _, ok := entry.Data["component"]; !ok {
		entry.Data["component"] = h.component
	}
	return nil
}
