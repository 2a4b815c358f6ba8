// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"log"
)

// ConsolePrinter writes human-readable lines to the console, with no severity, timestamp or caller
type ConsolePrinter struct {
	logger *log.Logger
}

// NewConsolePrinter returns a printer writing to output and to every copy
func NewConsolePrinter(output io.Writer, copies ...io.Writer) *ConsolePrinter {
	prefix, flags := "", 0
	w := output
	if len(copies) > 0 {
		w = io.MultiWriter(append([]io.Writer{output}, copies...)...)
	}
	return &ConsolePrinter{
		logger: log.New(w, prefix, flags),
	}
}

// Println writes line followed by a newline.
func (p *ConsolePrinter) Println(line string) {
	p.logger.Println(line)
}

// Printf writes a formatted line, the newline is added when missing.
func (p *ConsolePrinter) Printf(format string, args ...interface{}) {
	p.logger.Printf(format, args...)
}
