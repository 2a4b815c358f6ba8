// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"go.mytest.dev/mylog/fatalerror"
)

const (
	ProgramKey = "program"
	RunIDKey   = "run_id"
)

// Options describe the process-wide logging facility.
type Options struct {
	Program      string
	Level        string
	Format       string
	Output       io.Writer // overrides LogFile when set
	LogFile      string
	AlsoToStderr bool
	Copies       []io.Writer // extra sinks, e.g. a Collector
}

var (
	initOnce sync.Once
	initErr  error
	logFile  *os.File
	runID    string
)

// Init configures the standard logrus logger. Only the first call has any effect,
// later calls return the first call's result.
func Init(opts Options) error {
	initOnce.Do(func() {
		initErr = configure(opts)
	})
	return initErr
}

// RunID returns the id attached to every record of this process, empty before Init.
func RunID() string {
	return runID
}

// Reset undoes Init so it can run again. Meant for tests.
func Reset() {
	SetOutput(os.Stderr)
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetReportCaller(false)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	initOnce = sync.Once{}
	initErr = nil
	runID = ""
}

func configure(opts Options) error {
	if opts.Level == "" {
		opts.Level = "info"
	}
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}

	formatter, err := NewFormatter(opts.Format)
	if err != nil {
		return err
	}

	out, err := openSink(opts)
	if err != nil {
		return err
	}

	program := opts.Program
	if program == "" {
		program = filepath.Base(os.Args[0])
	}
	runID = uuid.New().String()

	// nothing below fails, a failed Init leaves the standard logger untouched
	logrus.SetLevel(level)
	// the glog header needs file:line for records not written through a ratelog call site
	_, isGlog := formatter.(*GlogFormatter)
	logrus.SetReportCaller(isGlog)
	logrus.SetFormatter(&fieldsFormatter{
		inner:  formatter,
		fields: logrus.Fields{ProgramKey: program, RunIDKey: runID},
	})
	SetOutput(out)
	return nil
}

func openSink(opts Options) (io.Writer, error) {
	var primary io.Writer = os.Stderr
	switch {
	case opts.Output != nil:
		primary = opts.Output
	case opts.LogFile != "":
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fatalerror.Wrap(fatalerror.SinkUnavailable, fmt.Errorf("open log file: %w", err))
		}
		logFile = f
		primary = f
	}

	writers := []io.Writer{primary}
	if primary != io.Writer(os.Stderr) {
		mirror := NewMirrorWriter(os.Stderr)
		if opts.AlsoToStderr {
			mirror.Enable()
		}
		writers = append(writers, mirror)
	}
	writers = append(writers, opts.Copies...)

	if len(writers) == 1 {
		return primary, nil
	}
	return io.MultiWriter(writers...), nil
}
