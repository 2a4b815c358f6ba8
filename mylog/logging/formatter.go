// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"go.mytest.dev/mylog/fatalerror"
)

// CallerKey holds the file:line of the call site that produced a record.
// When present it takes the place of logrus' own caller reporting.
const CallerKey = "caller"

const (
	FormatGlog = "glog"
	FormatText = "text"
	FormatJSON = "json"
)

// GlogFormatter renders records as
//
//	Lmmdd hh:mm:ss.uuuuuu threadid file:line] msg key=value ...
type GlogFormatter struct {
	// Pid is printed in the threadid column, os.Getpid() when zero.
	Pid int
}

func severityChar(level logrus.Level) byte {
	switch level {
	case logrus.TraceLevel:
		return 'T'
	case logrus.DebugLevel:
		return 'D'
	case logrus.InfoLevel:
		return 'I'
	case logrus.WarnLevel:
		return 'W'
	case logrus.ErrorLevel:
		return 'E'
	case logrus.FatalLevel:
		return 'F'
	case logrus.PanicLevel:
		return 'P'
	}
	return '?'
}

func location(entry *logrus.Entry) string {
	if v, ok := entry.Data[CallerKey].(string); ok && v != "" {
		return v
	}
	if entry.HasCaller() {
		return fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}
	return "???:0"
}

func (f *GlogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	pid := f.Pid
	if pid == 0 {
		pid = os.Getpid()
	}

	t := entry.Time
	fmt.Fprintf(b, "%c%02d%02d %02d:%02d:%02d.%06d %5d %s] %s",
		severityChar(entry.Level),
		int(t.Month()), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1000,
		pid,
		location(entry),
		strings.TrimSuffix(entry.Message, "\n"))

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k == CallerKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := entry.Data[k]
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		fmt.Fprintf(b, " %s=%v", k, v)
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// fieldsFormatter adds fixed fields to every record without touching the entry's own map,
// which logrus shares between the parent entry and the record being written.
type fieldsFormatter struct {
	inner  logrus.Formatter
	fields logrus.Fields
}

func (f *fieldsFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	data := make(logrus.Fields, len(entry.Data)+len(f.fields))
	for k, v := range f.fields {
		data[k] = v
	}
	for k, v := range entry.Data {
		data[k] = v
	}
	e := *entry
	e.Data = data
	return f.inner.Format(&e)
}

// NewFormatter returns the formatter registered under name.
func NewFormatter(name string) (logrus.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatGlog:
		return &GlogFormatter{}, nil
	case FormatText:
		return &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}, nil
	case FormatJSON:
		return &logrus.JSONFormatter{}, nil
	}
	return nil, fatalerror.Wrap(fatalerror.InvalidLogFormat, fmt.Errorf("unknown log format %q", name))
}
