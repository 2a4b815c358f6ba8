// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ratelog

import (
	"github.com/sirupsen/logrus"

	"go.mytest.dev/mylog/logging"
)

const callerKey = logging.CallerKey

// Emitter writes a record when its call site fired, and is a no-op otherwise.
// The zero value is a no-op.
type Emitter struct {
	entry *logrus.Entry
}

// Enabled reports whether the call site fired.
func (e Emitter) Enabled() bool {
	return e.entry != nil
}

func (e Emitter) WithField(key string, value interface{}) Emitter {
	if e.entry == nil {
		return e
	}
	return Emitter{entry: e.entry.WithField(key, value)}
}

func (e Emitter) WithFields(fields logrus.Fields) Emitter {
	if e.entry == nil {
		return e
	}
	return Emitter{entry: e.entry.WithFields(fields)}
}

func (e Emitter) WithError(err error) Emitter {
	if e.entry == nil {
		return e
	}
	return Emitter{entry: e.entry.WithError(err)}
}

func (e Emitter) Debug(args ...interface{}) {
	if e.entry != nil {
		e.entry.Debug(args...)
	}
}

func (e Emitter) Info(args ...interface{}) {
	if e.entry != nil {
		e.entry.Info(args...)
	}
}

func (e Emitter) Warn(args ...interface{}) {
	if e.entry != nil {
		e.entry.Warn(args...)
	}
}

func (e Emitter) Error(args ...interface{}) {
	if e.entry != nil {
		e.entry.Error(args...)
	}
}

// Fatal logs and exits through the logger's ExitFunc, only when the call site fired.
func (e Emitter) Fatal(args ...interface{}) {
	if e.entry != nil {
		e.entry.Fatal(args...)
	}
}

func (e Emitter) Debugf(format string, args ...interface{}) {
	if e.entry != nil {
		e.entry.Debugf(format, args...)
	}
}

func (e Emitter) Infof(format string, args ...interface{}) {
	if e.entry != nil {
		e.entry.Infof(format, args...)
	}
}

func (e Emitter) Warnf(format string, args ...interface{}) {
	if e.entry != nil {
		e.entry.Warnf(format, args...)
	}
}

func (e Emitter) Errorf(format string, args ...interface{}) {
	if e.entry != nil {
		e.entry.Errorf(format, args...)
	}
}

func (e Emitter) Fatalf(format string, args ...interface{}) {
	if e.entry != nil {
		e.entry.Fatalf(format, args...)
	}
}
