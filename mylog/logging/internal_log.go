// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"io"
	"log"

	"github.com/sirupsen/logrus"

	"go.mytest.dev/mylog/fatalerror"
)

// SetOutput configures logging output for standard loggers.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
	logrus.SetOutput(w)
}

// SetLogLevel sets the level of the standard logrus logger.
func SetLogLevel(logLevel string) error {
	level, err := parseLevel(logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}

func parseLevel(logLevel string) (logrus.Level, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return level, fatalerror.Wrap(fatalerror.InvalidLogLevel, err)
	}
	return level, nil
}
