// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fatalerror

// This package defines constant error types reported when a demo program aborts.
// Separate package for namespacing

import (
	"errors"
	"fmt"
)

// ErrorType is logged under the errorType field before the process exits
type ErrorType string

const (
	InvalidLogLevel   ErrorType = "Logging.InvalidLevel"  // --log-level not understood by logrus
	InvalidLogFormat  ErrorType = "Logging.InvalidFormat" // --log-format is not glog, text or json
	SinkUnavailable   ErrorType = "Logging.SinkUnavailable"
	InvalidConfig     ErrorType = "Config.Invalid"
	DebugServerFailed ErrorType = "DebugServer.Failed"
	Unknown           ErrorType = "Unknown"
)

var knownErrorTypes = []ErrorType{
	InvalidLogLevel,
	InvalidLogFormat,
	SinkUnavailable,
	InvalidConfig,
	DebugServerFailed,
}

func (t ErrorType) Error() string {
	return string(t)
}

// Wrap tags err with the error type t, keeping err in the chain.
func Wrap(t ErrorType, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", t, err)
}

// GetValidErrorTypeOrUnknown returns the first known ErrorType found in err's chain, Unknown otherwise.
func GetValidErrorTypeOrUnknown(err error) ErrorType {
	for _, t := range knownErrorTypes {
		if errors.Is(err, t) {
			return t
		}
	}
	return Unknown
}
