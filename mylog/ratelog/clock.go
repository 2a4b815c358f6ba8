// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ratelog

import "time"

// Clock returns the current time. Every-T call sites read time only through it.
type Clock func() time.Time

// SystemClock keeps the monotonic reading of time.Now, so every-T intervals are immune to wall clock steps.
func SystemClock() time.Time {
	return time.Now()
}
