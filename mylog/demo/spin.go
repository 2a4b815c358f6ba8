// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package demo

import (
	"context"

	"go.mytest.dev/mylog/logging"
)

// Spin prints SpinLine in a tight loop, without sleeping, until ctx is done or maxLines
// lines were printed. maxLines of 0 means no limit. It returns the number of lines printed.
func Spin(ctx context.Context, console *logging.ConsolePrinter, maxLines int) int {
	lines := 0
	for maxLines == 0 || lines < maxLines {
		select {
		case <-ctx.Done():
			return lines
		default:
		}
		console.Println(SpinLine)
		lines++
	}
	return lines
}
