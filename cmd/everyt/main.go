// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"go.mytest.dev/mylog/demo"
)

// everyt logs a cookie through two every-T call sites, then prints to stdout until
// interrupted. --no-spin or --spin-lines end it early.
func main() {
	os.Exit(demo.Main(demo.EveryTProgram, os.Args[1:], os.Stdout))
}
