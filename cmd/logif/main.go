// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"go.mytest.dev/mylog/demo"
)

func main() {
	os.Exit(demo.Main(demo.IfProgram, os.Args[1:], os.Stdout))
}
