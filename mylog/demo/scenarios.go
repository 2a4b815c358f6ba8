// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package demo

import (
	"time"

	"go.mytest.dev/mylog/ratelog"
)

const (
	CookieMessage = "获得一个cookie"
	SpinLine      = "this thread runing"
)

// Scenario exercises a fixed set of call sites for the given number of loop passes.
type Scenario func(reg *ratelog.Registry, iterations int)

// Program describes one demo binary.
type Program struct {
	Name     string
	Banner   string
	Scenario Scenario
	// Spin makes the program print SpinLine until interrupted once the scenario is done.
	Spin bool
}

var (
	EveryTProgram = Program{
		Name:     "everyt",
		Banner:   "logging a cookie at most every 10ms and every 2.35s",
		Scenario: CookieEveryT,
		Spin:     true,
	}
	EveryNProgram = Program{
		Name:     "everyn",
		Banner:   "logging a cookie on every 10th pass",
		Scenario: CookieEveryN,
	}
	IfProgram = Program{
		Name:     "logif",
		Banner:   "logging a cookie on even passes",
		Scenario: CookieIf,
	}
)

// CookieEveryT has two call sites logging the same line, one at most every 10ms, one at most every 2.35s.
func CookieEveryT(reg *ratelog.Registry, iterations int) {
	for i := 0; i < iterations; i++ {
		reg.EveryT(10 * time.Millisecond).Info(CookieMessage)
		reg.EveryT(2350 * time.Millisecond).Info(CookieMessage)
	}
}

func CookieEveryN(reg *ratelog.Registry, iterations int) {
	for i := 0; i < iterations; i++ {
		reg.FirstN(3).Infof("warming up, pass %d", i)
		reg.EveryN(10).Info(CookieMessage)
	}
}

func CookieIf(reg *ratelog.Registry, iterations int) {
	for i := 0; i < iterations; i++ {
		reg.If(i%2 == 0).WithField("pass", i).Info(CookieMessage)
		// every 4th pass that is a multiple of three
		reg.IfEveryN(i%3 == 0, 4).WithField("pass", i).Warn(CookieMessage)
	}
}
