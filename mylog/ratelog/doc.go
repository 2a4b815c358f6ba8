// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package ratelog decides, per call site, whether a log record should be written.

Each policy function returns an Emitter. The Emitter writes through logrus when the call site
fires and does nothing otherwise:

	ratelog.EveryT(10 * time.Millisecond).Info("获得一个cookie")
	ratelog.EveryN(10).Infof("request %d", i)
	ratelog.FirstN(3).Warn("slow start")
	ratelog.If(len(queue) > 100).Warn("queue is backing up")
	ratelog.IfEveryN(err != nil, 50).WithError(err).Error("flush failed")

A call site is identified by the source position (function, file and line) of the policy call,
so copies of a call inlined into several callers share one state. Two policy calls written on one
line share it too. Occurrences are counted whether or not the record's level is enabled.
Every record that fires carries the call site's file:line under logging.CallerKey and the
occurrence count under OccurrencesKey.
*/
package ratelog
