// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ratelog

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mytest.dev/mylog/logging"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestRegistry(opts ...Option) (*Registry, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewRegistry(logger, opts...), hook
}

func occurrencesOf(entries []*logrus.Entry) []int64 {
	var counts []int64
	for _, e := range entries {
		counts = append(counts, e.Data[OccurrencesKey].(int64))
	}
	return counts
}

func TestEveryNFiresOnFirstAndEveryNth(t *testing.T) {
	r, hook := newTestRegistry()

	for i := 0; i < 10; i++ {
		r.EveryN(3).Info("获得一个cookie")
	}

	assert.Equal(t, []int64{1, 4, 7, 10}, occurrencesOf(hook.AllEntries()))
	assert.Equal(t, "获得一个cookie", hook.LastEntry().Message)
}

func TestEveryNDegenerateValues(t *testing.T) {
	for _, n := range []int{1, 0, -3} {
		r, hook := newTestRegistry()
		for i := 0; i < 5; i++ {
			r.EveryN(n).Info("always")
		}
		assert.Len(t, hook.AllEntries(), 5, "n=%d", n)
	}
}

func TestFirstN(t *testing.T) {
	r, hook := newTestRegistry()

	for i := 0; i < 5; i++ {
		r.FirstN(3).Warn("starting up")
	}
	for i := 0; i < 5; i++ {
		r.FirstN(0).Warn("never")
	}

	assert.Equal(t, []int64{1, 2, 3}, occurrencesOf(hook.AllEntries()))
}

func TestEveryTFiresAtMostOncePerInterval(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)}
	r, hook := newTestRegistry(WithClock(clock.Now))

	steps := []time.Duration{0, 500 * time.Millisecond, 500 * time.Millisecond, 200 * time.Millisecond, 1300 * time.Millisecond, 999 * time.Millisecond}
	for _, step := range steps {
		clock.Advance(step)
		r.EveryT(time.Second).Info("获得一个cookie")
	}

	// fires at 0s, 1.0s and 2.5s
	assert.Equal(t, []int64{1, 3, 5}, occurrencesOf(hook.AllEntries()))
}

func TestEveryTZeroIntervalAlwaysFires(t *testing.T) {
	r, hook := newTestRegistry(WithClock((&fakeClock{}).Now))

	for i := 0; i < 4; i++ {
		r.EveryT(0).Info("tick")
	}

	assert.Len(t, hook.AllEntries(), 4)
}

func TestEveryTIntervalChange(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)}
	r, hook := newTestRegistry(WithClock(clock.Now))

	interval := 10 * time.Second
	for i := 0; i < 4; i++ {
		r.EveryT(interval).Info("tick")
		clock.Advance(2 * time.Second)
		interval = time.Second
	}

	// 2s apart, every pass is past the new 1s interval
	assert.Equal(t, []int64{1, 2, 3, 4}, occurrencesOf(hook.AllEntries()))
	assert.Equal(t, "1s", r.Sites()[0].Param)
}

func TestEveryTShorterIntervalRunsFromLastRecord(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)}
	r, hook := newTestRegistry(WithClock(clock.Now))

	tests := []struct {
		interval time.Duration
		step     time.Duration
		fired    bool
	}{
		{10 * time.Second, 0, true},
		{time.Second, 5 * time.Second, true},
		{time.Second, 500 * time.Millisecond, false},
		{time.Second, 500 * time.Millisecond, true},
	}
	for i, tt := range tests {
		clock.Advance(tt.step)
		e := r.EveryT(tt.interval)
		assert.Equal(t, tt.fired, e.Enabled(), "pass %d", i)
		e.Info("获得一个cookie")
	}

	assert.Equal(t, []int64{1, 2, 4}, occurrencesOf(hook.AllEntries()))
}

func TestEveryTLongerIntervalRunsFromLastRecord(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)}
	r, hook := newTestRegistry(WithClock(clock.Now))

	steps := []struct {
		interval time.Duration
		step     time.Duration
	}{
		{time.Second, 0},
		{10 * time.Second, 2 * time.Second},
		{10 * time.Second, 7 * time.Second},
		{10 * time.Second, time.Second},
	}
	for _, s := range steps {
		clock.Advance(s.step)
		r.EveryT(s.interval).Info("tick")
	}

	// fires at 0s and 10s
	assert.Equal(t, []int64{1, 4}, occurrencesOf(hook.AllEntries()))
	assert.Equal(t, "10s", r.Sites()[0].Param)
}

func TestIf(t *testing.T) {
	r, hook := newTestRegistry()

	for i := 0; i < 6; i++ {
		r.If(i%2 == 0).Infof("even %d", i)
	}

	require.Len(t, hook.AllEntries(), 3)
	assert.Equal(t, "even 4", hook.LastEntry().Message)
	stats := r.Sites()
	require.Len(t, stats, 1)
	assert.Equal(t, SiteStats{Location: stats[0].Location, Kind: KindIf, Occurrences: 6, Emitted: 3, Suppressed: 3}, stats[0])
}

func TestIfEveryNCountsOnlyWhenConditionHolds(t *testing.T) {
	r, hook := newTestRegistry()

	for i := 0; i < 24; i++ {
		r.IfEveryN(i%3 == 0, 4).Infof("multiple of three %d", i)
	}

	// i = 0, 3, ... 21 are the 8 counted occurrences, the 1st and 5th fire
	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{"multiple of three 0", "multiple of three 12"}, messages)
	assert.Equal(t, int64(8), r.Sites()[0].Occurrences)
}

func TestCallSitesAreIndependent(t *testing.T) {
	r, hook := newTestRegistry()

	for i := 0; i < 4; i++ {
		r.EveryN(2).Info("a")
		r.EveryN(2).Info("b")
	}
	r.FirstN(1).Info("c")
	r.FirstN(1).Info("d")

	var messages []string
	for _, e := range hook.AllEntries() {
		messages = append(messages, e.Message)
	}
	assert.Equal(t, []string{"a", "b", "a", "b", "c", "d"}, messages)
	assert.Len(t, r.Sites(), 4)
}

func TestCallsOnOneLineShareSite(t *testing.T) {
	r, hook := newTestRegistry()

	c, d := r.FirstN(1), r.FirstN(1)
	c.Info("c")
	d.Info("d")

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "c", hook.LastEntry().Message)
	stats := r.Sites()
	require.Len(t, stats, 1)
	assert.Equal(t, int64(2), stats[0].Occurrences)
}

func everySecondPass(r *Registry) Emitter {
	return r.EveryN(2)
}

func TestHelperCallSiteIsOneSite(t *testing.T) {
	r, hook := newTestRegistry()

	for i := 0; i < 4; i++ {
		everySecondPass(r).Info("from loop head")
		everySecondPass(r).Info("from loop tail")
	}

	// one call site inside the helper, wherever it is inlined
	stats := r.Sites()
	require.Len(t, stats, 1)
	assert.Equal(t, int64(8), stats[0].Occurrences)
	assert.Equal(t, int64(4), stats[0].Emitted)
	assert.Len(t, hook.AllEntries(), 4)
	assert.True(t, strings.HasPrefix(stats[0].Location, "registry_test.go:"), stats[0].Location)
}

func TestRecordsCarryCallSite(t *testing.T) {
	r, hook := newTestRegistry()

	r.EveryN(1).Info("here")

	caller, ok := hook.LastEntry().Data[logging.CallerKey].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(caller, "registry_test.go:"), caller)
	assert.Equal(t, caller, r.Sites()[0].Location)
}

func TestOccurrencesCountedWhenLevelDisabled(t *testing.T) {
	r, hook := newTestRegistry()
	r.Logger().SetLevel(logrus.WarnLevel)

	for i := 0; i < 4; i++ {
		r.EveryN(2).Info("quiet")
	}

	assert.Empty(t, hook.AllEntries())
	stats := r.Sites()[0]
	assert.Equal(t, int64(4), stats.Occurrences)
	assert.Equal(t, int64(2), stats.Emitted)
}

func TestSuppressedEmitterIsNoop(t *testing.T) {
	r, hook := newTestRegistry()
	exited := false
	r.Logger().ExitFunc = func(int) { exited = true }

	for i := 0; i < 2; i++ {
		e := r.FirstN(1).WithField("attempt", i).WithError(errors.New("boom"))
		assert.Equal(t, i == 0, e.Enabled())
		e.Fatalf("giving up after %d", i)
	}

	assert.True(t, exited)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.FatalLevel, hook.LastEntry().Level)
	assert.Equal(t, 0, hook.LastEntry().Data["attempt"])

	var zero Emitter
	zero.WithFields(logrus.Fields{"k": "v"}).Error("nothing")
	assert.Len(t, hook.AllEntries(), 1)
}

func TestConcurrentCallSite(t *testing.T) {
	r, hook := newTestRegistry()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				r.EveryN(10).Debug("concurrent")
			}
		}()
	}
	wg.Wait()

	assert.Len(t, hook.AllEntries(), 80)
	assert.Equal(t, int64(800), r.Sites()[0].Occurrences)
}

func TestSitesSortedAndReset(t *testing.T) {
	r, _ := newTestRegistry()

	r.FirstN(1).Info("one")
	r.EveryN(5).Info("two")
	r.If(false).Info("three")

	stats := r.Sites()
	require.Len(t, stats, 3)
	assert.True(t, stats[0].Location < stats[1].Location)
	assert.True(t, stats[1].Location < stats[2].Location)
	assert.Equal(t, []Kind{KindFirstN, KindEveryN, KindIf}, []Kind{stats[0].Kind, stats[1].Kind, stats[2].Kind})
	assert.Equal(t, "5", stats[1].Param)

	r.Reset()
	assert.Empty(t, r.Sites())
}

func TestPackageFunctionsUseDefault(t *testing.T) {
	logger, hook := test.NewNullLogger()
	saved := Default
	Default = NewRegistry(logger)
	defer func() { Default = saved }()

	for i := 0; i < 3; i++ {
		If(true).Info("if")
		EveryN(2).Info("every n")
		FirstN(1).Info("first n")
		EveryT(time.Hour).Info("every t")
		IfEveryN(true, 3).Info("if every n")
	}

	assert.Len(t, hook.AllEntries(), 3+2+1+1+1)
	assert.Len(t, Sites(), 5)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "every_t", KindEveryT.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
	text, err := KindIfEveryN.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "if_every_n", string(text))
}

func BenchmarkEveryNSuppressed(b *testing.B) {
	r, _ := newTestRegistry()
	for n := 0; n < b.N; n++ {
		r.EveryN(1 << 30).Info("rarely")
	}
}

func BenchmarkEveryTSuppressed(b *testing.B) {
	r, _ := newTestRegistry()
	for n := 0; n < b.N; n++ {
		r.EveryT(time.Hour).Info("rarely")
	}
}
