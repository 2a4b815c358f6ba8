// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ratelog

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// OccurrencesKey holds how many times the call site was reached, including this one.
const OccurrencesKey = "occurrences"

// Observer is told about every occurrence of every call site.
type Observer interface {
	Observe(kind Kind, emitted bool)
}

type observerBox struct {
	Observer
}

// Registry tracks call sites and writes the records that fire to its logger.
type Registry struct {
	logger   *logrus.Logger
	now      Clock
	observer atomic.Value // observerBox
	sites    sync.Map     // siteKey -> *Site
	pcs      sync.Map     // uintptr -> *Site
}

type Option func(*Registry)

// WithClock replaces SystemClock.
func WithClock(c Clock) Option {
	return func(r *Registry) {
		r.now = c
	}
}

func WithObserver(o Observer) Option {
	return func(r *Registry) {
		r.SetObserver(o)
	}
}

// NewRegistry returns a registry writing to logger, the standard logrus logger when nil.
func NewRegistry(logger *logrus.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	r := &Registry{
		logger: logger,
		now:    SystemClock,
	}
	r.observer.Store(observerBox{})
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Default is used by the package-level policy functions.
var Default = NewRegistry(nil)

// SetObserver replaces the observer, nil removes it.
func (r *Registry) SetObserver(o Observer) {
	r.observer.Store(observerBox{o})
}

// Logger returns the logger records are written to.
func (r *Registry) Logger() *logrus.Logger {
	return r.logger
}

// Sites returns a snapshot of every known call site, sorted by location.
func (r *Registry) Sites() []SiteStats {
	stats := []SiteStats{}
	r.sites.Range(func(_, v interface{}) bool {
		stats = append(stats, v.(*Site).Stats())
		return true
	})
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Location != stats[j].Location {
			return stats[i].Location < stats[j].Location
		}
		return stats[i].Kind < stats[j].Kind
	})
	return stats
}

// Reset forgets every call site.
func (r *Registry) Reset() {
	r.pcs.Range(func(k, _ interface{}) bool {
		r.pcs.Delete(k)
		return true
	})
	r.sites.Range(func(k, _ interface{}) bool {
		r.sites.Delete(k)
		return true
	})
}

// callerPC returns the program counter of whoever called the policy function calling callerPC.
//
//go:noinline
func callerPC() uintptr {
	var pcs [1]uintptr
	// runtime.Callers, callerPC, policy function
	if runtime.Callers(3, pcs[:]) == 0 {
		return 0
	}
	return pcs[0]
}

// site maps pc to its Site. Program counters of inlined copies of one call resolve to the same
// source position and share a Site.
func (r *Registry) site(pc uintptr, kind Kind, param int64) *Site {
	if s, ok := r.pcs.Load(pc); ok {
		return s.(*Site)
	}
	key := resolveKey(pc)
	s, ok := r.sites.Load(key)
	if !ok {
		s, _ = r.sites.LoadOrStore(key, newSite(key, kind, param))
	}
	r.pcs.Store(pc, s)
	return s.(*Site)
}

func (r *Registry) emit(s *Site, fire bool, count int64) Emitter {
	if box := r.observer.Load().(observerBox); box.Observer != nil {
		box.Observe(s.kind, fire)
	}
	if !fire {
		return Emitter{}
	}
	s.emitted.Add(1)
	return Emitter{entry: r.logger.WithFields(logrus.Fields{
		callerKey:      s.location,
		OccurrencesKey: count,
	})}
}

func (r *Registry) when(pc uintptr, cond bool) Emitter {
	s := r.site(pc, KindIf, 0)
	fire, count := s.when(cond)
	return r.emit(s, fire, count)
}

func (r *Registry) everyN(pc uintptr, n int) Emitter {
	s := r.site(pc, KindEveryN, int64(n))
	fire, count := s.everyN(n)
	return r.emit(s, fire, count)
}

func (r *Registry) firstN(pc uintptr, n int) Emitter {
	s := r.site(pc, KindFirstN, int64(n))
	fire, count := s.firstN(n)
	return r.emit(s, fire, count)
}

func (r *Registry) everyT(pc uintptr, interval time.Duration) Emitter {
	s := r.site(pc, KindEveryT, int64(interval))
	fire, count := s.everyT(r.now(), interval)
	return r.emit(s, fire, count)
}

func (r *Registry) ifEveryN(pc uintptr, cond bool, n int) Emitter {
	s := r.site(pc, KindIfEveryN, int64(n))
	if !cond {
		return Emitter{}
	}
	fire, count := s.everyN(n)
	return r.emit(s, fire, count)
}

// If fires when cond is true.
//
//go:noinline
func (r *Registry) If(cond bool) Emitter {
	return r.when(callerPC(), cond)
}

// EveryN fires on the 1st, (n+1)th, (2n+1)th ... occurrence of the call site.
//
//go:noinline
func (r *Registry) EveryN(n int) Emitter {
	return r.everyN(callerPC(), n)
}

// FirstN fires on the first n occurrences of the call site.
//
//go:noinline
func (r *Registry) FirstN(n int) Emitter {
	return r.firstN(callerPC(), n)
}

// EveryT fires at most once per interval. The first occurrence always fires.
//
//go:noinline
func (r *Registry) EveryT(interval time.Duration) Emitter {
	return r.everyT(callerPC(), interval)
}

// IfEveryN counts only the occurrences where cond holds and fires on every nth of those.
//
//go:noinline
func (r *Registry) IfEveryN(cond bool, n int) Emitter {
	return r.ifEveryN(callerPC(), cond, n)
}

//go:noinline
func If(cond bool) Emitter {
	return Default.when(callerPC(), cond)
}

//go:noinline
func EveryN(n int) Emitter {
	return Default.everyN(callerPC(), n)
}

//go:noinline
func FirstN(n int) Emitter {
	return Default.firstN(callerPC(), n)
}

//go:noinline
func EveryT(interval time.Duration) Emitter {
	return Default.everyT(callerPC(), interval)
}

//go:noinline
func IfEveryN(cond bool, n int) Emitter {
	return Default.ifEveryN(callerPC(), cond, n)
}

// Sites returns a snapshot of the Default registry's call sites.
func Sites() []SiteStats {
	return Default.Sites()
}
