// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ratelog

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Site is the state of a single call site.
type Site struct {
	location string
	kind     Kind

	param       atomic.Int64 // N, or the interval in nanoseconds
	occurrences atomic.Int64
	emitted     atomic.Int64

	// every-T only
	mu       sync.Mutex
	limiter  *rate.Limiter
	lastFire time.Time
}

// siteKey is the logical source position of a policy call. Inlined copies of one call share it.
type siteKey struct {
	function string
	file     string
	line     int
}

func resolveKey(pc uintptr) siteKey {
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return siteKey{function: frame.Function, file: frame.File, line: frame.Line}
}

func (k siteKey) location() string {
	if k.file == "" {
		return "???:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(k.file), k.line)
}

// SiteStats is a point-in-time view of a Site.
type SiteStats struct {
	Location    string `json:"location"`
	Kind        Kind   `json:"kind"`
	Param       string `json:"param,omitempty"`
	Occurrences int64  `json:"occurrences"`
	Emitted     int64  `json:"emitted"`
	Suppressed  int64  `json:"suppressed"`
}

func newSite(key siteKey, kind Kind, param int64) *Site {
	s := &Site{
		location: key.location(),
		kind:     kind,
	}
	s.param.Store(param)
	if kind == KindEveryT {
		s.limiter = rate.NewLimiter(rate.Every(time.Duration(param)), 1)
	}
	return s
}

// Location returns the call site as file:line.
func (s *Site) Location() string {
	return s.location
}

func (s *Site) Kind() Kind {
	return s.kind
}

// everyN fires on occurrences 1, n+1, 2n+1, ...
func (s *Site) everyN(n int) (bool, int64) {
	s.param.Store(int64(n))
	count := s.occurrences.Add(1)
	return n <= 1 || (count-1)%int64(n) == 0, count
}

func (s *Site) firstN(n int) (bool, int64) {
	s.param.Store(int64(n))
	count := s.occurrences.Add(1)
	return count <= int64(n), count
}

// everyT fires when at least interval has passed since the site last fired.
func (s *Site) everyT(now time.Time, interval time.Duration) (bool, int64) {
	count := s.occurrences.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if limit := rate.Every(interval); s.limiter.Limit() != limit {
		// the new interval runs from the last record
		s.limiter = rate.NewLimiter(limit, 1)
		if !s.lastFire.IsZero() {
			s.limiter.AllowN(s.lastFire, 1)
		}
		s.param.Store(int64(interval))
	}
	fire := s.limiter.AllowN(now, 1)
	if fire {
		s.lastFire = now
	}
	return fire, count
}

func (s *Site) when(cond bool) (bool, int64) {
	return cond, s.occurrences.Add(1)
}

// Stats returns a snapshot of the site's counters.
func (s *Site) Stats() SiteStats {
	// emitted first, it never runs ahead of occurrences
	emitted := s.emitted.Load()
	occurrences := s.occurrences.Load()
	stats := SiteStats{
		Location:    s.location,
		Kind:        s.kind,
		Occurrences: occurrences,
		Emitted:     emitted,
		Suppressed:  occurrences - emitted,
	}
	switch s.kind {
	case KindEveryN, KindFirstN, KindIfEveryN:
		stats.Param = strconv.FormatInt(s.param.Load(), 10)
	case KindEveryT:
		stats.Param = time.Duration(s.param.Load()).String()
	}
	return stats
}
