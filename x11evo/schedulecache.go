// Copyright (c) 2024 The revolverd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package x11evo

import (
	"sync"
	"sync/atomic"
)

// ScheduleCache memoizes schedules by day index.  Schedules are a pure
// function of the day index so entries are never evicted or invalidated.
//
// It is safe for concurrent access.  Concurrent misses for the same day
// may both compute the schedule; the first stored value wins and both
// values are identical anyway.
type ScheduleCache struct {
	schedules sync.Map // uint64 -> Schedule
	entries   atomic.Int64
}

// NewScheduleCache returns an empty schedule cache.
func NewScheduleCache() *ScheduleCache {
	return &ScheduleCache{}
}

// Get returns the schedule for the passed day index, computing and storing
// it on a miss.
func (c *ScheduleCache) Get(day uint64) Schedule {
	day %= NumSchedules
	if s, ok := c.schedules.Load(day); ok {
		return s.(Schedule)
	}

	s, loaded := c.schedules.LoadOrStore(day, ScheduleForDay(day))
	if !loaded {
		c.entries.Add(1)
		log.Debugf("Cached schedule for day %d: %v", day, s)
	}
	return s.(Schedule)
}

// ForTime returns the schedule for the passed header timestamp.
func (c *ScheduleCache) ForTime(timestamp int64) Schedule {
	return c.Get(DayIndex(timestamp))
}

// Len returns the number of cached schedules.
func (c *ScheduleCache) Len() int {
	return int(c.entries.Load())
}

// schedules is the cache shared by the package level hashers.
var schedules = NewScheduleCache()
