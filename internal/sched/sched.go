// Package sched is the cooperative timing abstraction used by the control
// loop: every blocking wait (debounce settle, frame-ready polling) goes
// through a Scheduler so it can be driven by a manual clock in tests.
package sched

import (
	"context"
	"sync"
	"time"
)

type Scheduler interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Real uses the wall clock.
type Real struct{}

func (Real) Now() time.Time        { return time.Now() }
func (Real) Sleep(d time.Duration) { time.Sleep(d) }

// Manual is a virtual clock: Sleep advances Now instantly.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	slept  time.Duration
	sleeps int
	hooks  []func(time.Time)
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Sleep(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.slept += d
	m.sleeps++
	now := m.now
	hooks := append([]func(time.Time){}, m.hooks...)
	m.mu.Unlock()
	for _, h := range hooks {
		h(now)
	}
}

// Advance moves the clock without counting as a sleep.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// OnSleep registers a hook run after every Sleep with the new time.
func (m *Manual) OnSleep(fn func(time.Time)) {
	m.mu.Lock()
	m.hooks = append(m.hooks, fn)
	m.mu.Unlock()
}

// Slept returns the total slept duration and the number of Sleep calls.
func (m *Manual) Slept() (time.Duration, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slept, m.sleeps
}

// PollUntil calls ready until it reports true, sleeping interval between
// attempts. It returns ctx.Err() if ctx ends first.
func PollUntil(ctx context.Context, s Scheduler, interval time.Duration, ready func() bool) error {
	for !ready() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.Sleep(interval)
	}
	return nil
}
