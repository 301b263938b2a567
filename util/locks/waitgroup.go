// Package locks provides small concurrency primitives shared by the
// simulation harness.
package locks

import (
	"sync"
	"sync/atomic"
)

// WaitGroup is a counting barrier, like sync.WaitGroup, but its counter can
// be inspected without blocking (Count). The simulation controller uses it
// to join its miner and RX goroutines after signalling termination.
type WaitGroup struct {
	counter  int64
	waitCond *sync.Cond
}

// NewWaitGroup returns a ready-to-use WaitGroup.
func NewWaitGroup() *WaitGroup {
	return &WaitGroup{
		waitCond: sync.NewCond(&sync.Mutex{}),
	}
}

// Add increments the barrier's counter.
func (wg *WaitGroup) Add() {
	atomic.AddInt64(&wg.counter, 1)
}

// Done decrements the barrier's counter and wakes any waiter once it
// reaches zero.
func (wg *WaitGroup) Done() {
	counter := atomic.AddInt64(&wg.counter, -1)
	if counter < 0 {
		panic("negative values for wg.counter are not allowed. This was likely caused by calling Done() before Add()")
	}
	if atomic.LoadInt64(&wg.counter) == 0 {
		wg.waitCond.Broadcast()
	}
}

// Wait blocks until the counter reaches zero.
func (wg *WaitGroup) Wait() {
	wg.waitCond.L.Lock()
	defer wg.waitCond.L.Unlock()
	for atomic.LoadInt64(&wg.counter) != 0 {
		wg.waitCond.Wait()
	}
}

// Count returns the current counter value without blocking.
func (wg *WaitGroup) Count() int64 {
	return atomic.LoadInt64(&wg.counter)
}
