/* Copyright 2025 Protonote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package autosave decides when an in-progress edit buffer is flushed to
// the note store, balancing data-loss risk against excessive disk writes.
// Automatic saves are debounced; a manual save flushes immediately.
package autosave

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/log"
)

// Saver persists note content. *store.Store satisfies it; tests substitute
// a recording implementation.
type Saver interface {
	Write(title, content string, lastEditTime, createdAtTime int64) bool
}

// Controller tracks the edit buffer of one open note. All flushes to the
// note are serialized under a single lock: the debounce timer is always
// cancelled before a new one is scheduled or a manual save runs, so a stale
// fire can never overwrite newer content.
type Controller struct {
	saver  Saver
	window time.Duration

	mu          sync.Mutex
	title       string
	buf         string
	lastSaved   string
	dirty       bool
	initialLoad bool
	timer       *time.Timer
}

// New returns a controller flushing through the given saver after the given
// debounce window
func New(saver Saver, window time.Duration) *Controller {
	return &Controller{saver: saver, window: window}
}

// Load opens a note in the controller. The note's current content seeds the
// last-saved reference, and the one-shot initial-load flag is armed so that
// the first content assignment does not trigger a save. Any pending flush
// for a previously open note is dropped.
func (c *Controller) Load(title, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTimerLocked()

	c.title = title
	c.buf = content
	c.lastSaved = content
	c.dirty = false
	c.initialLoad = true
}

// Update records a content change and restarts the debounce window. The
// first update after Load is the editor echoing the loaded content and is
// never scheduled; content identical to the last flush is a no-op.
func (c *Controller) Update(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buf = content

	if c.initialLoad {
		c.initialLoad = false
		return
	}

	if content == c.lastSaved {
		return
	}

	c.dirty = true

	c.cancelTimerLocked()
	c.timer = time.AfterFunc(c.window, c.onTimer)
}

// onTimer is the debounce flush. State is re-checked under the lock because
// the buffer may have been flushed manually since the timer was scheduled.
func (c *Controller) onTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timer = nil

	if !c.flushLocked() {
		log.Debug("autosave flush for %q failed\n", c.title)
	}
}

// SaveNow flushes the buffer immediately, cancelling any pending debounce
// timer. A buffer identical to the last flush results in no storage write.
func (c *Controller) SaveNow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTimerLocked()
	c.initialLoad = false

	return c.flushLocked()
}

// Close flushes any dirty buffer synchronously before the note context is
// torn down and reports the flush failure to the caller.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTimerLocked()

	if !c.flushLocked() {
		return errors.Errorf("flushing note %q on close", c.title)
	}

	return nil
}

func (c *Controller) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// flushLocked writes the buffer through the saver. Identical content never
// re-invokes the store write.
func (c *Controller) flushLocked() bool {
	if c.title == "" || !c.dirty {
		return true
	}

	if c.buf == c.lastSaved {
		c.dirty = false
		return true
	}

	if ok := c.saver.Write(c.title, c.buf, 0, 0); !ok {
		return false
	}

	c.lastSaved = c.buf
	c.dirty = false

	return true
}
