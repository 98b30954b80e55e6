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

package autosave

import (
	"sync"
	"testing"
	"time"

	"github.com/protonote/protonote/pkg/assert"
)

// recordingSaver records every write for inspection
type recordingSaver struct {
	mu     sync.Mutex
	writes []string
	fail   bool
}

func (s *recordingSaver) Write(title, content string, lastEditTime, createdAtTime int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fail {
		return false
	}

	s.writes = append(s.writes, content)
	return true
}

func (s *recordingSaver) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.writes)
}

func (s *recordingSaver) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.writes) == 0 {
		return ""
	}
	return s.writes[len(s.writes)-1]
}

const testWindow = 20 * time.Millisecond

// waitForFlush sleeps long enough for a pending debounce flush to fire
func waitForFlush() {
	time.Sleep(testWindow * 5)
}

func TestDebounceCoalescesBursts(t *testing.T) {
	saver := &recordingSaver{}
	c := New(saver, testWindow)

	c.Load("note", "v0")
	c.Update("v0")

	// a burst of keystrokes within the window
	c.Update("v1")
	c.Update("v12")
	c.Update("v123")

	waitForFlush()

	assert.Equal(t, saver.count(), 1, "burst should coalesce into one write")
	assert.Equal(t, saver.last(), "v123", "only the newest content should be written")
}

func TestDebounceSkipsUnchangedContent(t *testing.T) {
	saver := &recordingSaver{}
	c := New(saver, testWindow)

	c.Load("note", "v0")
	c.Update("v0")

	c.Update("v1")
	waitForFlush()

	// the editor re-announcing identical content schedules nothing
	c.Update("v1")
	waitForFlush()

	assert.Equal(t, saver.count(), 1, "identical content should not be re-written")
}

func TestInitialLoadNotSaved(t *testing.T) {
	saver := &recordingSaver{}
	c := New(saver, testWindow)

	c.Load("note", "loaded content")
	c.Update("loaded content")

	waitForFlush()

	assert.Equal(t, saver.count(), 0, "loading a note should not trigger a save")
}

func TestSaveNowFlushesImmediately(t *testing.T) {
	saver := &recordingSaver{}
	c := New(saver, testWindow)

	c.Load("note", "v0")
	c.Update("v0")
	c.Update("v1")

	ok := c.SaveNow()
	assert.Equal(t, ok, true, "manual save failed")
	assert.Equal(t, saver.count(), 1, "manual save should flush without waiting")
	assert.Equal(t, saver.last(), "v1", "flushed content mismatch")

	// the pending debounce timer must not produce a second write
	waitForFlush()
	assert.Equal(t, saver.count(), 1, "debounce timer should have been cancelled")
}

func TestSaveNowDeduplicates(t *testing.T) {
	saver := &recordingSaver{}
	c := New(saver, testWindow)

	c.Load("note", "v0")
	c.Update("v0")
	c.Update("v1")

	ok := c.SaveNow()
	assert.Equal(t, ok, true, "first manual save failed")

	ok = c.SaveNow()
	assert.Equal(t, ok, true, "second manual save failed")

	assert.Equal(t, saver.count(), 1, "saving unchanged content should be a no-op")
}

func TestCloseFlushesDirtyBuffer(t *testing.T) {
	saver := &recordingSaver{}
	c := New(saver, testWindow)

	c.Load("note", "v0")
	c.Update("v0")
	c.Update("v1")

	if err := c.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	assert.Equal(t, saver.count(), 1, "close should flush the dirty buffer")
	assert.Equal(t, saver.last(), "v1", "flushed content mismatch")
}

func TestCloseReportsFlushFailure(t *testing.T) {
	saver := &recordingSaver{fail: true}
	c := New(saver, testWindow)

	c.Load("note", "v0")
	c.Update("v0")
	c.Update("v1")

	err := c.Close()
	assert.NotEqual(t, err, nil, "close should surface the flush failure")
}

func TestLoadDropsPendingFlush(t *testing.T) {
	saver := &recordingSaver{}
	c := New(saver, testWindow)

	c.Load("first", "v0")
	c.Update("v0")
	c.Update("v1")

	// switching notes before the window elapses drops the pending flush
	c.Load("second", "other")

	waitForFlush()

	assert.Equal(t, saver.count(), 0, "pending flush should be dropped on load")
}
