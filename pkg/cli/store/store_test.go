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

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/protonote/protonote/pkg/assert"
	"github.com/protonote/protonote/pkg/clock"
)

func initTestStore(t *testing.T) (*Store, *clock.Mock) {
	c := clock.NewMock()
	c.SetNow(time.UnixMilli(1577836800000))

	return New(t.TempDir(), c), c
}

func TestSanitizeTitle(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Shopping List", "shopping_list"},
		{"shopping_list", "shopping_list"},
		{"Meeting 2020-01-01", "meeting_2020_01_01"},
		{"über note", "_ber_note"},
		{"", ""},
		{"!!!", "___"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := SanitizeTitle(tc.input)
			assert.Equal(t, got, tc.expected, "sanitized key mismatch")
		})
	}
}

func TestWriteGet(t *testing.T) {
	s, _ := initTestStore(t)

	ok := s.Write("Shopping List", "eggs, milk", 1000, 500)
	assert.Equal(t, ok, true, "write failed")

	info, found := s.Get("Shopping List")
	assert.Equal(t, found, true, "note not found")
	assert.DeepEqual(t, info, NoteInfo{
		Schema:        MetaSchemaVersion,
		Title:         "Shopping List",
		LastEditTime:  1000,
		CreatedAtTime: 500,
	}, "metadata mismatch")

	content := s.ReadContent("Shopping List")
	assert.Equal(t, content, "eggs, milk", "content mismatch")
}

func TestWriteDefaultsTimestamps(t *testing.T) {
	s, c := initTestStore(t)

	now := c.Now().UnixMilli()

	ok := s.Write("note", "content", 0, 0)
	assert.Equal(t, ok, true, "write failed")

	info, found := s.Get("note")
	assert.Equal(t, found, true, "note not found")
	assert.Equal(t, info.LastEditTime, now, "last edit time should default to now")
	assert.Equal(t, info.CreatedAtTime, now, "created at time should default to last edit time")
}

func TestWritePreservesCreatedAt(t *testing.T) {
	s, c := initTestStore(t)

	ok := s.Write("note", "v1", 1000, 500)
	assert.Equal(t, ok, true, "first write failed")

	c.Advance(time.Hour)

	ok = s.Write("note", "v2", 0, 0)
	assert.Equal(t, ok, true, "second write failed")

	info, found := s.Get("note")
	assert.Equal(t, found, true, "note not found")
	assert.Equal(t, info.CreatedAtTime, int64(500), "creation time should survive rewrites")
	assert.Equal(t, info.LastEditTime, c.Now().UnixMilli(), "last edit time should move forward")
}

func TestWriteNeverAdvancesCreatedAt(t *testing.T) {
	s, _ := initTestStore(t)

	ok := s.Write("note", "v1", 1000, 500)
	assert.Equal(t, ok, true, "first write failed")

	// a later createdAt must lose to the existing one
	ok = s.Write("note", "v2", 2000, 1500)
	assert.Equal(t, ok, true, "second write failed")

	info, _ := s.Get("note")
	assert.Equal(t, info.CreatedAtTime, int64(500), "creation time moved forward")
}

func TestReadContentMissing(t *testing.T) {
	s, _ := initTestStore(t)

	got := s.ReadContent("no such note")
	assert.Equal(t, got, MissingContent, "expected the missing content sentinel")
}

func TestListEmptyRoot(t *testing.T) {
	c := clock.NewMock()
	s := New(filepath.Join(t.TempDir(), "does-not-exist-yet"), c)

	got := s.List()
	assert.Equal(t, len(got), 0, "expected an empty list")

	// the root should have been created lazily
	if _, err := os.Stat(s.Root()); err != nil {
		t.Fatalf("notes root was not created: %v", err)
	}
}

func TestListSkipsCorruptRecords(t *testing.T) {
	s, _ := initTestStore(t)

	ok := s.Write("good", "content", 1000, 1000)
	assert.Equal(t, ok, true, "write failed")

	badPath := filepath.Join(s.Root(), "bad.meta.json")
	if err := os.WriteFile(badPath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing corrupt record: %v", err)
	}

	got := s.List()
	assert.Equal(t, len(got), 1, "corrupt record should be skipped")
	assert.Equal(t, got[0].Title, "good", "surviving record mismatch")
}

func TestReadMetaHealsMissingCreatedAt(t *testing.T) {
	s, _ := initTestStore(t)

	// a record written before createdAtTime existed
	legacy := map[string]interface{}{
		"schema":       1,
		"title":        "old note",
		"lastEditTime": 1234,
	}
	b, err := json.Marshal(legacy)
	if err != nil {
		t.Fatalf("marshalling legacy record: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.Root(), "old_note.meta.json"), b, 0644); err != nil {
		t.Fatalf("writing legacy record: %v", err)
	}

	info, found := s.Get("old note")
	assert.Equal(t, found, true, "note not found")
	assert.Equal(t, info.CreatedAtTime, int64(1234), "created at should fall back to last edit time")
}

func TestCreate(t *testing.T) {
	s, c := initTestStore(t)

	if err := s.Create("note"); err != nil {
		t.Fatalf("creating note: %v", err)
	}

	info, found := s.Get("note")
	assert.Equal(t, found, true, "note not found")
	assert.Equal(t, info.LastEditTime, c.Now().UnixMilli(), "last edit time mismatch")
	assert.Equal(t, info.CreatedAtTime, c.Now().UnixMilli(), "created at time mismatch")
	assert.Equal(t, s.ReadContent("note"), "", "content should be empty")

	err := s.Create("note")
	assert.Equal(t, err, ErrNoteExists, "expected ErrNoteExists")
}

func TestCreateCollidingKeys(t *testing.T) {
	s, _ := initTestStore(t)

	if err := s.Create("My Note"); err != nil {
		t.Fatalf("creating note: %v", err)
	}

	// a distinct title sharing the same sanitized key
	err := s.Create("my note")
	assert.Equal(t, err, ErrNoteExists, "expected ErrNoteExists on key collision")
}

func TestDelete(t *testing.T) {
	s, _ := initTestStore(t)

	ok := s.Write("note", "content", 1000, 1000)
	assert.Equal(t, ok, true, "write failed")

	ok = s.Delete("note")
	assert.Equal(t, ok, true, "delete failed")

	_, found := s.Get("note")
	assert.Equal(t, found, false, "note should be gone")
	assert.Equal(t, s.ReadContent("note"), MissingContent, "content should be gone")

	// deleting again is a no-op
	ok = s.Delete("note")
	assert.Equal(t, ok, true, "repeated delete should succeed")
}
