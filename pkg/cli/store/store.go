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

// Package store provides the file-backed local note store. Each note is a
// pair of files under the notes root, keyed by the sanitized title: a raw
// content file and a JSON metadata file. The content file is the source of
// truth; the metadata file is a derived index and is always written second.
//
// Expected failures (missing root, missing file, write error) degrade to
// boolean or sentinel results instead of errors. Callers must check return
// values.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/consts"
	"github.com/protonote/protonote/pkg/cli/log"
	"github.com/protonote/protonote/pkg/cli/utils"
	"github.com/protonote/protonote/pkg/clock"
)

// MetaSchemaVersion is the current version of the on-disk metadata schema
const MetaSchemaVersion = 1

// MissingContent is the sentinel returned when a note content file is absent
const MissingContent = "Note content not found"

// ErrNoteExists is an error for creating a note whose sanitized key is
// already taken
var ErrNoteExists = errors.New("note already exists")

// NoteInfo is the metadata record for a note. Title is the primary
// identifier across the local and the remote store.
type NoteInfo struct {
	Schema        int    `json:"schema"`
	Title         string `json:"title"`
	LastEditTime  int64  `json:"lastEditTime"`
	CreatedAtTime int64  `json:"createdAtTime"`
}

// Store reads and writes note files under a single root directory. It
// assumes a single process and a single logical writer; callers are
// responsible for serializing writes to the same note.
type Store struct {
	root  string
	clock clock.Clock
}

// New returns a store rooted at the given directory
func New(root string, c clock.Clock) *Store {
	return &Store{root: root, clock: c}
}

// Root returns the notes root directory
func (s *Store) Root() string {
	return s.root
}

// SanitizeTitle converts a display title into the filesystem-safe key used
// for the note's file names. Distinct titles can map to the same key; the
// display title inside the metadata record stays authoritative.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	return strings.ToLower(b.String())
}

func (s *Store) contentPath(title string) string {
	return filepath.Join(s.root, SanitizeTitle(title)+consts.ContentFileSuffix)
}

func (s *Store) metaPath(title string) string {
	return filepath.Join(s.root, SanitizeTitle(title)+consts.MetaFileSuffix)
}

func (s *Store) initRoot() error {
	return utils.EnsureDir(s.root)
}

// readMeta reads and decodes a metadata file. A record written by an
// earlier schema revision without createdAtTime is healed by falling back
// to lastEditTime; the next write persists the current schema.
func readMeta(path string) (NoteInfo, error) {
	var info NoteInfo

	b, err := os.ReadFile(path)
	if err != nil {
		return info, errors.Wrap(err, "reading metadata file")
	}
	if err := json.Unmarshal(b, &info); err != nil {
		return info, errors.Wrap(err, "unmarshalling metadata")
	}

	if info.CreatedAtTime == 0 {
		info.CreatedAtTime = info.LastEditTime
	}

	return info, nil
}

func (s *Store) writeMeta(info NoteInfo) error {
	info.Schema = MetaSchemaVersion

	b, err := json.Marshal(info)
	if err != nil {
		return errors.Wrap(err, "marshalling metadata")
	}

	if err := os.WriteFile(s.metaPath(info.Title), b, 0644); err != nil {
		return errors.Wrap(err, "writing metadata file")
	}

	return nil
}

// List enumerates all notes by reading every metadata record under the
// notes root. It fails soft: a missing root is created lazily and yields an
// empty list, and unreadable records are skipped with a debug log.
func (s *Store) List() []NoteInfo {
	if err := s.initRoot(); err != nil {
		log.Debug("initializing notes root: %v\n", err)
		return nil
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		log.Debug("listing notes root: %v\n", err)
		return nil
	}

	var ret []NoteInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), consts.MetaFileSuffix) {
			continue
		}

		info, err := readMeta(filepath.Join(s.root, entry.Name()))
		if err != nil {
			log.Debug("skipping metadata record %s: %v\n", entry.Name(), err)
			continue
		}

		ret = append(ret, info)
	}

	return ret
}

// Get returns the metadata record for the given title and whether it exists
func (s *Store) Get(title string) (NoteInfo, bool) {
	info, err := readMeta(s.metaPath(title))
	if err != nil {
		return NoteInfo{}, false
	}

	return info, true
}

// ReadContent returns the content blob for the given title. It returns the
// MissingContent sentinel when the content file is absent or unreadable.
func (s *Store) ReadContent(title string) string {
	if err := s.initRoot(); err != nil {
		log.Debug("initializing notes root: %v\n", err)
		return MissingContent
	}

	b, err := os.ReadFile(s.contentPath(title))
	if err != nil {
		log.Debug("reading content for %q: %v\n", title, err)
		return MissingContent
	}

	return string(b)
}

// Write persists the content and the metadata for the given title. The
// metadata write follows a successful content write. A zero lastEditTime
// defaults to the current time. A zero createdAtTime preserves the value
// from the existing metadata record; creation time never moves forward.
func (s *Store) Write(title, content string, lastEditTime, createdAtTime int64) bool {
	if err := s.initRoot(); err != nil {
		log.Debug("initializing notes root: %v\n", err)
		return false
	}

	now := s.clock.Now().UnixMilli()
	if lastEditTime == 0 {
		lastEditTime = now
	}

	existing, hasExisting := s.Get(title)
	if createdAtTime == 0 {
		if hasExisting {
			createdAtTime = existing.CreatedAtTime
		} else {
			createdAtTime = lastEditTime
		}
	}
	if hasExisting && existing.CreatedAtTime < createdAtTime {
		createdAtTime = existing.CreatedAtTime
	}

	if err := os.WriteFile(s.contentPath(title), []byte(content), 0644); err != nil {
		log.Debug("writing content for %q: %v\n", title, err)
		return false
	}

	info := NoteInfo{
		Title:         title,
		LastEditTime:  lastEditTime,
		CreatedAtTime: createdAtTime,
	}
	if err := s.writeMeta(info); err != nil {
		log.Debug("writing metadata for %q: %v\n", title, err)
		return false
	}

	return true
}

// Create initializes an empty note with fresh metadata. It returns
// ErrNoteExists if a metadata record for the sanitized key is already
// present. Note that two distinct titles can sanitize to the same key; such
// a collision surfaces as ErrNoteExists for the second title.
func (s *Store) Create(title string) error {
	if err := s.initRoot(); err != nil {
		return errors.Wrap(err, "initializing notes root")
	}

	ok, err := utils.FileExists(s.metaPath(title))
	if err != nil {
		return errors.Wrap(err, "checking metadata file")
	}
	if ok {
		return ErrNoteExists
	}

	now := s.clock.Now().UnixMilli()
	if ok := s.Write(title, "", now, now); !ok {
		return errors.Errorf("writing note %q", title)
	}

	return nil
}

// Delete removes both the content and the metadata files for the given
// title. Files that are already absent count as success.
func (s *Store) Delete(title string) bool {
	ok := true

	for _, path := range []string{s.contentPath(title), s.metaPath(title)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Debug("removing %s: %v\n", path, err)
			ok = false
		}
	}

	return ok
}
