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

package syncer

import (
	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/client"
	"github.com/protonote/protonote/pkg/cli/log"
	"github.com/protonote/protonote/pkg/cli/utils/diff"
)

func buildNoteMap(notes []client.FullNote) map[string]client.FullNote {
	ret := make(map[string]client.FullNote, len(notes))
	for _, note := range notes {
		ret[note.Title] = note
	}

	return ret
}

// mergeTimestamps computes the merged date fields for a note present on both
// sides: the earliest creation wins and the most recent edit wins.
func mergeTimestamps(local, server client.FullNote) (createdAt, lastEdit int64) {
	createdAt = local.CreatedAtTime
	if server.CreatedAtTime < createdAt {
		createdAt = server.CreatedAtTime
	}

	lastEdit = local.LastEditTime
	if server.LastEditTime > lastEdit {
		lastEdit = server.LastEditTime
	}

	return createdAt, lastEdit
}

// reportContentConflict debug-logs the shape of a content divergence when
// both sides changed since the last sync. Note bodies are never logged.
func reportContentConflict(local, server client.FullNote) {
	var insertions, deletions int
	for _, d := range diff.Do(local.Content, server.Content) {
		switch d.Type {
		case diff.DiffInsert:
			insertions++
		case diff.DiffDelete:
			deletions++
		}
	}

	log.Debug("content conflict on %q: %d insertions, %d deletions; server wins\n",
		local.Title, insertions, deletions)
}

// reconcile applies the server's merged note set to the local store. The
// server is authoritative for which notes exist and for content; the client
// merges only the two date fields. Writes and deletes are idempotent, so a
// failed pass converges when sync is re-run.
func (s *Syncer) reconcile(local, server []client.FullNote, lastSyncedAt int64) error {
	localMap := buildNoteMap(local)
	serverMap := buildNoteMap(server)

	for _, serverNote := range server {
		localNote, ok := localMap[serverNote.Title]

		// a note from another device or a first sync: take it verbatim
		if !ok {
			if ok := s.store.Write(serverNote.Title, serverNote.Content, serverNote.LastEditTime, serverNote.CreatedAtTime); !ok {
				return errors.Errorf("writing note %q", serverNote.Title)
			}
			continue
		}

		createdAt, lastEdit := mergeTimestamps(localNote, serverNote)

		if localNote.Content != serverNote.Content &&
			localNote.LastEditTime > lastSyncedAt && serverNote.LastEditTime > lastSyncedAt {
			reportContentConflict(localNote, serverNote)
		}

		if ok := s.store.Write(serverNote.Title, serverNote.Content, lastEdit, createdAt); !ok {
			return errors.Errorf("writing merged note %q", serverNote.Title)
		}
	}

	for title := range localMap {
		if _, ok := serverMap[title]; ok {
			continue
		}

		// missing from the server response after a round-trip means deleted
		if ok := s.store.Delete(title); !ok {
			return errors.Errorf("deleting note %q", title)
		}

		log.Debug("deleted local note %q not present in the server set\n", title)
	}

	return nil
}
