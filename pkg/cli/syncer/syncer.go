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

// Package syncer drives the sync round-trip with the server: it uploads the
// full local note snapshot, applies the server's merged set to the local
// store, and keeps the sync bookkeeping in the system table.
package syncer

import (
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/client"
	"github.com/protonote/protonote/pkg/cli/consts"
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/database"
	"github.com/protonote/protonote/pkg/cli/log"
	"github.com/protonote/protonote/pkg/cli/store"
	"github.com/protonote/protonote/pkg/cli/utils"
	"github.com/robfig/cron"
)

// Result is the tri-state outcome of a sync attempt
type Result int

const (
	// ResultFailed means the attempt failed on a network, server, or parse error
	ResultFailed Result = iota
	// ResultNoData means there was nothing to do, e.g. no user session
	ResultNoData
	// ResultNewData means the round-trip succeeded and local state was reconciled
	ResultNewData
)

func (r Result) String() string {
	switch r {
	case ResultNewData:
		return "new data"
	case ResultNoData:
		return "no data"
	default:
		return "failed"
	}
}

// Syncer coordinates sync round-trips. A single Syncer prevents overlapping
// attempts; the local store itself is lock-free and relies on this guard.
type Syncer struct {
	ctx     context.NoteCtx
	store   *store.Store
	running atomic.Bool
	cron    *cron.Cron
}

// New returns a syncer operating on the given store
func New(ctx context.NoteCtx, st *store.Store) *Syncer {
	return &Syncer{ctx: ctx, store: st}
}

func getLastSyncedAt(db *database.DB) (int64, error) {
	var ret int64

	err := database.GetSystem(db, consts.SystemLastSyncedAt, &ret)
	if err == database.ErrSystemKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "querying last synced time")
	}

	return ret, nil
}

func saveLastSyncedAt(db *database.DB, val int64) error {
	if err := database.UpdateSystem(db, consts.SystemLastSyncedAt, val); err != nil {
		return errors.Wrapf(err, "updating %s", consts.SystemLastSyncedAt)
	}

	return nil
}

// deviceID returns the stable per-installation identifier, generating and
// persisting one on first use.
func deviceID(db *database.DB) (string, error) {
	var ret string

	err := database.GetSystem(db, consts.SystemDeviceID, &ret)
	if err == nil {
		return ret, nil
	}
	if err != database.ErrSystemKeyNotFound {
		return "", errors.Wrap(err, "querying device id")
	}

	ret, err = utils.GenerateUUID()
	if err != nil {
		return "", errors.Wrap(err, "generating device id")
	}
	if err := database.InsertSystem(db, consts.SystemDeviceID, ret); err != nil {
		return "", errors.Wrap(err, "persisting device id")
	}

	log.Debug("generated device id %s\n", ret)

	return ret, nil
}

// snapshot assembles the full local note set as of now. A note deleted
// locally is picked up by simply not being part of the snapshot.
func (s *Syncer) snapshot() []client.FullNote {
	infos := s.store.List()

	notes := make([]client.FullNote, 0, len(infos))
	for _, info := range infos {
		notes = append(notes, client.FullNote{
			Title:         info.Title,
			Content:       s.store.ReadContent(info.Title),
			LastEditTime:  info.LastEditTime,
			CreatedAtTime: info.CreatedAtTime,
		})
	}

	return notes
}

// Perform runs one sync round-trip. It returns ResultNoData without any
// network call when there is no authenticated session or when another
// attempt is already in flight.
func (s *Syncer) Perform() Result {
	if !s.running.CompareAndSwap(false, true) {
		log.Debug("sync already in progress; skipping\n")
		return ResultNoData
	}
	defer s.running.Store(false)

	if !s.ctx.LoggedIn() {
		log.Debug("no user session; skipping sync\n")
		return ResultNoData
	}

	db := s.ctx.DB

	id, err := deviceID(db)
	if err != nil {
		log.Debug("resolving device id: %v\n", err)
		return ResultFailed
	}

	lastSyncedAt, err := getLastSyncedAt(db)
	if err != nil {
		log.Debug("reading last synced time: %v\n", err)
		return ResultFailed
	}

	local := s.snapshot()

	log.Debug("uploading %d notes (device %s, last synced at %d)\n", len(local), id, lastSyncedAt)

	resp, err := client.Sync(s.ctx, client.SyncPayload{
		Username: s.ctx.SessionUsername,
		DeviceID: id,
		Notes:    local,
	})
	if err != nil {
		log.Debug("syncing with the server: %v\n", err)
		return ResultFailed
	}

	if err := saveLastSyncedAt(db, resp.LastSyncedTime); err != nil {
		log.Debug("saving sync state: %v\n", err)
		return ResultFailed
	}

	if err := s.reconcile(local, resp.Notes, lastSyncedAt); err != nil {
		log.Debug("reconciling with the server note set: %v\n", err)
		return ResultFailed
	}

	return ResultNewData
}

// Manual runs a sync and surfaces a human-readable outcome. It returns true
// unless the attempt failed. The optional callback receives the result after
// the outcome has been reported.
func (s *Syncer) Manual(onComplete func(Result)) bool {
	result := s.Perform()

	switch result {
	case ResultNewData:
		log.Success("your notes have been synced with the server\n")
	case ResultNoData:
		log.Plain("nothing to sync\n")
	default:
		log.Error("there was a problem syncing your notes. Please try again later.\n")
	}

	if onComplete != nil {
		onComplete(result)
	}

	return result != ResultFailed
}
