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
	"github.com/protonote/protonote/pkg/cli/log"
	"github.com/robfig/cron"
)

// BackgroundInterval is the cron spec for periodic background syncs. Runs
// are best-effort; a run that overlaps a manual sync is skipped by the
// in-flight guard.
const BackgroundInterval = "@every 15m"

// RegisterBackground starts the periodic background sync. Failures of
// individual runs are logged at debug level only; they surface to nobody.
func (s *Syncer) RegisterBackground() error {
	if s.cron != nil {
		return errors.New("background sync already registered")
	}

	c := cron.New()
	err := c.AddFunc(BackgroundInterval, func() {
		result := s.Perform()
		log.Debug("background sync finished: %s\n", result)
	})
	if err != nil {
		return errors.Wrap(err, "scheduling background sync")
	}

	c.Start()
	s.cron = c

	log.Debug("background sync registered (%s)\n", BackgroundInterval)

	return nil
}

// UnregisterBackground stops the periodic background sync. Unregistering
// when nothing is registered is a no-op.
func (s *Syncer) UnregisterBackground() {
	if s.cron == nil {
		return
	}

	s.cron.Stop()
	s.cron = nil

	log.Debug("background sync unregistered\n")
}

// BackgroundRegistered reports whether the periodic background sync is running
func (s *Syncer) BackgroundRegistered() bool {
	return s.cron != nil
}
