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

package sync

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/infra"
	"github.com/protonote/protonote/pkg/cli/log"
	"github.com/protonote/protonote/pkg/cli/store"
	"github.com/protonote/protonote/pkg/cli/syncer"
	"github.com/spf13/cobra"
)

var watchFlag bool
var apiEndpointFlag string

var example = `
 * Sync notes with the server
 protonote sync

 * Keep running and sync periodically in the background
 protonote sync --watch`

// NewCmd returns a new sync command
func NewCmd(ctx context.NoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sync",
		Aliases: []string{"s"},
		Short:   "Sync notes with the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.BoolVarP(&watchFlag, "watch", "w", false, "keep running and sync periodically")
	f.StringVar(&apiEndpointFlag, "apiEndpoint", "", "API endpoint to connect to (defaults to value in config)")

	return cmd
}

func runWatch(s *syncer.Syncer) error {
	if err := s.RegisterBackground(); err != nil {
		return errors.Wrap(err, "registering background sync")
	}
	defer s.UnregisterBackground()

	log.Infof("syncing every %s. Press Ctrl-C to stop.\n", syncer.BackgroundInterval)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	return nil
}

func newRun(ctx context.NoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if apiEndpointFlag != "" {
			ctx.APIEndpoint = apiEndpointFlag
		}

		if !ctx.LoggedIn() {
			log.Error("not logged in. Run \"protonote login\" first.\n")
			return nil
		}

		st := store.New(ctx.NotesDir, ctx.Clock)
		s := syncer.New(ctx, st)

		if ok := s.Manual(nil); !ok {
			return errors.New("sync failed")
		}

		if watchFlag {
			return runWatch(s)
		}

		return nil
	}
}
