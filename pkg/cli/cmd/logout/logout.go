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

package logout

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/client"
	"github.com/protonote/protonote/pkg/cli/consts"
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/database"
	"github.com/protonote/protonote/pkg/cli/infra"
	"github.com/protonote/protonote/pkg/cli/log"
	"github.com/spf13/cobra"
)

// ErrNotLoggedIn is an error for logging out when not logged in
var ErrNotLoggedIn = errors.New("not logged in")

// signoutTimeout bounds the server-side signout call so a dead server
// cannot block clearing the local session
const signoutTimeout = 5 * time.Second

var example = `
  protonote logout`

var apiEndpointFlag string

// NewCmd returns a new logout command
func NewCmd(ctx context.NoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "logout",
		Short:   "Logout from the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVar(&apiEndpointFlag, "apiEndpoint", "", "API endpoint to connect to (defaults to value in config)")

	return cmd
}

// Do performs logout. The server-side signout is best-effort; the local
// session is cleared regardless.
func Do(ctx context.NoteCtx) error {
	if !ctx.LoggedIn() {
		return ErrNotLoggedIn
	}

	ctx.HTTPClient = &http.Client{Timeout: signoutTimeout}
	if err := client.Signout(ctx); err != nil {
		log.Debug("requesting signout: %v\n", err)
	}

	db := ctx.DB
	if err := database.DeleteSystem(db, consts.SystemSessionUsername); err != nil {
		return errors.Wrap(err, "deleting session username")
	}
	if err := database.DeleteSystem(db, consts.SystemSessionKey); err != nil {
		return errors.Wrap(err, "deleting session key")
	}
	if err := database.DeleteSystem(db, consts.SystemSessionKeyExpiry); err != nil {
		return errors.Wrap(err, "deleting session key expiry")
	}

	return nil
}

func newRun(ctx context.NoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if apiEndpointFlag != "" {
			ctx.APIEndpoint = apiEndpointFlag
		}

		err := Do(ctx)
		if err == ErrNotLoggedIn {
			log.Error("not logged in\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "logging out")
		}

		log.Success("logged out\n")

		return nil
	}
}
