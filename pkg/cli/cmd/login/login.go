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

package login

import (
	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/client"
	"github.com/protonote/protonote/pkg/cli/consts"
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/database"
	"github.com/protonote/protonote/pkg/cli/infra"
	"github.com/protonote/protonote/pkg/cli/log"
	"github.com/protonote/protonote/pkg/cli/ui"
	"github.com/spf13/cobra"
)

var example = `
  protonote login`

var apiEndpointFlag string

// NewCmd returns a new login command
func NewCmd(ctx context.NoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Login to the server",
		Example: example,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVar(&apiEndpointFlag, "apiEndpoint", "", "API endpoint to connect to (defaults to value in config)")

	return cmd
}

// Do signs in the user with the given credentials and persists the session
func Do(ctx context.NoteCtx, email, password string) error {
	resp, err := client.Signin(ctx, email, password)
	if err != nil {
		return errors.Wrap(err, "requesting session")
	}
	if resp.Key == "" {
		return errors.New("login failed")
	}

	db := ctx.DB
	if err := database.UpdateSystem(db, consts.SystemSessionUsername, email); err != nil {
		return errors.Wrap(err, "saving session username")
	}
	if err := database.UpdateSystem(db, consts.SystemSessionKey, resp.Key); err != nil {
		return errors.Wrap(err, "saving session key")
	}
	if err := database.UpdateSystem(db, consts.SystemSessionKeyExpiry, resp.ExpiresAt); err != nil {
		return errors.Wrap(err, "saving session key expiry")
	}

	return nil
}

func newRun(ctx context.NoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		if apiEndpointFlag != "" {
			ctx.APIEndpoint = apiEndpointFlag
		}

		var email, password string
		if err := ui.PromptInput("email", &email); err != nil {
			return errors.Wrap(err, "getting email input")
		}
		if email == "" {
			return errors.New("Email is empty")
		}

		if err := ui.PromptPassword("password", &password); err != nil {
			return errors.Wrap(err, "getting password input")
		}
		if password == "" {
			return errors.New("Password is empty")
		}

		err := Do(ctx, email, password)
		if errors.Cause(err) == client.ErrInvalidLogin {
			log.Error("wrong credentials\n")
			return nil
		} else if err != nil {
			return errors.Wrap(err, "logging in")
		}

		log.Success("logged in\n")

		return nil
	}
}
