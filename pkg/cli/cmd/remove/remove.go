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

package remove

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/infra"
	"github.com/protonote/protonote/pkg/cli/log"
	"github.com/protonote/protonote/pkg/cli/store"
	"github.com/protonote/protonote/pkg/cli/ui"
	"github.com/spf13/cobra"
)

var yesFlag bool

var example = `
 * Remove a note
 protonote remove "Shopping List"

 * Skip the confirmation prompt
 protonote remove "Shopping List" -y`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new remove command
func NewCmd(ctx context.NoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <title>",
		Short:   "Remove a note",
		Aliases: []string{"rm", "d", "delete"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.BoolVarP(&yesFlag, "yes", "y", false, "remove without asking for confirmation")

	return cmd
}

func newRun(ctx context.NoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		title := args[0]

		st := store.New(ctx.NotesDir, ctx.Clock)

		if _, ok := st.Get(title); !ok {
			return errors.Errorf("note %q not found", title)
		}

		if !yesFlag {
			ok, err := ui.Confirm(fmt.Sprintf("remove note %q?", title), false)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !ok {
				log.Warnf("aborted by user\n")
				return nil
			}
		}

		if ok := st.Delete(title); !ok {
			return errors.Errorf("removing note %q", title)
		}

		log.Successf("removed %s\n", title)

		return nil
	}
}
