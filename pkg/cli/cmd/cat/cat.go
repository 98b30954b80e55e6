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

package cat

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/infra"
	"github.com/protonote/protonote/pkg/cli/output"
	"github.com/protonote/protonote/pkg/cli/store"
	"github.com/spf13/cobra"
)

var contentOnlyFlag bool

var example = `
 * See the note titled 'Shopping List'
 protonote cat "Shopping List"

 * Print the content only, e.g. for piping
 protonote cat "Shopping List" --content-only`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of arguments")
	}

	return nil
}

// NewCmd returns a new cat command
func NewCmd(ctx context.NoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cat <title>",
		Aliases: []string{"c", "view"},
		Short:   "See a note",
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.BoolVar(&contentOnlyFlag, "content-only", false, "print the note content only")

	return cmd
}

func newRun(ctx context.NoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		title := args[0]

		st := store.New(ctx.NotesDir, ctx.Clock)

		info, ok := st.Get(title)
		if !ok {
			return errors.Errorf("note %q not found", title)
		}

		content := st.ReadContent(title)

		if contentOnlyFlag {
			fmt.Print(content)
			return nil
		}

		output.NoteContent(info, content)

		return nil
	}
}
