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

package ls

import (
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/infra"
	"github.com/protonote/protonote/pkg/cli/output"
	"github.com/protonote/protonote/pkg/cli/store"
	"github.com/spf13/cobra"
)

var example = `
 * List all notes
 protonote ls`

// NewCmd returns a new ls command
func NewCmd(ctx context.NoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"l", "notes"},
		Short:   "List all notes",
		Example: example,
		RunE:    newRun(ctx),
	}

	return cmd
}

func newRun(ctx context.NoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		st := store.New(ctx.NotesDir, ctx.Clock)

		output.NoteList(st.List())

		return nil
	}
}
