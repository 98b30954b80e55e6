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

package new

import (
	"os"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/infra"
	"github.com/protonote/protonote/pkg/cli/log"
	"github.com/protonote/protonote/pkg/cli/store"
	"github.com/protonote/protonote/pkg/cli/ui"
	"github.com/protonote/protonote/pkg/cli/validate"
	"github.com/spf13/cobra"
)

var contentFlag string

var example = `
 * Open an editor to write content
 protonote new "Shopping List"

 * Skip the editor by providing content directly
 protonote new "Shopping List" -c "eggs, milk"

 * Send stdin content to a note
 echo "eggs, milk" | protonote new "Shopping List"`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new new command
func NewCmd(ctx context.NoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new <title>",
		Short:   "Create a new note",
		Aliases: []string{"n", "add"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&contentFlag, "content", "c", "", "the content for the note")

	return cmd
}

func getContent(ctx context.NoteCtx) (string, error) {
	if contentFlag != "" {
		return contentFlag, nil
	}

	// check for piped content
	fInfo, _ := os.Stdin.Stat()
	if fInfo.Mode()&os.ModeCharDevice == 0 {
		c, err := ui.ReadStdInput()
		if err != nil {
			return "", errors.Wrap(err, "getting piped input")
		}
		return c, nil
	}

	fpath, err := ui.GetTmpContentPath(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting temporary content file path")
	}

	c, err := ui.GetEditorInput(ctx, fpath)
	if err != nil {
		return "", errors.Wrap(err, "getting editor input")
	}

	return c, nil
}

func newRun(ctx context.NoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		title := args[0]
		if err := validate.NoteTitle(title); err != nil {
			return errors.Wrap(err, "invalid title")
		}

		st := store.New(ctx.NotesDir, ctx.Clock)

		if err := st.Create(title); err != nil {
			if err == store.ErrNoteExists {
				return errors.Errorf("note %q already exists", title)
			}
			return errors.Wrap(err, "creating note")
		}

		content, err := getContent(ctx)
		if err != nil {
			return errors.Wrap(err, "getting content")
		}

		if content != "" {
			if ok := st.Write(title, content, 0, 0); !ok {
				return errors.Errorf("writing note %q", title)
			}
		}

		log.Successf("created %s\n", title)

		return nil
	}
}
