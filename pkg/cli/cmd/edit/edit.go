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

package edit

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/autosave"
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/infra"
	"github.com/protonote/protonote/pkg/cli/log"
	"github.com/protonote/protonote/pkg/cli/store"
	"github.com/protonote/protonote/pkg/cli/ui"
	"github.com/protonote/protonote/pkg/cli/validate"
	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
)

// watchPollInterval is how often the temporary content file is polled for
// changes while the editor is open
const watchPollInterval = 100 * time.Millisecond

var contentFlag string

var example = `
 * Edit a note in an editor. Changes are saved automatically as you write.
 protonote edit "Shopping List"

 * Edit a note without launching an editor
 protonote edit "Shopping List" -c "eggs, milk, bread"
`

func preRun(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("Incorrect number of argument")
	}

	return nil
}

// NewCmd returns a new edit command
func NewCmd(ctx context.NoteCtx) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit <title>",
		Short:   "Edit a note",
		Aliases: []string{"e"},
		Example: example,
		PreRunE: preRun,
		RunE:    newRun(ctx),
	}

	f := cmd.Flags()
	f.StringVarP(&contentFlag, "content", "c", "", "a new content for the note")

	return cmd
}

// watchContent feeds every change of the file at fpath into the autosave
// controller until the watcher is closed
func watchContent(w *watcher.Watcher, fpath string, ctrl *autosave.Controller) {
	for {
		select {
		case <-w.Event:
			b, err := os.ReadFile(fpath)
			if err != nil {
				log.Debug("reading watched file: %v\n", err)
				continue
			}
			ctrl.Update(string(b))
		case err := <-w.Error:
			log.Debug("watching %s: %v\n", fpath, err)
		case <-w.Closed:
			return
		}
	}
}

func runEditor(ctx context.NoteCtx, st *store.Store, title, content string) error {
	fpath, err := ui.GetTmpContentPath(ctx)
	if err != nil {
		return errors.Wrap(err, "getting temporary content file path")
	}
	if err := ui.WriteTmpContent(fpath, content); err != nil {
		return errors.Wrap(err, "seeding temporary content file")
	}

	ctrl := autosave.New(st, ctx.AutosaveWindow)
	ctrl.Load(title, content)
	ctrl.Update(content)

	w := watcher.New()
	w.FilterOps(watcher.Write)
	if err := w.Add(fpath); err != nil {
		return errors.Wrapf(err, "watching %s", fpath)
	}

	go watchContent(w, fpath, ctrl)
	go func() {
		if err := w.Start(watchPollInterval); err != nil {
			log.Debug("starting watcher: %v\n", err)
		}
	}()

	editorErr := ui.RunEditor(ctx, fpath)

	w.Close()

	if editorErr != nil {
		// flush whatever was autosaved before the editor died
		if err := ctrl.Close(); err != nil {
			log.Debug("flushing autosave: %v\n", err)
		}
		return errors.Wrap(editorErr, "running editor")
	}

	b, err := os.ReadFile(fpath)
	if err != nil {
		return errors.Wrap(err, "reading edited content")
	}
	ctrl.Update(string(b))

	if err := ctrl.Close(); err != nil {
		return errors.Wrap(err, "saving edited content")
	}

	if err := os.Remove(fpath); err != nil {
		return errors.Wrap(err, "removing the temporary content file")
	}

	return nil
}

func newRun(ctx context.NoteCtx) infra.RunEFunc {
	return func(cmd *cobra.Command, args []string) error {
		title := args[0]
		if err := validate.NoteTitle(title); err != nil {
			return errors.Wrap(err, "invalid title")
		}

		st := store.New(ctx.NotesDir, ctx.Clock)

		if _, ok := st.Get(title); !ok {
			return errors.Errorf("note %q not found. Run \"protonote new\" to create it", title)
		}

		if contentFlag != "" {
			if ok := st.Write(title, contentFlag, 0, 0); !ok {
				return errors.Errorf("writing note %q", title)
			}

			log.Successf("edited %s\n", title)
			return nil
		}

		content := st.ReadContent(title)
		if content == store.MissingContent {
			content = ""
		}

		if err := runEditor(ctx, st, title, content); err != nil {
			return err
		}

		log.Successf("edited %s\n", title)

		return nil
	}
}
