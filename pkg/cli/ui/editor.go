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

// Package ui provides the user interface for the program
package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/consts"
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/utils"
)

// GetTmpContentPath returns the path to the temporary file containing
// content being edited
func GetTmpContentPath(ctx context.NoteCtx) (string, error) {
	for i := 0; ; i++ {
		filename := fmt.Sprintf("%s_%d.%s", consts.TmpContentFileBase, i, consts.TmpContentFileExt)
		candidate := fmt.Sprintf("%s/%s", ctx.Paths.Cache, filename)

		ok, err := utils.FileExists(candidate)
		if err != nil {
			return "", errors.Wrapf(err, "checking if file exists at %s", candidate)
		}
		if !ok {
			return candidate, nil
		}
	}
}

// GetDefaultEditor returns the system's editor command with appropriate
// flags, if necessary, to make the command wait until editor is closed to exit.
func GetDefaultEditor() string {
	editor := os.Getenv("EDITOR")

	var ret string

	switch editor {
	case "atom":
		ret = "atom -w"
	case "subl":
		ret = "subl -n -w"
	case "mate":
		ret = "mate -w"
	case "vim":
		ret = "vim"
	case "nano":
		ret = "nano"
	case "emacs":
		ret = "emacs"
	case "nvim":
		ret = "nvim"
	default:
		ret = "vi"
	}

	return ret
}

func newEditorCmd(ctx context.NoteCtx, fpath string) *exec.Cmd {
	args := strings.Fields(ctx.Editor)
	args = append(args, fpath)

	return exec.Command(args[0], args[1:]...)
}

// RunEditor launches the editor on the given file and blocks until the
// editor exits. The file is left in place for the caller to read.
func RunEditor(ctx context.NoteCtx, fpath string) error {
	cmd := newEditorCmd(ctx, fpath)

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "launching an editor")
	}
	if err := cmd.Wait(); err != nil {
		return errors.Wrap(err, "waiting for the editor")
	}

	return nil
}

// WriteTmpContent seeds the temporary content file, creating it if needed
func WriteTmpContent(fpath, content string) error {
	if err := os.WriteFile(fpath, []byte(content), 0644); err != nil {
		return errors.Wrap(err, "writing the temporary content file")
	}

	return nil
}

// GetEditorInput gets the user input by launching a text editor and waiting
// for it to exit. The temporary file is removed after it is read.
func GetEditorInput(ctx context.NoteCtx, fpath string) (string, error) {
	ok, err := utils.FileExists(fpath)
	if err != nil {
		return "", errors.Wrapf(err, "checking if the file exists at %s", fpath)
	}
	if !ok {
		if err := WriteTmpContent(fpath, ""); err != nil {
			return "", errors.Wrap(err, "creating a temporary content file")
		}
	}

	if err := RunEditor(ctx, fpath); err != nil {
		return "", err
	}

	b, err := os.ReadFile(fpath)
	if err != nil {
		return "", errors.Wrap(err, "reading the temporary content file")
	}
	if err := os.Remove(fpath); err != nil {
		return "", errors.Wrap(err, "removing the temporary content file")
	}

	return string(b), nil
}
