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

package context

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/consts"
	"github.com/protonote/protonote/pkg/cli/database"
	"github.com/protonote/protonote/pkg/clock"
)

// getDefaultTestPaths creates test paths with every base pointing to a temp
// directory
func getDefaultTestPaths(t *testing.T) Paths {
	tmpDir := t.TempDir()
	return Paths{
		Home:   tmpDir,
		Cache:  tmpDir,
		Config: tmpDir,
		Data:   tmpDir,
	}
}

// InitTestCtx initializes a test context with an in-memory database and a
// temporary directory for all paths
func InitTestCtx(t *testing.T) NoteCtx {
	paths := getDefaultTestPaths(t)
	db := database.InitTestDB(t)

	if err := InitDirs(paths); err != nil {
		t.Fatal(errors.Wrap(err, "creating test directories"))
	}

	return NoteCtx{
		DB:       db,
		Paths:    paths,
		NotesDir: filepath.Join(paths.Data, consts.AppDirName, consts.NotesDirName),
		Clock:    clock.NewMock(),
	}
}
