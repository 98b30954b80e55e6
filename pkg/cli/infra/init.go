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

// Package infra sets up the program environment
package infra

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/client"
	"github.com/protonote/protonote/pkg/cli/config"
	"github.com/protonote/protonote/pkg/cli/consts"
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/database"
	"github.com/protonote/protonote/pkg/cli/ui"
	"github.com/protonote/protonote/pkg/cli/utils"
	"github.com/protonote/protonote/pkg/clock"
	"github.com/protonote/protonote/pkg/dirs"
	"github.com/spf13/cobra"
)

// DefaultAPIEndpoint is the URL of the hosted sync server
const DefaultAPIEndpoint = "https://api.getprotonote.com"

// RunEFunc is a function type of a command
type RunEFunc func(*cobra.Command, []string) error

func getPaths(dataDirOverride string) context.Paths {
	ret := context.Paths{
		Home:   dirs.Home,
		Config: dirs.ConfigHome,
		Data:   dirs.DataHome,
		Cache:  dirs.CacheHome,
	}

	if dataDirOverride != "" {
		// confine every mutable file to the override for isolated runs
		ret.Config = dataDirOverride
		ret.Data = dataDirOverride
		ret.Cache = dataDirOverride
	}

	return ret
}

// initConfigFile populates a default config file if it does not exist yet
func initConfigFile(ctx context.NoteCtx, apiEndpoint string) error {
	path := config.GetPath(ctx)
	ok, err := utils.FileExists(path)
	if err != nil {
		return errors.Wrap(err, "checking if config exists")
	}
	if ok {
		return nil
	}

	if apiEndpoint == "" {
		apiEndpoint = DefaultAPIEndpoint
	}

	cf := config.Config{
		Editor:          ui.GetDefaultEditor(),
		APIEndpoint:     apiEndpoint,
		AutosaveSeconds: config.DefaultAutosaveSeconds,
	}

	if err := config.Write(ctx, cf); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}

func readSystem(db *database.DB, key string, dest interface{}) error {
	err := database.GetSystem(db, key, dest)
	if err == database.ErrSystemKeyNotFound {
		return nil
	}

	return err
}

func setupCtx(paths context.Paths, versionTag, apiEndpoint string, db *database.DB) (context.NoteCtx, error) {
	ret := context.NoteCtx{
		Paths:       paths,
		Version:     versionTag,
		DB:          db,
		NotesDir:    filepath.Join(paths.Data, consts.AppDirName, consts.NotesDirName),
		Clock:       clock.New(),
		HTTPClient:  client.NewRateLimitedHTTPClient(),
		APIEndpoint: DefaultAPIEndpoint,
	}

	if err := initConfigFile(ret, apiEndpoint); err != nil {
		return ret, errors.Wrap(err, "initializing config file")
	}

	cf, err := config.Read(ret)
	if err != nil {
		return ret, errors.Wrap(err, "reading config")
	}

	ret.Editor = cf.Editor
	ret.AutosaveWindow = time.Duration(cf.AutosaveSeconds) * time.Second
	if cf.APIEndpoint != "" {
		ret.APIEndpoint = cf.APIEndpoint
	}
	if apiEndpoint != "" {
		ret.APIEndpoint = apiEndpoint
	}

	if err := readSystem(db, consts.SystemSessionUsername, &ret.SessionUsername); err != nil {
		return ret, errors.Wrap(err, "reading session username")
	}
	if err := readSystem(db, consts.SystemSessionKey, &ret.SessionKey); err != nil {
		return ret, errors.Wrap(err, "reading session key")
	}
	if err := readSystem(db, consts.SystemSessionKeyExpiry, &ret.SessionKeyExpiry); err != nil {
		return ret, errors.Wrap(err, "reading session key expiry")
	}

	return ret, nil
}

// Init sets up the protonote environment and returns a new context. The
// dataDir argument, when non-empty, overrides every base directory.
func Init(versionTag, apiEndpoint, dataDir string) (context.NoteCtx, error) {
	paths := getPaths(dataDir)

	if err := context.InitDirs(paths); err != nil {
		return context.NoteCtx{}, errors.Wrap(err, "initializing directories")
	}

	dbPath := filepath.Join(paths.Data, consts.AppDirName, consts.DBFileName)
	db, err := database.Open(dbPath)
	if err != nil {
		return context.NoteCtx{}, errors.Wrap(err, "opening database")
	}
	if err := db.InitSchema(); err != nil {
		return context.NoteCtx{}, errors.Wrap(err, "initializing schema")
	}

	ctx, err := setupCtx(paths, versionTag, apiEndpoint, db)
	if err != nil {
		return context.NoteCtx{}, errors.Wrap(err, "setting up the context")
	}

	return ctx, nil
}
