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

package main

import (
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/infra"
	"github.com/protonote/protonote/pkg/cli/log"

	// commands
	"github.com/protonote/protonote/pkg/cli/cmd/cat"
	"github.com/protonote/protonote/pkg/cli/cmd/edit"
	"github.com/protonote/protonote/pkg/cli/cmd/login"
	"github.com/protonote/protonote/pkg/cli/cmd/logout"
	"github.com/protonote/protonote/pkg/cli/cmd/ls"
	newcmd "github.com/protonote/protonote/pkg/cli/cmd/new"
	"github.com/protonote/protonote/pkg/cli/cmd/remove"
	"github.com/protonote/protonote/pkg/cli/cmd/root"
	"github.com/protonote/protonote/pkg/cli/cmd/sync"
	"github.com/protonote/protonote/pkg/cli/cmd/version"
)

// apiEndpoint and versionTag are populated during link time
var apiEndpoint string
var versionTag = "master"

// parseDataDir extracts the --dataDir flag value from command line arguments
// regardless of where it appears. The flag must be known before cobra runs
// because the database lives under the data dir.
func parseDataDir(args []string) string {
	for i, arg := range args {
		if strings.HasPrefix(arg, "--dataDir=") {
			return strings.TrimPrefix(arg, "--dataDir=")
		}
		if arg == "--dataDir" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func main() {
	dataDir := parseDataDir(os.Args[1:])

	ctx, err := infra.Init(versionTag, apiEndpoint, dataDir)
	if err != nil {
		panic(errors.Wrap(err, "initializing context"))
	}
	defer ctx.DB.Close()

	root.Register(ls.NewCmd(ctx))
	root.Register(cat.NewCmd(ctx))
	root.Register(newcmd.NewCmd(ctx))
	root.Register(edit.NewCmd(ctx))
	root.Register(remove.NewCmd(ctx))
	root.Register(sync.NewCmd(ctx))
	root.Register(login.NewCmd(ctx))
	root.Register(logout.NewCmd(ctx))
	root.Register(version.NewCmd(ctx))

	if err := root.Execute(); err != nil {
		log.Errorf("%s\n", err.Error())
		os.Exit(1)
	}
}
