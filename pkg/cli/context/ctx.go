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

// Package context defines protonote context
package context

import (
	"net/http"
	"time"

	"github.com/protonote/protonote/pkg/cli/database"
	"github.com/protonote/protonote/pkg/clock"
)

// Paths contain directory definitions
type Paths struct {
	Home   string
	Config string
	Data   string
	Cache  string
}

// NoteCtx is a context holding the information of the current runtime
type NoteCtx struct {
	Paths            Paths
	APIEndpoint      string
	Version          string
	DB               *database.DB
	NotesDir         string
	SessionUsername  string
	SessionKey       string
	SessionKeyExpiry int64
	Editor           string
	AutosaveWindow   time.Duration
	Clock            clock.Clock
	HTTPClient       *http.Client
}

// LoggedIn returns true if the context carries an authenticated session
func (ctx NoteCtx) LoggedIn() bool {
	return ctx.SessionKey != "" && ctx.SessionUsername != ""
}

// Redact replaces private information from the context with a set of
// placeholder values.
func Redact(ctx NoteCtx) NoteCtx {
	var sessionKey string
	if ctx.SessionKey != "" {
		sessionKey = "1"
	} else {
		sessionKey = "0"
	}
	ctx.SessionKey = sessionKey

	return ctx
}
