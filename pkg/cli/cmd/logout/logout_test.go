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

package logout

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/assert"
	"github.com/protonote/protonote/pkg/cli/consts"
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/database"
)

func seedSession(t *testing.T, ctx context.NoteCtx) {
	if err := database.InsertSystem(ctx.DB, consts.SystemSessionUsername, "alice@example.com"); err != nil {
		t.Fatal(errors.Wrap(err, "seeding session username"))
	}
	if err := database.InsertSystem(ctx.DB, consts.SystemSessionKey, "session-key"); err != nil {
		t.Fatal(errors.Wrap(err, "seeding session key"))
	}
	if err := database.InsertSystem(ctx.DB, consts.SystemSessionKeyExpiry, int64(1893456000000)); err != nil {
		t.Fatal(errors.Wrap(err, "seeding session key expiry"))
	}
}

func assertSessionCleared(t *testing.T, ctx context.NoteCtx) {
	var val string
	err := database.GetSystem(ctx.DB, consts.SystemSessionUsername, &val)
	assert.Equal(t, err, database.ErrSystemKeyNotFound, "session username should be cleared")
	err = database.GetSystem(ctx.DB, consts.SystemSessionKey, &val)
	assert.Equal(t, err, database.ErrSystemKeyNotFound, "session key should be cleared")
	err = database.GetSystem(ctx.DB, consts.SystemSessionKeyExpiry, &val)
	assert.Equal(t, err, database.ErrSystemKeyNotFound, "session key expiry should be cleared")
}

func TestDo(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer server.Close()

	ctx := context.InitTestCtx(t)
	ctx.APIEndpoint = server.URL
	ctx.SessionUsername = "alice@example.com"
	ctx.SessionKey = "session-key"
	seedSession(t, ctx)

	if err := Do(ctx); err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	assert.Equal(t, gotPath, "/v1/signout", "signout path mismatch")
	assertSessionCleared(t, ctx)
}

func TestDoServerUnreachable(t *testing.T) {
	ctx := context.InitTestCtx(t)
	ctx.APIEndpoint = "http://127.0.0.1:1"
	ctx.SessionUsername = "alice@example.com"
	ctx.SessionKey = "session-key"
	seedSession(t, ctx)

	// the local session is cleared even when the server is unreachable
	if err := Do(ctx); err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	assertSessionCleared(t, ctx)
}

func TestDoNotLoggedIn(t *testing.T) {
	ctx := context.InitTestCtx(t)

	err := Do(ctx)
	assert.Equal(t, err, ErrNotLoggedIn, "expected ErrNotLoggedIn")
}
