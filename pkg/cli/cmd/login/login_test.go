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

package login

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/assert"
	"github.com/protonote/protonote/pkg/cli/client"
	"github.com/protonote/protonote/pkg/cli/consts"
	"github.com/protonote/protonote/pkg/cli/context"
	"github.com/protonote/protonote/pkg/cli/database"
)

func TestDo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Path, "/v1/signin", "path mismatch")

		resp := client.SigninResponse{Key: "session-key", ExpiresAt: 1893456000000}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("encoding response: %v", err)
		}
	}))
	defer server.Close()

	ctx := context.InitTestCtx(t)
	ctx.APIEndpoint = server.URL

	if err := Do(ctx, "alice@example.com", "password"); err != nil {
		t.Fatal(errors.Wrap(err, "executing"))
	}

	var username, key string
	var expiry int64
	if err := database.GetSystem(ctx.DB, consts.SystemSessionUsername, &username); err != nil {
		t.Fatal(errors.Wrap(err, "getting session username"))
	}
	if err := database.GetSystem(ctx.DB, consts.SystemSessionKey, &key); err != nil {
		t.Fatal(errors.Wrap(err, "getting session key"))
	}
	if err := database.GetSystem(ctx.DB, consts.SystemSessionKeyExpiry, &expiry); err != nil {
		t.Fatal(errors.Wrap(err, "getting session key expiry"))
	}

	assert.Equal(t, username, "alice@example.com", "session username mismatch")
	assert.Equal(t, key, "session-key", "session key mismatch")
	assert.Equal(t, expiry, int64(1893456000000), "session key expiry mismatch")
}

func TestDoInvalidLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	ctx := context.InitTestCtx(t)
	ctx.APIEndpoint = server.URL

	err := Do(ctx, "alice@example.com", "wrong password")
	assert.Equal(t, errors.Cause(err), client.ErrInvalidLogin, "expected ErrInvalidLogin")

	// nothing should be persisted
	var key string
	err = database.GetSystem(ctx.DB, consts.SystemSessionKey, &key)
	assert.Equal(t, err, database.ErrSystemKeyNotFound, "session key should not be saved")
}
