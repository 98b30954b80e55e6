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

// Package consts provides definitions of constants
package consts

var (
	// AppDirName is the name of the directory containing protonote files
	AppDirName = "protonote"
	// DBFileName is a filename for the protonote SQLite database
	DBFileName = "protonote.db"
	// NotesDirName is the name of the directory containing the note files
	NotesDirName = "notes"
	// ConfigFilename is the name of the config file
	ConfigFilename = "protonoterc"
	// TmpContentFileBase is the base for the filename for a temporary content
	TmpContentFileBase = "PROTONOTE_TMPCONTENT"
	// TmpContentFileExt is the extension for the temporary content file
	TmpContentFileExt = "md"

	// ContentFileSuffix is the suffix for a note content file
	ContentFileSuffix = ".content"
	// MetaFileSuffix is the suffix for a note metadata file
	MetaFileSuffix = ".meta.json"

	// SystemSchema is the key for schema in the system table
	SystemSchema = "schema"
	// SystemDeviceID is the key for the per-installation device identifier
	SystemDeviceID = "device_id"
	// SystemLastSyncedAt is the server timestamp of the last successful sync
	SystemLastSyncedAt = "last_synced_time"
	// SystemSessionUsername is the username of the current session
	SystemSessionUsername = "session_username"
	// SystemSessionKey is the session key
	SystemSessionKey = "session_token"
	// SystemSessionKeyExpiry is the timestamp at which the session key will expire
	SystemSessionKeyExpiry = "session_token_expiry"
)
