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

// Package validate provides functions to validate user input
package validate

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/protonote/protonote/pkg/cli/store"
)

// ErrTitleEmpty is an error for empty note titles
var ErrTitleEmpty = errors.New("title is empty")

// ErrTitleUnusable is an error for titles that sanitize down to nothing
var ErrTitleUnusable = errors.New("title has no usable characters")

// NoteTitle validates a note title
func NoteTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleEmpty
	}

	key := store.SanitizeTitle(title)
	if strings.Trim(key, "_") == "" {
		return ErrTitleUnusable
	}

	return nil
}
