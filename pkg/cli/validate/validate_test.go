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

package validate

import (
	"testing"

	"github.com/protonote/protonote/pkg/assert"
)

func TestNoteTitle(t *testing.T) {
	testCases := []struct {
		input    string
		expected error
	}{
		{"Shopping List", nil},
		{"a", nil},
		{"Meeting 2020-01-01", nil},
		{"", ErrTitleEmpty},
		{"   ", ErrTitleEmpty},
		{"!!!", ErrTitleUnusable},
		{"___", ErrTitleUnusable},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got := NoteTitle(tc.input)
			assert.Equal(t, got, tc.expected, "validation result mismatch")
		})
	}
}
