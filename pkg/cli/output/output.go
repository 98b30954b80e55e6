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

// Package output provides functions for printing notes on the terminal
package output

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/protonote/protonote/pkg/cli/log"
	"github.com/protonote/protonote/pkg/cli/store"
)

func formatTime(millis int64) string {
	return time.UnixMilli(millis).Local().Format("Jan 2 2006 15:04")
}

// NoteList prints the given notes, most recently edited first
func NoteList(notes []store.NoteInfo) {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].LastEditTime > notes[j].LastEditTime
	})

	log.Infof("total %d\n", len(notes))

	for _, note := range notes {
		fmt.Printf("%s %s\n", color.YellowString("•"), note.Title)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprint(formatTime(note.LastEditTime)))
	}
}

// NoteContent prints a single note with its metadata
func NoteContent(info store.NoteInfo, content string) {
	log.Infof("%s\n", info.Title)
	log.Plainf("created: %s\n", formatTime(info.CreatedAtTime))
	log.Plainf("edited: %s\n", formatTime(info.LastEditTime))
	fmt.Printf("\n%s\n", content)
}
