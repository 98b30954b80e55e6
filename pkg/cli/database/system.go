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

package database

import (
	"database/sql"

	"github.com/pkg/errors"
)

// ErrSystemKeyNotFound is an error for a system key that does not exist
var ErrSystemKeyNotFound = errors.New("system key not found")

// GetSystem scans the value under the given key into the destination
func GetSystem(db *DB, key string, dest interface{}) error {
	err := db.QueryRow("SELECT value FROM system WHERE key = ?", key).Scan(dest)
	if err == sql.ErrNoRows {
		return ErrSystemKeyNotFound
	}
	if err != nil {
		return errors.Wrapf(err, "getting system value for %s", key)
	}

	return nil
}

// InsertSystem inserts a system configuration
func InsertSystem(db *DB, key string, val interface{}) error {
	if _, err := db.Exec("INSERT INTO system (key, value) VALUES (?, ?)", key, val); err != nil {
		return errors.Wrapf(err, "inserting system value for %s", key)
	}

	return nil
}

// UpdateSystem writes the value under the given key, inserting the record
// if it does not exist yet
func UpdateSystem(db *DB, key string, val interface{}) error {
	var count int
	if err := db.QueryRow("SELECT count(*) FROM system WHERE key = ?", key).Scan(&count); err != nil {
		return errors.Wrapf(err, "counting system records for %s", key)
	}

	if count == 0 {
		return InsertSystem(db, key, val)
	}

	if _, err := db.Exec("UPDATE system SET value = ? WHERE key = ?", val, key); err != nil {
		return errors.Wrapf(err, "updating system value for %s", key)
	}

	return nil
}

// DeleteSystem removes the record under the given key. A missing record is
// not an error.
func DeleteSystem(db *DB, key string) error {
	if _, err := db.Exec("DELETE FROM system WHERE key = ?", key); err != nil {
		return errors.Wrapf(err, "deleting system value for %s", key)
	}

	return nil
}
