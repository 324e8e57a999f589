// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tfctl/rowsync/internal/cacheutil"
	"github.com/tfctl/rowsync/internal/items"
	"github.com/tfctl/rowsync/internal/log"
)

// subdir is where snapshots live under the cache dir.
var subdir = []string{"snapshots"}

// ErrDisabled is returned by Save when the cache is turned off.
var ErrDisabled = errors.New("snapshot cache is disabled (ROWSYNC_CACHE)")

// Snapshot is the last list synced under a name.
type Snapshot struct {
	Name  string       `json:"name"`
	Saved time.Time    `json:"saved"`
	Items []items.Item `json:"items"`
}

// Load returns the snapshot stored under name. The second result is false
// when there is none yet.
func Load(name string) (Snapshot, bool, error) {
	if err := validate(name); err != nil {
		return Snapshot{}, false, err
	}

	e, ok := cacheutil.Read(subdir, name)
	if !ok {
		log.Debugf("snapshot miss: name=%s", name)
		return Snapshot{}, false, nil
	}

	var s Snapshot
	if err := json.Unmarshal(e.Data, &s); err != nil {
		return Snapshot{}, false, fmt.Errorf("snapshot %s is corrupt: %w", name, err)
	}
	log.Debugf("snapshot hit: name=%s items=%d saved=%s", name, len(s.Items), s.Saved)
	return s, true, nil
}

// Save stores list as the snapshot for name.
func Save(name string, list []items.Item) error {
	if err := validate(name); err != nil {
		return err
	}
	if !cacheutil.Enabled() {
		return ErrDisabled
	}

	data, err := json.Marshal(Snapshot{Name: name, Saved: time.Now().UTC(), Items: list})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", name, err)
	}
	return cacheutil.Write(subdir, name, data)
}

// Delete forgets the snapshot for name.
func Delete(name string) error {
	if err := validate(name); err != nil {
		return err
	}
	return cacheutil.Remove(subdir, name)
}

// Purge removes snapshots not saved within hours.
func Purge(hours int) (int, error) {
	return cacheutil.Purge(subdir, hours)
}

func validate(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("snapshot name is empty")
	}
	return nil
}
