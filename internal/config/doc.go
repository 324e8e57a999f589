// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for rowsync's user
// configuration, a YAML document named by ROWSYNC_CFG_FILE or found as
// rowsync.yaml in the directory returned by os.UserConfigDir.
//
// Keys are dotted paths. Command flags read their defaults from the
// "<command>.<flag>" key through altsrc; the getters here serve settings that
// are not flags, such as cache.clean.
package config
