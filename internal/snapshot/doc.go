// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot keeps the last list synced under a name in the rowsync
// cache directory, so the next sync can be reconciled against it.
package snapshot
