// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package dispatcher replays detected changes against a display surface, one
// primitive notification per change, in the order the detector emitted them.
//
// The surface must already be showing the old list. Apply installs the new
// list on the surface before the first notification so any read the surface
// makes while handling a notification observes the new data.
package dispatcher
