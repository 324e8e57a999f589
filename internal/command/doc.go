// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the rowsync CLI: diff, replay, sync and demo. It
// wires flags, config sources, validators, actions and shell completion.
package command
