// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package tui shows a reconciled list in the terminal. Each refresh runs the
// dispatcher against an in-memory surface and highlights the rows the batch
// touched.
package tui
