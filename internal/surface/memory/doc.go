// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package memory provides an in-memory display surface used to replay and
// verify change batches without a real screen.
package memory
