// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output turns detected changes into records and renders them as a
// text table, JSON or YAML.
package output
