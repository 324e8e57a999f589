// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller extracts values from item documents with simple dot paths,
// the notation used by the --key, --parent and --content flags.
package driller
