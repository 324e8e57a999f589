// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package items turns JSON or YAML documents into the keyed lists rowsync
// reconciles.
//
// Every element of the list selected by Spec.Parent becomes an Item. Its key
// comes from the Spec.Key path and its content from the Spec.Content attrs,
// or from the whole element when no attrs are given. Two items are the same
// item when their keys match and show the same thing when their contents
// match.
//
// Documents are read from a file, from stdin ("-") or from S3
// ("s3://bucket/key?versionId=..."). Version pinned S3 bodies are cached.
package items
