// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK v2 configuration and fetches item documents
// stored in S3, addressed as s3://bucket/key with an optional versionId
// query parameter.
package aws
