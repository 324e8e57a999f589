// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters drops item elements that do not match --filter expressions
// before they take part in reconciliation.
//
// Filters are key-operator-target expressions joined by a comma, or by
// ROWSYNC_FILTER_DELIM. Operators:
//
//   - = : exact match (numeric for numbers)
//   - ^ : prefix match
//   - ~ : case-insensitive equality
//   - < : less than (numeric for numbers)
//   - > : greater than (numeric for numbers)
//   - @ : contains; substring for strings, membership for lists and objects
//   - / : regular expression match
//
// Any operator may be negated with a leading '!' (e.g. "status!=closed"). A
// bare key keeps elements where the key is present.
//
// Examples:
//
//   - "status=open"
//   - "title^Item"
//   - "size>5"
//   - "tags@urgent"
//   - "title!/\*$"
//
// Keys name an attr from --content when one matches, otherwise they are dot
// paths into the element.
package filters
