// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package detector computes the ordered structural changes (insert, remove,
// update, move) that turn an old list into a new one. Positions on every
// emitted change are effective positions: they are valid against a surface
// that has already applied every earlier change of the same batch.
//
// Identity and content are judged only through caller-supplied predicates, so
// the package is generic over the item type.
package detector
