// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package detector

// run describes the best run of stable items starting at new index first.
type run struct {
	length int
	clean  int
	first  int
}

// better orders runs by length, then by unchanged items, then by the earlier
// starting item.
func (r run) better(o run) bool {
	if r.length != o.length {
		return r.length > o.length
	}
	if r.clean != o.clean {
		return r.clean > o.clean
	}
	return r.first < o.first
}

// runTree is a Fenwick tree answering "best run among keys below k".
type runTree []run

func newRunTree(size int) runTree {
	t := make(runTree, size+1)
	for k := range t {
		t[k] = run{first: -1}
	}
	return t
}

func (t runTree) update(k int, r run) {
	for k++; k < len(t); k += k & -k {
		if r.better(t[k]) {
			t[k] = r
		}
	}
}

func (t runTree) query(k int) run {
	best := run{first: -1}
	for ; k > 0; k -= k & -k {
		if t[k].better(best) {
			best = t[k]
		}
	}
	return best
}

// stableSet marks the matched new items that keep their place. They are the
// longest run of matches whose old indices increase in new order, so every
// other matched item is moved exactly once and the number of moves is
// minimal.
//
// When several runs are equally long the one with the fewest changed items
// wins: a changed item that moves is reported once, a changed item that
// stays is reported as an update. Remaining ties go to the run holding items
// earlier in the new list, so swapping two neighbours moves the first old
// item forward rather than the second one back.
func stableSet(matches []int, changed []bool) []bool {
	stable := make([]bool, len(matches))

	size := 0
	for _, j := range matches {
		size = max(size, j+1)
	}

	// Walk right to left. Old indices are stored reversed so that a prefix
	// query covers every old index above the current one.
	tree := newRunTree(size)
	next := make([]int, len(matches))
	best := run{first: -1}

	for i := len(matches) - 1; i >= 0; i-- {
		v := matches[i]
		if v < 0 {
			continue
		}

		tail := tree.query(size - 1 - v)
		cur := run{length: tail.length + 1, clean: tail.clean, first: i}
		if !changed[i] {
			cur.clean++
		}
		next[i] = tail.first

		tree.update(size-1-v, cur)
		if cur.better(best) {
			best = cur
		}
	}

	for i := best.first; i >= 0; i = next[i] {
		stable[i] = true
	}

	return stable
}
