// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package risk

import "sort"

// topWinners applies the plurality outcome rule: the top-w selection ids
// by count, ties broken lexicographically by reduced selid (spec §4.6
// step 3, §9 design note). Only declared candidate selections are
// eligible; invalid/special/write-in buckets never win.
func topWinners(full map[string]int, w int, selections []string) []string {
	type entry struct {
		id    string
		count int
	}
	entries := make([]entry, 0, len(selections))
	for _, id := range selections {
		entries = append(entries, entry{id: id, count: full[id]})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].id < entries[j].id
	})

	n := w
	if n > len(entries) {
		n = len(entries)
	}
	winners := make([]string, n)
	for i := 0; i < n; i++ {
		winners[i] = entries[i].id
	}
	sort.Strings(winners)
	return winners
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sumInts(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

func addInto(dst, src map[string]int) {
	for k, v := range src {
		dst[k] += v
	}
}
