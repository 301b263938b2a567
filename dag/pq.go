package dag

import "sort"

// Stpq is the exported form of stpq, for callers outside the package (the
// simulation harness's parent-selection, spec §4.7) that need the same
// score ordering without duplicating the sort.
func Stpq(blocks map[string]*Block) []string {
	return stpq(blocks)
}

// stpq returns the names of blocks sorted by the Score Topological
// Priority Queue order: size_of_past_blue descending, name ascending.
// Every blue-selection traversal over a hash-keyed set must go through
// stpq or ltpq rather than ranging directly -- unordered iteration in a
// blue-sensitive path is forbidden (spec §4.5, §9).
func stpq(blocks map[string]*Block) []string {
	names := make([]string, 0, len(blocks))
	for name := range blocks {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		bi, bj := blocks[names[i]], blocks[names[j]]
		pi, pj := bi.PastBlue(), bj.PastBlue()
		if pi != pj {
			return pi > pj
		}
		return names[i] < names[j]
	})
	return names
}

// ltpq returns the names of blocks sorted by the Lexicographic
// Topological Priority Queue order: size_of_past_set descending, name
// ascending.
func ltpq(blocks map[string]*Block) []string {
	names := make([]string, 0, len(blocks))
	for name := range blocks {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		bi, bj := blocks[names[i]], blocks[names[j]]
		if bi.SizeOfPastSet != bj.SizeOfPastSet {
			return bi.SizeOfPastSet > bj.SizeOfPastSet
		}
		return names[i] < names[j]
	})
	return names
}
