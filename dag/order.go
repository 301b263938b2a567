package dag

import "sort"

// TopologicalOrder returns every block name in a topological order
// consistent with the DAG's prev/next adjacency: height ascending,
// blue-before-red, name ascending as final tie-break (spec §4.8). This is a
// read-only reporting convenience (not consensus-critical -- it is never
// consulted by CalcBlue or SizeofPastSet) for callers that want a
// deterministic full-DAG walk; the simulation harness does not call it.
func TopologicalOrder(blocks map[string]*Block) []string {
	names := make([]string, 0, len(blocks))
	for name := range blocks {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		a, b := blocks[names[i]], blocks[names[j]]
		if a.Height != b.Height {
			return a.Height < b.Height
		}
		if a.Blue() != b.Blue() {
			return a.Blue()
		}
		return a.Name < b.Name
	})

	return names
}
