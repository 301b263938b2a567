package dag

import (
	"fmt"
	"strings"
)

// DagPrint renders every block in the dag sorted by (height asc, name asc),
// one line per block, in the form "name height size_of_past_set".
func DagPrint(blocks map[string]*Block) string {
	var b strings.Builder
	for _, nh := range SortedByHeight(blocks) {
		block := blocks[nh.Name]
		fmt.Fprintf(&b, "%s %d %d\n", block.Name, block.Height, block.SizeOfPastSet)
	}
	return b.String()
}

// DagBluePrint renders the blue set summary line: every blue block name in
// (height asc, name asc) order, followed by the blue-count-over-total-count
// ratio, in the literal form "blues={X,Y,Z,} total=C/N".
func DagBluePrint(blocks map[string]*Block) string {
	var blues strings.Builder
	blues.WriteString("blues={")

	blueCount := 0
	for _, nh := range SortedByHeight(blocks) {
		block := blocks[nh.Name]
		if block.Blue() {
			fmt.Fprintf(&blues, "%s,", block.Name)
			blueCount++
		}
	}
	blues.WriteString("}")

	return fmt.Sprintf("%s total=%d/%d", blues.String(), blueCount, len(blocks))
}
