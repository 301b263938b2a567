// Package sim implements the multi-node concurrent mining simulation
// harness: a mining token shared by N miner goroutines, a block dispatcher
// that fans mined blocks out to every node's inbox, and a controller that
// waits out a quiescence grace period before tearing the harness down.
package sim

import (
	"sync"

	"github.com/daglabs/ghostdagsim/dag"
)

// BlockRaw is the wire-format representation of a block: the four fields a
// round-trip through node.AddBlock must reproduce bit-for-bit (name,
// height, size_of_past_set, prev), plus the propagation countdown the
// dispatcher uses to know when every node has acknowledged a block and it
// can be dropped from the propagation bus.
type BlockRaw struct {
	Name          string
	Height        uint64
	SizeOfPastSet uint64
	Prev          []string

	mu          sync.Mutex
	propagation int
}

// NewBlockRaw builds the wire form of a freshly mined block, named for the
// given block's current (name, height, size_of_past_set, prev) and the
// countdown set to totalNodes -- the number of nodes still expected to
// acknowledge receipt.
func NewBlockRaw(block *dag.Block, totalNodes int) *BlockRaw {
	return &BlockRaw{
		Name:          block.Name,
		Height:        block.Height,
		SizeOfPastSet: block.SizeOfPastSet,
		Prev:          block.PrevNames(),
		propagation:   totalNodes,
	}
}

// Ack decrements the propagation countdown by one acknowledging node and
// reports whether every expected node has now acknowledged it.
func (r *BlockRaw) Ack() (exhausted bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.propagation--
	return r.propagation <= 0
}
