// Package node wires the dag package's block store, tip tracker and
// blue-selection engine into a single node's insertion pipeline
// (node_init / node_add_block), under one reader-writer lock per node.
package node

import (
	"sync"

	"github.com/daglabs/ghostdagsim/dag"
	"github.com/daglabs/ghostdagsim/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.NODE)

// Node is a single participant's view of the DAG: its own block store, tip
// set and classmates index, plus the running counters a formatter or miner
// wants without walking the whole store. One RWMutex guards every mutable
// field; the mining worker and the RX worker both take it exclusively when
// applying a block, readers (formatters) take it shared.
type Node struct {
	Name string

	mu          sync.RWMutex
	store       *dag.Store
	tips        *dag.Tips
	height      uint64
	sizeOfDag   uint64
	minedBlocks uint64
}

// Init creates a node with the given name and a freshly minted Genesis
// block. Every node in a simulation run starts from the same Genesis name
// so that their DAGs are comparable.
func Init(name string) *Node {
	n := &Node{
		Name:  name,
		store: dag.NewStore(),
		tips:  dag.NewTips(),
	}

	genesis, err := n.store.Add(dag.GenesisName, nil)
	if err != nil {
		log.Criticalf("node %s: failed to create genesis: %s", name, err)
		return n
	}
	n.tips.RecordClassmate(genesis)
	n.tips.Update(genesis)
	n.sizeOfDag = 1

	return n
}

// AddBlock is the node insertion pipeline (spec §4.6): insert into the
// block store, update node-level counters, and -- if doUpdateTips -- update
// the tip set and run blue classification. Returns whether the block was
// newly added; false (with no error surfaced) on duplicate insertion,
// matching the library's no-exception error-handling design (spec §7).
func (n *Node) AddBlock(name string, prevNames []string, k int, doUpdateTips bool) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	block, err := n.store.Add(name, prevNames)
	if err != nil {
		log.Debugf("node %s: rejected block %s: %s", n.Name, name, err)
		return false
	}

	if block.Height > n.height {
		n.height = block.Height
	}
	n.sizeOfDag++
	n.tips.RecordClassmate(block)

	if doUpdateTips {
		n.tips.Update(block)

		view := &dag.DAGView{
			Blocks:     n.store.All(),
			Tips:       n.tips.All(),
			Classmates: n.tips.Classmates(),
		}
		if err := dag.CalcBlue(name, view, k); err != nil {
			log.Criticalf("node %s: calc_blue failed for %s: %s", n.Name, name, err)
		}
	}

	log.Debugf("node %s: added %s at height %d (size_of_dag=%d)", n.Name, name, block.Height, n.sizeOfDag)
	return true
}

// RecordMined bumps the local mined-block counter. Called by the miner
// goroutine after a successful local AddBlock, distinct from blocks that
// arrive over the dispatcher.
func (n *Node) RecordMined() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minedBlocks++
}

// Height returns the node's current maximum block height.
func (n *Node) Height() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.height
}

// SizeOfDag returns the number of blocks the node has admitted.
func (n *Node) SizeOfDag() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.sizeOfDag
}

// MinedBlocks returns the number of blocks this node has locally mined.
func (n *Node) MinedBlocks() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.minedBlocks
}

// Has reports whether a block by that name is already known to this node.
func (n *Node) Has(name string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.store.Get(name)
	return ok
}

// Get looks up a single block by name.
func (n *Node) Get(name string) (*dag.Block, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.store.Get(name)
}

// Tips returns the current tip set. Safe to range directly for anything
// that is not blue-sensitive; blue-sensitive consumers should wrap it in
// dag.SortedByHeight or the STPQ/LTPQ orderings.
func (n *Node) Tips() map[string]*dag.Block {
	n.mu.RLock()
	defer n.mu.RUnlock()
	tips := make(map[string]*dag.Block, len(n.tips.All()))
	for name, block := range n.tips.All() {
		tips[name] = block
	}
	return tips
}

// String renders the node's DAG print and blue print, in that order,
// separated by a blank line.
func (n *Node) String() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	blocks := n.store.All()
	return dag.DagPrint(blocks) + "\n" + dag.DagBluePrint(blocks)
}
