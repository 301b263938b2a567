package sim

import (
	"sync"

	"github.com/daglabs/ghostdagsim/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.SIM)

// Dispatcher is the single shared propagation bus every node's RX worker
// polls: a mined block is published once and stays on the bus until every
// node has acknowledged it, then it is dropped (recovered from
// handle_block_tx / handle_block_rx's propagation countdown,
// original_source/node.rs -- spec §4.7 describes the dispatcher/inbox
// shape but not this bookkeeping, so it is a supplemented feature, spec
// §12). This mirrors the original's single shared map polled by every
// node rather than per-node channels, so a node can never silently miss a
// block by arriving late to a full inbox -- it only needs to poll the bus
// again.
//
// propagation is guarded by its own mutex per the dispatcher-bus
// discipline (spec §5): acquire, do O(1)/O(n) cheap bookkeeping, release
// -- never held across a node lock acquisition.
type Dispatcher struct {
	mu          sync.Mutex
	propagation map[string]*BlockRaw
	totalNodes  int
}

// NewDispatcher creates a dispatcher sized for totalNodes acknowledgments
// per published block.
func NewDispatcher(totalNodes int) *Dispatcher {
	return &Dispatcher{
		propagation: make(map[string]*BlockRaw),
		totalNodes:  totalNodes,
	}
}

// Publish registers raw as newly mined, putting it on the bus for every
// node's RX worker to discover on its next poll.
func (d *Dispatcher) Publish(raw *BlockRaw) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.propagation[raw.Name] = raw
}

// Poll returns a snapshot of everything currently on the bus. Callers
// track which names they have already acknowledged themselves (a node
// must never Ack the same raw block twice).
func (d *Dispatcher) Poll() map[string]*BlockRaw {
	d.mu.Lock()
	defer d.mu.Unlock()
	snap := make(map[string]*BlockRaw, len(d.propagation))
	for name, raw := range d.propagation {
		snap[name] = raw
	}
	return snap
}

// Ack records that one more node has consumed raw, removing it from the
// bus once every node has acknowledged it.
func (d *Dispatcher) Ack(raw *BlockRaw) {
	if !raw.Ack() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.propagation, raw.Name)
}

// PendingCount returns how many raw blocks are still awaiting full
// acknowledgment, used by the controller's quiescence check.
func (d *Dispatcher) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.propagation)
}
