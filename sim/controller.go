package sim

import (
	"strconv"
	"time"

	"github.com/daglabs/ghostdagsim/node"
	"github.com/daglabs/ghostdagsim/util/locks"
	"github.com/daglabs/ghostdagsim/util/panics"
)

// Controller runs a fixed-size fleet of simulated nodes: one miner
// goroutine and one RX goroutine per node, sharing a MiningToken and a
// Dispatcher, until the credit budget is exhausted and a grace period of
// silence has elapsed (spec §4.7, §5).
type Controller struct {
	Nodes      []*node.Node
	Token      *MiningToken
	Dispatcher *Dispatcher
	K          int

	spawn func(func())
	alive *locks.WaitGroup
}

// NewController wires one node per entry of nodeNames around a fresh
// MiningToken seeded with totalCredits and a Dispatcher sized for the fleet.
func NewController(nodeNames []string, totalCredits int64, k int) *Controller {
	nodes := make([]*node.Node, len(nodeNames))
	for i, name := range nodeNames {
		nodes[i] = node.Init(name)
	}

	c := &Controller{
		Nodes:      nodes,
		Token:      newMiningToken(totalCredits),
		Dispatcher: NewDispatcher(len(nodeNames)),
		K:          k,
		spawn:      panics.GoroutineWrapperFunc(log),
		alive:      locks.NewWaitGroup(),
	}
	return c
}

// Run starts a miner and an RX worker per node, blocks until the token is
// exhausted and the harness has been quiet for gracePeriod, then signals
// termination and waits for every goroutine to exit.
func (c *Controller) Run(gracePeriod time.Duration) {
	for _, n := range c.Nodes {
		n := n
		blockPrefix := n.Name

		c.alive.Add()
		c.spawn(func() {
			defer c.alive.Done()
			c.runMiner(n, blockPrefix)
		})

		c.alive.Add()
		c.spawn(func() {
			defer c.alive.Done()
			c.runReceiver(n)
		})
	}

	for {
		time.Sleep(gracePeriod)
		if c.Token.Terminated() {
			break
		}
		c.Token.mu.Lock()
		exhausted := c.Token.credits == 0
		c.Token.mu.Unlock()
		if exhausted && c.Dispatcher.PendingCount() == 0 && c.Token.RequiredHeight() > 0 {
			// quiescent: nothing in flight. Give one more grace period in
			// case a miner is mid-step, then check again.
			time.Sleep(gracePeriod)
			if c.Dispatcher.PendingCount() == 0 {
				c.Token.Terminate()
				break
			}
		}
	}

	c.alive.Wait()
	log.Infof("controller: harness quiesced, %d nodes joined", len(c.Nodes))
}

func (c *Controller) runMiner(n *node.Node, namePrefix string) {
	seq := 0
	for !c.Token.Terminated() {
		seq++
		blockName := namePrefix + "-" + strconv.Itoa(seq)
		Mine(blockName, n, c.Token, c.K, len(c.Nodes), c.Dispatcher)
		time.Sleep(time.Duration(randomJitter(10, 150)) * time.Millisecond)
	}
}

// runReceiver polls the dispatcher's shared propagation bus rather than a
// per-node channel, so a node can never silently miss a block: every raw
// block stays on the bus until every node has acknowledged it (spec §4.7,
// recovered handle_block_rx polling idiom, original_source/node.rs).
func (c *Controller) runReceiver(n *node.Node) {
	stash := make(map[string]*BlockRaw)
	seen := make(map[string]bool)

	for {
		for _, raw := range c.Dispatcher.Poll() {
			receiveOne(n, raw, stash, seen, c.Dispatcher)
		}
		drainStash(n, stash, c.K)

		if c.Token.Terminated() && len(stash) == 0 {
			return
		}
		time.Sleep(time.Duration(randomJitter(1, 50)) * time.Millisecond)
	}
}

// receiveOne acknowledges raw exactly once per node (tracked by seen,
// which persists across drains unlike stash) and stages it for admission
// if this node does not already hold it.
func receiveOne(n *node.Node, raw *BlockRaw, stash map[string]*BlockRaw, seen map[string]bool, disp *Dispatcher) {
	if seen[raw.Name] {
		return
	}
	seen[raw.Name] = true
	if !n.Has(raw.Name) {
		stash[raw.Name] = raw
	}
	disp.Ack(raw)
}

// drainStash replays stashed raw blocks whose parents have all since
// arrived, looping until a pass makes no progress (spec §4.7, "Receiver"
// paragraph).
func drainStash(n *node.Node, stash map[string]*BlockRaw, k int) {
	for {
		var added []string
		for name, raw := range stash {
			ready := true
			for _, parent := range raw.Prev {
				if !n.Has(parent) {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}
			if n.AddBlock(raw.Name, raw.Prev, k, true) {
				added = append(added, name)
			}
		}
		for _, name := range added {
			delete(stash, name)
		}
		if len(added) == 0 {
			return
		}
	}
}
