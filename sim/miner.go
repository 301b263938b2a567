package sim

import (
	"math/rand"
	"sync"

	"github.com/daglabs/ghostdagsim/dag"
	"github.com/daglabs/ghostdagsim/node"
)

// MiningToken is the credits/required_height pair shared by every miner
// goroutine (spec §4.7): credits are debited atomically per mined block,
// and a miner skips its turn if the node it is mining on has not yet
// caught up to within one of required_height, keeping the simulated
// frontier roughly aligned across nodes. credits == -1 is the terminate
// signal every miner and the dispatcher's RX workers observe and exit on.
type MiningToken struct {
	mu             sync.Mutex
	credits        int64
	requiredHeight uint64
}

// newMiningToken starts a token with the given credit budget.
func newMiningToken(credits int64) *MiningToken {
	return &MiningToken{credits: credits}
}

// Take debits one credit and reports whether it succeeded. It fails when
// the budget is already exhausted or the terminate sentinel is set; the
// caller should skip this mining turn in either case.
func (t *MiningToken) Take() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.credits <= 0 {
		return false
	}
	t.credits--
	return true
}

// Terminated reports whether the token has been set to the terminate
// sentinel.
func (t *MiningToken) Terminated() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.credits < 0
}

// Terminate sets the terminate sentinel (credits = -1).
func (t *MiningToken) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.credits = -1
}

// BumpRequiredHeight raises required_height to at least h.
func (t *MiningToken) BumpRequiredHeight(h uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if h > t.requiredHeight {
		t.requiredHeight = h
	}
}

// RequiredHeight returns the current frontier floor.
func (t *MiningToken) RequiredHeight() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.requiredHeight
}

// selectParents picks the top k+1 tips by STPQ (score descending, name
// ascending) as the new block's parent set, then widens the set from the
// chosen tip's anticone when fewer than k+1 tips exist, pruning the
// anticone of each newly-chosen parent's past/future as it goes so the
// parent set stays an antichain (recovered remove_past_future idiom,
// original_source/lib.rs test_add_block -- spec §12).
func selectParents(n *node.Node, k int) []string {
	tips := n.Tips()
	if len(tips) == 0 {
		return nil
	}

	ordered := dag.Stpq(tips)

	want := k + 1
	if len(ordered) >= want {
		return append([]string(nil), ordered[:want]...)
	}

	parents := append([]string(nil), ordered...)

	anticone := dag.TipsAnticone(ordered[0], tips)
	for len(parents) < want && len(anticone) > 0 {
		next := pickAny(anticone)
		if next == "" {
			break
		}
		parents = append(parents, next)
		pruneAnticone(anticone[next], anticone)
		delete(anticone, next)
	}

	return parents
}

// pruneAnticone removes from anticone every block reachable from block via
// Prev (its past) or NextBlocks (its future), so a subsequently chosen
// parent cannot also be an ancestor or descendant of one already chosen.
func pruneAnticone(block *dag.Block, anticone map[string]*dag.Block) {
	frontier := map[string]*dag.Block{block.Name: block}
	visited := map[string]bool{block.Name: true}

	for len(frontier) > 0 {
		next := make(map[string]*dag.Block)
		for _, b := range frontier {
			for parentName, parent := range b.Prev {
				if visited[parentName] {
					continue
				}
				visited[parentName] = true
				next[parentName] = parent
				delete(anticone, parentName)
			}
			for childName, child := range b.NextBlocks() {
				if visited[childName] {
					continue
				}
				visited[childName] = true
				next[childName] = child
				delete(anticone, childName)
			}
		}
		frontier = next
	}
}

func pickAny(blocks map[string]*dag.Block) string {
	for name := range blocks {
		return name
	}
	return ""
}

// Mine attempts one mining step on n: takes a credit, checks the required
// height floor, selects parents, inserts the block, and publishes it to
// the dispatcher. Returns the minted block name, or "" if this miner
// skipped its turn (out of credits or behind the frontier).
func Mine(blockName string, n *node.Node, token *MiningToken, k int, totalNodes int, disp *Dispatcher) string {
	if !token.Take() {
		return ""
	}

	if n.Height() < subOneOrZero(token.RequiredHeight()) {
		return ""
	}

	parents := selectParents(n, k)
	if !n.AddBlock(blockName, parents, k, true) {
		return ""
	}
	n.RecordMined()
	token.BumpRequiredHeight(n.Height())

	block, ok := n.Get(blockName)
	if !ok {
		return ""
	}
	disp.Publish(NewBlockRaw(block, totalNodes))

	return blockName
}

func subOneOrZero(h uint64) uint64 {
	if h == 0 {
		return 0
	}
	return h - 1
}

// randomJitter returns a random duration in [lo, hi) milliseconds, used by
// the controller and RX workers' polling sleeps (spec §5 suspension
// points).
func randomJitter(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rand.Intn(hi-lo)
}
