// Package dag implements the per-node block-DAG maintenance and k-cluster
// blue-set selection engine of a PHANTOM/GHOSTDAG-family consensus: a
// block store with derived-metadata bookkeeping (height, size-of-past,
// size-of-past-blue), a tip tracker, a two-frontier anticone engine, and
// the blue/red classification itself.
package dag

import "sync"

// unclassifiedAnticoneBlue is the sentinel size_of_anticone_blue carries
// before a block has been through CalcBlue.
const unclassifiedAnticoneBlue = -1

// GenesisName is the reserved name of the unique root block: no parents,
// always blue, anticone-blue zero.
const GenesisName = "Genesis"

// Block is the unit of consensus. Name, Height, SizeOfPastSet and Prev are
// immutable once the block is inserted and therefore need no lock. IsBlue,
// SizeOfAnticoneBlue, SizeOfPastBlue, Next and TipsSnapshot can change
// after insertion (blue re-classification, child linking) and are guarded
// by mu.
type Block struct {
	Name          string
	Height        uint64
	SizeOfPastSet uint64
	Prev          map[string]*Block

	mu                 sync.RWMutex
	next               map[string]*Block
	isBlue             bool
	sizeOfPastBlue     uint64
	sizeOfAnticoneBlue int64
	tipsSnapshot       map[string]*Block
}

func newBlock(name string) *Block {
	return &Block{
		Name:               name,
		Prev:               make(map[string]*Block),
		next:               make(map[string]*Block),
		sizeOfAnticoneBlue: unclassifiedAnticoneBlue,
	}
}

// IsGenesis reports whether this block is the DAG's root.
func (b *Block) IsGenesis() bool {
	return b.Name == GenesisName
}

// Blue reports whether the block is currently classified blue.
func (b *Block) Blue() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.isBlue
}

// setBlue marks the block blue with the given blue-anticone size.
func (b *Block) setBlue(anticoneBlue int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.isBlue = true
	b.sizeOfAnticoneBlue = int64(anticoneBlue)
}

// clearBlue resets the block to unclassified. Used on the other tips when
// a new block becomes the blue frontier leader (first step of calc_blue
// Case A).
func (b *Block) clearBlue() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.isBlue = false
	b.sizeOfAnticoneBlue = unclassifiedAnticoneBlue
}

// AnticoneBlueSize returns the running blue-anticone counter, or -1 if the
// block has not yet been classified by CalcBlue.
func (b *Block) AnticoneBlueSize() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sizeOfAnticoneBlue
}

// incAnticoneBlue bumps the blue-anticone counter by one: check_blue's
// effect on every block in a newly-blue block's anticone.
func (b *Block) incAnticoneBlue() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sizeOfAnticoneBlue++
}

// PastBlue returns size_of_past_blue.
func (b *Block) PastBlue() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.sizeOfPastBlue
}

// setPastBlue overwrites size_of_past_blue. Invoked from CalcBlue's
// post-reclassification recomputation (spec Open Question 2); Store.Add
// sets the initial value directly.
func (b *Block) setPastBlue(v uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sizeOfPastBlue = v
}

// NextNames returns a snapshot copy of the child names. Copying under a
// short read lock and releasing before any recursive traversal is the
// discipline the whole package follows to avoid reentrant deadlocks.
func (b *Block) NextNames() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.next))
	for name := range b.next {
		names = append(names, name)
	}
	return names
}

// NextBlocks returns a snapshot copy of the child set itself, under the
// same short-lock discipline as NextNames.
func (b *Block) NextBlocks() map[string]*Block {
	b.mu.RLock()
	defer b.mu.RUnlock()
	children := make(map[string]*Block, len(b.next))
	for name, child := range b.next {
		children[name] = child
	}
	return children
}

// addNext links child as one of b's children.
func (b *Block) addNext(child *Block) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next[child.Name] = child
}

// TipsSnapshot returns the frozen tip set recorded at insertion time.
func (b *Block) TipsSnapshot() map[string]*Block {
	b.mu.RLock()
	defer b.mu.RUnlock()
	snap := make(map[string]*Block, len(b.tipsSnapshot))
	for name, tip := range b.tipsSnapshot {
		snap[name] = tip
	}
	return snap
}

func (b *Block) setTipsSnapshot(tips map[string]*Block) {
	b.mu.Lock()
	defer b.mu.Unlock()
	snap := make(map[string]*Block, len(tips))
	for name, tip := range tips {
		snap[name] = tip
	}
	b.tipsSnapshot = snap
}

// PrevNames returns the parent names. Prev is immutable after insertion so
// no lock is required to read it.
func (b *Block) PrevNames() []string {
	names := make([]string, 0, len(b.Prev))
	for name := range b.Prev {
		names = append(names, name)
	}
	return names
}

// maxMin tracks the running max/min height seen while expanding a frontier
// by one past-step; recovered from original_source/block.rs's MaxMin.
type maxMin struct {
	max uint64
	min uint64
}

func newMaxMin() maxMin {
	return maxMin{max: 0, min: ^uint64(0)}
}

func (m *maxMin) merge(other maxMin) {
	if other.max > m.max {
		m.max = other.max
	}
	if other.min < m.min {
		m.min = other.min
	}
}

// appendBlockMap copies every entry of src into dst.
func appendBlockMap(dst, src map[string]*Block) {
	for name, block := range src {
		dst[name] = block
	}
}
