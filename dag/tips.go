package dag

// Tips maintains the leaf set of a DAG (blocks with no known children) and
// the classmates index (blocks sharing a height), per spec §4.4.
type Tips struct {
	blocks     map[string]*Block
	classmates map[uint64][]string
}

// NewTips returns an empty tip tracker.
func NewTips() *Tips {
	return &Tips{
		blocks:     make(map[string]*Block),
		classmates: make(map[uint64][]string),
	}
}

// All returns the current tip set.
func (t *Tips) All() map[string]*Block {
	return t.blocks
}

// Classmates returns the names of every block at the given height.
func (t *Tips) Classmates() map[uint64][]string {
	return t.classmates
}

// RecordClassmate appends block's name to the classmates list at its
// height, skipping a duplicate if it is already recorded there. This
// happens on every insertion regardless of whether the tip set itself is
// updated -- classmates is the height index AnticoneBlue needs to
// synthesize virtual tip sets for non-tip blocks.
func (t *Tips) RecordClassmate(block *Block) {
	existing := t.classmates[block.Height]
	for _, name := range existing {
		if name == block.Name {
			return
		}
	}
	t.classmates[block.Height] = append(existing, block.Name)
}

// Update removes every parent of newBlock from the tip set, inserts
// newBlock, and snapshots the post-update tip set onto newBlock itself
// (spec §4.4).
func (t *Tips) Update(newBlock *Block) {
	for parentName := range newBlock.Prev {
		delete(t.blocks, parentName)
	}
	t.blocks[newBlock.Name] = newBlock

	newBlock.setTipsSnapshot(t.blocks)
}
