package dag

import (
	"sort"

	"github.com/daglabs/ghostdagsim/logger"
	"github.com/pkg/errors"
)

var log, _ = logger.Get(logger.SubsystemTags.DAG)

// Store owns every Block in a node's DAG, keyed by name, and maintains the
// bidirectional prev/next adjacency (invariant: Y ∈ X.Next ⇔ X ∈ Y.Prev).
// Store is not itself safe for unsynchronized concurrent mutation; callers
// (node.Node) hold their own enclosing lock around Add, matching the
// teacher's per-node-lock discipline (spec §5).
type Store struct {
	blocks map[string]*Block
}

// NewStore returns an empty block store.
func NewStore() *Store {
	return &Store{blocks: make(map[string]*Block)}
}

// Get looks up a block by name.
func (s *Store) Get(name string) (*Block, bool) {
	b, ok := s.blocks[name]
	return b, ok
}

// Len returns the number of blocks held.
func (s *Store) Len() int {
	return len(s.blocks)
}

// All returns the underlying name->Block mapping. Callers performing
// blue-sensitive iteration must wrap it in SortedByHeight rather than
// ranging directly (spec §4.5 ordering discipline).
func (s *Store) All() map[string]*Block {
	return s.blocks
}

// Add creates a new block named name with parents prevNames, links it
// bidirectionally to each parent (which must already exist in the store),
// computes its height and past-set cardinalities, and inserts it. It
// returns ErrDuplicateBlock if name is already present, and
// ErrUnknownParent (wrapped with the offending name) if any parent is
// missing.
func (s *Store) Add(name string, prevNames []string) (*Block, error) {
	if _, exists := s.blocks[name]; exists {
		return nil, ErrDuplicateBlock
	}

	block := newBlock(name)

	for _, parentName := range prevNames {
		parent, ok := s.blocks[parentName]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownParent, "block=%s parent=%s", name, parentName)
		}

		block.Prev[parentName] = parent
		if parent.Height+1 > block.Height {
			block.Height = parent.Height + 1
		}
	}

	for _, parent := range block.Prev {
		parent.addNext(block)
	}

	if name == GenesisName {
		block.isBlue = true
		block.sizeOfAnticoneBlue = 0
	} else {
		pastSize, pastBlue, err := SizeofPastSet(block)
		if err != nil {
			return nil, errors.Wrapf(err, "block=%s", name)
		}
		block.SizeOfPastSet = pastSize
		block.sizeOfPastBlue = pastBlue
	}

	s.blocks[name] = block

	log.Debugf("added block %s at height %d, size_of_past_set=%d", name, block.Height, block.SizeOfPastSet)

	return block, nil
}

// SortedByHeight returns (name, height) pairs for every block in dag,
// ordered by height ascending, tie-broken lexicographically by name. This
// tie-break is load-bearing for determinism across every blue-sensitive
// traversal in this package.
func SortedByHeight(blocks map[string]*Block) []NameHeight {
	pairs := make([]NameHeight, 0, len(blocks))
	for name, block := range blocks {
		pairs = append(pairs, NameHeight{Name: name, Height: block.Height})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Height != pairs[j].Height {
			return pairs[i].Height < pairs[j].Height
		}
		return pairs[i].Name < pairs[j].Name
	})
	return pairs
}

// NameHeight is a (block name, height) pair, the result shape of
// SortedByHeight and the anticone-reporting operations in the spec.
type NameHeight struct {
	Name   string
	Height uint64
}
