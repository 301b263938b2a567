package dag

import (
	"github.com/pkg/errors"

	"github.com/daglabs/ghostdagsim/logger"
)

var blueLog, _ = logger.Get(logger.SubsystemTags.BLUE)

// DAGView is the minimal slice of node state CalcBlue needs: the full
// block map, the current tip set, and the classmates index. node.AddBlock
// builds one from its store and tip tracker; tests can build a bare
// DAGView without spinning up a full Node.
type DAGView struct {
	Blocks     map[string]*Block
	Tips       map[string]*Block
	Classmates map[uint64][]string
}

// CalcBlue classifies block (already inserted, tips already updated) as
// blue or red under the k-cluster rule, propagating updates through its
// anticone (spec §4.5). Genesis is blue unconditionally with
// size_of_anticone_blue = 0 and is handled by Store.Add directly; CalcBlue
// is a no-op if asked to reclassify it.
//
// This is the "lazy" k-cluster variant: once a block is classified blue
// within a CalcBlue pass, it is never demoted in that same pass, even if
// its anticone-blue counter later reaches k (spec Open Question 1 -- the
// source's demotion branch is deliberately left unimplemented).
func CalcBlue(blockName string, view *DAGView, k int) error {
	block, ok := view.Blocks[blockName]
	if !ok {
		return errors.Wrapf(ErrBlockNotFound, "calc_blue: %s", blockName)
	}

	if block.IsGenesis() {
		return nil
	}

	if len(view.Tips) == 0 {
		blueLog.Errorf("calc_blue: tips must not be empty (block=%s)", blockName)
		return nil
	}

	scoreOrder := stpq(view.Tips)
	bmaxName := scoreOrder[0]

	if bmaxName == blockName {
		return calcBlueCaseA(blockName, view, k)
	}
	return calcBlueCaseB(blockName, view, k)
}

// calcBlueCaseA handles the case where the new block has the highest blue
// past among tips and is therefore a blue frontier leader: every tip is
// re-evaluated against it, then every non-blue block in the new block's
// anticone is re-evaluated, and finally size_of_past_blue is recomputed
// for everything touched.
func calcBlueCaseA(blockName string, view *DAGView, k int) error {
	for name, tip := range view.Tips {
		if name != blockName {
			tip.clearBlue()
		}
	}

	for _, name := range stpq(view.Tips) {
		blueCount, blueAnticone := TipsAnticoneBlue(name, view.Tips, k)
		if blueCount < 0 || blueCount > k {
			continue
		}
		view.Tips[name].setBlue(blueCount)
		checkBlue(blueAnticone)
	}

	anticoneOfNew := TipsAnticone(blockName, view.Tips)
	touched := ltpq(anticoneOfNew)

	for _, name := range touched {
		block := view.Blocks[name]
		if block == nil || block.Blue() {
			continue
		}

		blueCount, blueAnticone := AnticoneBlue(name, view.Classmates, view.Blocks, view.Tips, k)
		if blueCount < 0 || blueCount > k {
			continue
		}

		block.setBlue(blueCount)
		checkBlue(blueAnticone)
	}

	for _, name := range touched {
		block := view.Blocks[name]
		if block == nil {
			continue
		}
		_, pastBlue, err := SizeofPastSet(block)
		if err != nil {
			return err
		}
		block.setPastBlue(pastBlue)
	}

	return nil
}

// calcBlueCaseB handles the case where the new block is not the blue
// frontier leader: only the new block itself can become newly blue.
func calcBlueCaseB(blockName string, view *DAGView, k int) error {
	blueCount, blueAnticone := TipsAnticoneBlue(blockName, view.Tips, k)
	if blueCount < 0 || blueCount > k {
		return nil
	}

	view.Tips[blockName].setBlue(blueCount)
	checkBlue(blueAnticone)
	return nil
}

// checkBlue increments size_of_anticone_blue for every block in the
// passed anticone, because the block that triggered this pass has just
// become blue and now sits in each of their anticones.
func checkBlue(blueAnticone map[string]*Block) {
	for _, block := range blueAnticone {
		block.incAnticoneBlue()
	}
}
