package dag

// TipsAnticone returns the set of blocks concurrent with tip given the
// current tip set tips: blocks reachable from tips\{tip} but not from tip
// itself (spec §4.3.1). It walks the same two-frontier past-step idiom as
// SizeofPastSet, seeding the maxi-frontier with tip and the rest-frontier
// with every other tip.
func TipsAnticone(tipName string, tips map[string]*Block) map[string]*Block {
	anticone := make(map[string]*Block)

	if len(tips) == 0 {
		return anticone
	}

	tip, ok := tips[tipName]
	if !ok {
		return anticone
	}

	maxiFrontier := map[string]*Block{tipName: tip}
	restFrontier := make(map[string]*Block)
	for name, t := range tips {
		if name == tipName {
			continue
		}
		restFrontier[name] = t
		anticone[name] = t
	}

	usedRest := make(map[string]bool)
	usedMaxi := make(map[string]bool)
	restMaxMin := newMaxMin()
	maxiMaxMin := newMaxMin()

	for len(restFrontier) > 0 {
		newRest := make(map[string]*Block)
		stepOnePast(restFrontier, newRest, usedRest, &restMaxMin)

		for {
			newMaxi := make(map[string]*Block)
			localMaxMin := stepOnePast(maxiFrontier, newMaxi, usedMaxi, &maxiMaxMin)
			appendBlockMap(maxiFrontier, newMaxi)
			if localMaxMin.max <= restMaxMin.min {
				break
			}
		}

		for name := range newRest {
			if _, inMaxi := maxiFrontier[name]; inMaxi {
				delete(newRest, name)
			}
		}

		appendBlockMap(anticone, newRest)
		restFrontier = newRest
	}

	return anticone
}

// TipsAnticoneBlue behaves like TipsAnticone but only counts/collects blue
// blocks, exiting as soon as the blue count exceeds k (spec §4.3.2). It
// returns (-1, nil) if tip is not a member of tips, or tips is empty.
func TipsAnticoneBlue(tipName string, tips map[string]*Block, k int) (int, map[string]*Block) {
	if len(tips) == 0 {
		return -1, nil
	}
	tip, ok := tips[tipName]
	if !ok {
		return -1, nil
	}

	blueAnticone := make(map[string]*Block)
	blueCount := 0

	maxiFrontier := map[string]*Block{tipName: tip}
	restFrontier := make(map[string]*Block)
	for name, t := range tips {
		if name == tipName {
			continue
		}
		restFrontier[name] = t
		if t.Blue() {
			blueAnticone[name] = t
			blueCount++
		}
	}
	if blueCount > k {
		return blueCount, blueAnticone
	}

	usedRest := make(map[string]bool)
	usedMaxi := make(map[string]bool)
	restMaxMin := newMaxMin()
	maxiMaxMin := newMaxMin()

	for len(restFrontier) > 0 {
		newRest := make(map[string]*Block)
		stepOnePast(restFrontier, newRest, usedRest, &restMaxMin)

		for {
			newMaxi := make(map[string]*Block)
			localMaxMin := stepOnePast(maxiFrontier, newMaxi, usedMaxi, &maxiMaxMin)
			appendBlockMap(maxiFrontier, newMaxi)
			if localMaxMin.max <= restMaxMin.min {
				break
			}
		}

		for name := range newRest {
			if _, inMaxi := maxiFrontier[name]; inMaxi {
				delete(newRest, name)
			}
		}

		for name, b := range newRest {
			if b.Blue() {
				blueAnticone[name] = b
				blueCount++
			}
		}

		if blueCount > k {
			return blueCount, blueAnticone
		}

		restFrontier = newRest
	}

	return blueCount, blueAnticone
}

// TipsAnticoneBlueRev is TipsAnticoneBlue's future-cone counterpart: it
// walks via Next instead of Prev, used to discover blue anticone members
// that are descendants of the given tips (spec §4.3.3).
func TipsAnticoneBlueRev(tipName string, tips map[string]*Block, k int) (int, map[string]*Block) {
	if len(tips) == 0 {
		return -1, nil
	}
	tip, ok := tips[tipName]
	if !ok {
		return -1, nil
	}

	blueAnticone := make(map[string]*Block)
	blueCount := 0

	maxiFrontier := map[string]*Block{tipName: tip}
	restFrontier := make(map[string]*Block)
	for name, t := range tips {
		if name == tipName {
			continue
		}
		restFrontier[name] = t
		if t.Blue() {
			blueAnticone[name] = t
			blueCount++
		}
	}
	if blueCount > k {
		return blueCount, blueAnticone
	}

	usedRest := make(map[string]bool)
	usedMaxi := make(map[string]bool)
	restMaxMin := newMaxMin()
	maxiMaxMin := newMaxMin()

	for len(restFrontier) > 0 {
		newRest := make(map[string]*Block)
		stepOneFuture(restFrontier, newRest, usedRest, &restMaxMin)

		for {
			newMaxi := make(map[string]*Block)
			localMaxMin := stepOneFuture(maxiFrontier, newMaxi, usedMaxi, &maxiMaxMin)
			appendBlockMap(maxiFrontier, newMaxi)
			if localMaxMin.max <= restMaxMin.min {
				break
			}
		}

		for name := range newRest {
			if _, inMaxi := maxiFrontier[name]; inMaxi {
				delete(newRest, name)
			}
		}

		for name, b := range newRest {
			if b.Blue() {
				blueAnticone[name] = b
				blueCount++
			}
		}

		if blueCount > k {
			return blueCount, blueAnticone
		}

		restFrontier = newRest
	}

	return blueCount, blueAnticone
}

// stepOneFuture is stepOnePast's mirror image, expanding through Next
// instead of Prev.
func stepOneFuture(pred, newPred map[string]*Block, used map[string]bool, running *maxMin) maxMin {
	local := newMaxMin()

	for name, block := range pred {
		if used[name] {
			continue
		}
		used[name] = true

		for childName, child := range block.NextBlocks() {
			if _, seen := newPred[childName]; seen {
				continue
			}
			newPred[childName] = child
			if child.Height > local.max {
				local.max = child.Height
			}
			if child.Height < local.min {
				local.min = child.Height
			}
		}
	}

	running.merge(local)
	return local
}

// AnticoneBlue generalizes TipsAnticoneBlue to any block not necessarily a
// current tip (spec §4.3.4). If any is itself a tip, it delegates directly.
// Otherwise it synthesizes a virtual tip set from classmates at any's
// height (blocks never have classmates only when any is Genesis in a
// well-formed DAG, per spec Open Question 3), evaluates the past-direction
// half against that virtual set, and -- unless already over k -- evaluates
// the future-direction half via TipsAnticoneBlueRev, summing and unioning
// the two halves.
func AnticoneBlue(anyName string, classmates map[uint64][]string, dagBlocks map[string]*Block, tips map[string]*Block, k int) (int, map[string]*Block) {
	if _, isTip := tips[anyName]; isTip {
		return TipsAnticoneBlue(anyName, tips, k)
	}

	any, ok := dagBlocks[anyName]
	if !ok {
		return -1, nil
	}

	sameHeight, ok := classmates[any.Height]
	if !ok || len(sameHeight) == 0 {
		return -1, nil
	}

	virtualTips := make(map[string]*Block, len(sameHeight))
	for _, name := range sameHeight {
		if block, ok := dagBlocks[name]; ok {
			virtualTips[name] = block
		}
	}

	leftCount, leftSet := TipsAnticoneBlue(anyName, virtualTips, k)
	if leftCount < 0 {
		return -1, nil
	}
	if leftCount > k {
		return leftCount, leftSet
	}

	rightCount, rightSet := TipsAnticoneBlueRev(anyName, virtualTips, k)
	if rightCount < 0 {
		return leftCount, leftSet
	}

	total := leftCount + rightCount
	combined := make(map[string]*Block, len(leftSet)+len(rightSet))
	appendBlockMap(combined, leftSet)
	appendBlockMap(combined, rightSet)

	return total, combined
}
