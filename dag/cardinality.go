package dag

// SizeofPastSet computes (size_of_past_set, size_of_past_blue) for block
// by inclusion-exclusion over a two-frontier BFS (spec §4.2).
//
// bmax, the parent with the largest SizeOfPastSet (lexicographic
// tie-break), contributes its entire past in O(1) via its cached counter;
// only the symmetric difference with the other parents' pasts needs
// enumerating. The "maxi" frontier (seeded from bmax) is advanced one
// past-step at a time until its reached height no longer exceeds the
// "rest" frontier's lowest height, which guarantees the maxi frontier has
// absorbed everything the rest frontier could also reach -- so whatever
// the rest frontier discovers past that point that is NOT already in maxi
// is genuinely new to the count.
func SizeofPastSet(block *Block) (uint64, uint64, error) {
	if len(block.Prev) == 0 {
		return 0, 0, nil
	}

	var maxSizeOfPast uint64
	var bmaxName string
	var sizeOfPastBlue uint64

	for _, parent := range block.Prev {
		if parent.IsGenesis() {
			return 1, 1, nil
		}
		if parent.SizeOfPastSet > maxSizeOfPast {
			maxSizeOfPast = parent.SizeOfPastSet
			bmaxName = parent.Name
		} else if parent.SizeOfPastSet == maxSizeOfPast && (bmaxName == "" || parent.Name < bmaxName) {
			bmaxName = parent.Name
		}

		if parent.Blue() {
			sizeOfPastBlue++
		}
	}

	if bmaxName == "" {
		return 0, 0, ErrBmaxNotFound
	}

	bmax := block.Prev[bmaxName]

	// sizeOfPastBlue already counts bmax itself once, if blue, from the
	// loop above. bmax.PastBlue() is bmax's OWN size_of_past_blue, which by
	// the strict-past convention excludes bmax -- so adding it here counts
	// bmax's blue ancestors without re-counting bmax.
	sizeOfPastBlue += bmax.PastBlue()

	sizeOfPast := maxSizeOfPast + uint64(len(block.Prev))

	maxiFrontier := map[string]*Block{bmaxName: bmax}
	restFrontier := make(map[string]*Block, len(block.Prev)-1)
	for name, parent := range block.Prev {
		if name == bmaxName {
			continue
		}
		restFrontier[name] = parent
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

		sizeOfPast += uint64(len(newRest))
		for _, restBlock := range newRest {
			if restBlock.Blue() {
				sizeOfPastBlue++
			}
		}

		restFrontier = newRest
	}

	return sizeOfPast, sizeOfPastBlue, nil
}

// stepOnePast expands pred by one generation of parents into newPred,
// skipping blocks already visited (tracked in used), and returns the
// max/min height observed among the newly discovered blocks, merging it
// into the running maxmin accumulator.
func stepOnePast(pred, newPred map[string]*Block, used map[string]bool, running *maxMin) maxMin {
	local := newMaxMin()

	for name, block := range pred {
		if used[name] {
			continue
		}
		used[name] = true

		for parentName, parent := range block.Prev {
			if _, seen := newPred[parentName]; seen {
				continue
			}
			newPred[parentName] = parent
			if parent.Height > local.max {
				local.max = parent.Height
			}
			if parent.Height < local.min {
				local.min = parent.Height
			}
		}
	}

	running.merge(local)
	return local
}
