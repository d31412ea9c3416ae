package combinatorics

// MinimalCovers enumerates every inclusion-minimal subset of set indices
// in [0, numSets) whose union covers every element of toCover, under the
// membership predicate contains(e, setIndex). Covers are returned as
// sorted slices of set indices.
//
// Procedure: for each element, compute its candidate set indices; an
// empty candidate set means no cover exists at all. A singleton
// candidate forces that index into every cover. Remaining (non-singleton)
// elements are folded in one at a time, joining each live cover with
// every one of that element's candidates and then discarding any result
// that is a strict superset of another — this keeps the live set
// inclusion-minimal throughout instead of only at the end.
func MinimalCovers[E any](numSets int, toCover []E, contains func(e E, setIndex int) bool) [][]int {
	necessary := newBitset(numSets)
	var optional [][]int
	for _, e := range toCover {
		var candidates []int
		for i := 0; i < numSets; i++ {
			if contains(e, i) {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			return nil
		}
		if len(candidates) == 1 {
			necessary.set(candidates[0])
		} else {
			optional = append(optional, candidates)
		}
	}

	covers := []bitset{necessary}
	for _, candidates := range optional {
		var next []bitset
		for _, cover := range covers {
			alreadyCovered := false
			for _, c := range candidates {
				if cover.has(c) {
					alreadyCovered = true
					break
				}
			}
			if alreadyCovered {
				next = append(next, cover)
				continue
			}
			for _, c := range candidates {
				extended := cover.clone()
				extended.set(c)
				next = append(next, extended)
			}
		}
		covers = pruneNonMinimal(next)
	}

	out := make([][]int, 0, len(covers))
	for _, c := range covers {
		out = append(out, c.bits())
	}
	return out
}

func pruneNonMinimal(covers []bitset) []bitset {
	dedup := make(map[string]bitset, len(covers))
	for _, c := range covers {
		dedup[c.key()] = c
	}
	deduped := make([]bitset, 0, len(dedup))
	for _, c := range dedup {
		deduped = append(deduped, c)
	}
	result := make([]bitset, 0, len(deduped))
	for _, c := range deduped {
		minimal := true
		for _, other := range deduped {
			if other.strictSubsetOf(c) {
				minimal = false
				break
			}
		}
		if minimal {
			result = append(result, c)
		}
	}
	return result
}
