package combinatorics

// MaximalElements returns the elements of xs not strictly dominated by
// any other element, under a preorder comparator le(a, b) meaning
// "a is no greater than b" — le need not be antisymmetric, so distinct
// elements may compare equivalent.
//
// One round drains the queue against a single surviving candidate e1:
// anything e1 already dominates is discarded, anything that beats e1
// replaces it, and anything incomparable with e1 is deferred to the
// next round, unless the round's final e1 dominates it. Output order is
// stable up to ties.
func MaximalElements[T any](xs []T, le func(a, b T) bool) []T {
	queue := append([]T(nil), xs...)
	var result []T
	for len(queue) > 0 {
		e1 := queue[0]
		rest := queue[1:]
		var buffer []T
		for _, e2 := range rest {
			switch {
			case le(e2, e1):
				// e2 is no greater than e1: dominated (or equivalent), drop it.
			case le(e1, e2):
				// e1 is beaten by e2: e2 becomes the surviving candidate.
				e1 = e2
			default:
				buffer = append(buffer, e2)
			}
		}
		result = append(result, e1)
		// Deferred elements were only incomparable with the candidate of
		// their moment; drop those the final e1 dominates.
		queue = queue[:0]
		for _, b := range buffer {
			if !le(b, e1) {
				queue = append(queue, b)
			}
		}
	}
	return result
}
