package combinatorics

import "encoding/binary"

// bitset is a fixed-width set of small non-negative integers, used to
// represent candidate covers compactly — minimal_covers is the
// synthesizer's asymptotic hot loop, and subset/union/equality checks
// on word-sized chunks beat a map[int]struct{} by a wide margin.
type bitset struct {
	words []uint64
}

func newBitset(n int) bitset {
	return bitset{words: make([]uint64, (n+63)/64+1)}
}

func (b bitset) clone() bitset {
	w := make([]uint64, len(b.words))
	copy(w, b.words)
	return bitset{words: w}
}

func (b bitset) set(i int) { b.words[i/64] |= 1 << uint(i%64) }

func (b bitset) has(i int) bool { return b.words[i/64]&(1<<uint(i%64)) != 0 }

func (b bitset) union(o bitset) bitset {
	out := b.clone()
	for i := range out.words {
		out.words[i] |= o.words[i]
	}
	return out
}

func (b bitset) isSubsetOf(o bitset) bool {
	for i := range b.words {
		if b.words[i]&^o.words[i] != 0 {
			return false
		}
	}
	return true
}

func (b bitset) equal(o bitset) bool {
	for i := range b.words {
		if b.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

func (b bitset) strictSubsetOf(o bitset) bool {
	return b.isSubsetOf(o) && !b.equal(o)
}

func (b bitset) bits() []int {
	var out []int
	for i, w := range b.words {
		for j := 0; j < 64; j++ {
			if w&(1<<uint(j)) != 0 {
				out = append(out, i*64+j)
			}
		}
	}
	return out
}

// key is a canonical comparable representation usable as a map key, for
// deduplicating covers that were reached via different join orders.
func (b bitset) key() string {
	buf := make([]byte, len(b.words)*8)
	for i, w := range b.words {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
	return string(buf)
}
