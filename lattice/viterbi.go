package lattice

import "github.com/rspamd/kagome-go/dict"

// Mode selects the tokenization strategy: plain segmentation, or one of
// two search-oriented modes that additionally penalize long morphemes
// (spec §4.7.1) to favor smaller, more searchable units.
type Mode uint8

const (
	ModeNormal Mode = iota + 1
	ModeSearch
	ModeExtended
)

// Search-mode penalty constants (spec §4.7.1), grounded on the C++
// original's SEARCH_MODE_KANJI_LENGTH/PENALTY and
// SEARCH_MODE_OTHER_LENGTH/PENALTY.
const (
	searchModeKanjiLength = 2
	searchModeKanjiPenalty = 3000
	searchModeOtherLength  = 7
	searchModeOtherPenalty = 1700
)

// additional computes the search-mode penalty charged to predecessor p —
// never to the target — per spec §4.7.1. Normal mode never penalizes.
func additional(p *Node, mode Mode) int64 {
	if mode == ModeNormal {
		return 0
	}
	n := p.CharLen()
	if n > searchModeKanjiLength && isIdeographicOnly(p.Surface) {
		return int64(n-searchModeKanjiLength) * searchModeKanjiPenalty
	}
	if n > searchModeOtherLength {
		return int64(n-searchModeOtherLength) * searchModeOtherPenalty
	}
	return 0
}

func saturate(v int64) int64 {
	if v > MaximumCost {
		return MaximumCost
	}
	return v
}

// stepCost computes the cost of extending path through predecessor p to
// target t, per spec §4.7.1: connection cost (0 if either side is
// User-class), plus t's intrinsic weight, plus the mode's search
// penalty charged to p.
func stepCost(d *dict.Dict, p, t *Node, mode Mode) int64 {
	var conn int64
	if p.Class != ClassUser && t.Class != ClassUser {
		conn = int64(d.Connection(p.RightID, t.LeftID))
	}
	return conn + int64(t.Weight) + additional(p, mode)
}

// Forward runs the forward cost-minimization pass over every bucket in
// ascending position order (spec §4.7.2).
func Forward(l *Lattice, d *dict.Dict, mode Mode) {
	bos := l.Node(l.Buckets[0][0])
	bos.Cost = 0

	for i := 1; i < len(l.Buckets); i++ {
		for _, idx := range l.Buckets[i] {
			t := l.Node(idx)
			predBucket := l.Buckets[t.CharPos]
			if len(predBucket) == 0 {
				t.Cost = MaximumCost
				t.Prev = -1
				continue
			}
			var best int64
			bestPrev := int32(-1)
			found := false
			for _, pIdx := range predBucket {
				p := l.Node(pIdx)
				if p.Cost >= MaximumCost {
					continue
				}
				total := saturate(p.Cost + stepCost(d, p, t, mode))
				if !found || total < best {
					best = total
					bestPrev = pIdx
					found = true
				}
			}
			if !found {
				t.Cost = MaximumCost
				t.Prev = -1
			} else {
				t.Cost = best
				t.Prev = bestPrev
			}
		}
	}
}

// Backward walks the best path from EOS to BOS and returns it in
// BOS->EOS order (spec §4.7.3). In Extended mode, every Unknown-class
// node on the path is exploded into one Dummy node per code point of its
// surface, preserving byte positions, to support unigram indexing
// without rerunning search.
func Backward(l *Lattice, mode Mode) []Node {
	lastBucket := l.Buckets[len(l.Buckets)-1]
	if len(lastBucket) == 0 {
		return nil
	}
	eos := l.Node(lastBucket[0])
	if eos.Cost >= MaximumCost {
		return nil
	}

	var reversed []Node
	for idx := lastBucket[0]; idx != -1; {
		n := l.Node(idx)
		reversed = append(reversed, *n)
		idx = n.Prev
	}

	out := make([]Node, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		n := reversed[i]
		if mode == ModeExtended && n.Class == ClassUnknown {
			out = append(out, explodeUnigrams(n)...)
			continue
		}
		out = append(out, n)
	}
	return out
}

// explodeUnigrams splits n into one Dummy node per code point of its
// surface, preserving byte and character positions.
func explodeUnigrams(n Node) []Node {
	var out []Node
	bytePos := n.BytePos
	charPos := n.CharPos
	b := n.Surface
	for len(b) > 0 {
		_, size := decodeRuneImpl(b)
		if size == 0 {
			size = 1
		}
		out = append(out, Node{
			ID:      n.ID,
			BytePos: bytePos,
			CharPos: charPos,
			Class:   ClassDummy,
			Surface: b[:size],
		})
		bytePos += size
		charPos++
		b = b[size:]
	}
	return out
}
