package lattice

import (
	"log"
	"sync"

	"github.com/rspamd/kagome-go/dict"
)

// maxUnknownWordRun bounds a single unknown-word candidate's character
// length (spec §4.6, §5, §7's RuntimeBudgetExceeded). Exceeding it is not
// an error: the run is truncated and a warning fires once per process.
const maxUnknownWordRun = 1024

// catchAllMorphID is the sentinel id for an unknown-category catch-all
// node, matching the C++ original's id = -2 convention for "category has
// no configured unknown-word entry, insert a zero-cost connective node
// anyway so the lattice stays connected."
const catchAllMorphID int32 = -2

// Lattice is the per-call, single-use candidate graph: a flat node arena
// (spec §9's design note, avoiding per-node heap allocation and pointer
// aliasing) plus a bucket index by character position.
type Lattice struct {
	Input     []byte
	Nodes     []Node
	Buckets   [][]int32
	CharCount int

	truncatedOnce bool
}

func (l *Lattice) addNode(n Node, bucket int) int32 {
	idx := int32(len(l.Nodes))
	n.Prev = -1
	l.Nodes = append(l.Nodes, n)
	l.Buckets[bucket] = append(l.Buckets[bucket], idx)
	return idx
}

// Node returns the node at arena index idx.
func (l *Lattice) Node(idx int32) *Node {
	return &l.Nodes[idx]
}

// Build constructs the lattice for input against dictionary d and an
// optional user dictionary, following spec §4.6's three-step insertion
// order: user dictionary, system dictionary, then unknown words.
func Build(d *dict.Dict, user *dict.UserDict, input []byte) *Lattice {
	nChars := charCount(input)
	l := &Lattice{
		Input:     input,
		Buckets:   make([][]int32, nChars+2),
		CharCount: nChars,
	}
	l.addNode(Node{ID: bosEosID, Class: ClassDummy}, 0)

	bytePos := 0
	charPos := 0
	for bytePos < len(input) {
		r, rsize := decodeRune(input[bytePos:])
		if r == replacementRune && rsize == 1 {
			// an invalid byte, not a valid encoding of U+FFFD: skip it
			// without inserting any candidate, so no token ever spans
			// an invalid sequence (spec §4.4, §8).
			bytePos++
			continue
		}
		longest := 0

		userHits := 0
		if user != nil {
			user.CommonPrefixSearch(input[bytePos:], func(h dict.Hit) bool {
				userHits++
				surface := input[bytePos : bytePos+h.Length]
				end := charPos + charCount(surface)
				l.addNode(Node{
					ID:      h.ID,
					BytePos: bytePos,
					CharPos: charPos,
					Class:   ClassUser,
					Surface: surface,
				}, end)
				if clen := end - charPos; clen > longest {
					longest = clen
				}
				return true
			})
		}

		systemHits := 0
		d.DatSearch(input[bytePos:], func(h dict.Hit) bool {
			systemHits++
			surface := input[bytePos : bytePos+h.Length]
			end := charPos + charCount(surface)
			m := d.Morph(h.ID)
			l.addNode(Node{
				ID:      h.ID,
				BytePos: bytePos,
				CharPos: charPos,
				Class:   ClassKnown,
				LeftID:  m.LeftID,
				RightID: m.RightID,
				Weight:  m.Weight,
				Surface: surface,
			}, end)
			if clen := end - charPos; clen > longest {
				longest = clen
			}
			return true
		})

		category := d.Category(r)
		hadHits := userHits > 0 || systemHits > 0
		if !hadHits || d.Invoke(category) {
			grouped := l.groupUnknownRun(d, input, bytePos, category, r, rsize)
			grpLen := charCount(grouped)
			base, dup, ok := d.UnknownEntryRange(category)
			if !ok {
				l.addNode(Node{
					ID:      catchAllMorphID,
					BytePos: bytePos,
					CharPos: charPos,
					Class:   ClassUnknown,
					Surface: grouped,
				}, charPos+grpLen)
				if grpLen > longest {
					longest = grpLen
				}
			} else {
				for k := int32(0); k <= dup; k++ {
					id := base + k
					m := d.Morph(id)
					if grpLen > 1 {
						shortSurface := shortenByOneRune(grouped)
						shortLen := charCount(shortSurface)
						l.addNode(Node{
							ID:      id,
							BytePos: bytePos,
							CharPos: charPos,
							Class:   ClassUnknown,
							LeftID:  m.LeftID,
							RightID: m.RightID,
							Weight:  m.Weight,
							Surface: shortSurface,
						}, charPos+shortLen)
						if shortLen > longest {
							longest = shortLen
						}
					}
					l.addNode(Node{
						ID:      id,
						BytePos: bytePos,
						CharPos: charPos,
						Class:   ClassUnknown,
						LeftID:  m.LeftID,
						RightID: m.RightID,
						Weight:  m.Weight,
						Surface: grouped,
					}, charPos+grpLen)
					if grpLen > longest {
						longest = grpLen
					}
				}
			}
		}

		if longest == 0 {
			// nothing matched at this position at all (should only be
			// reachable for an unmapped category with no catch-all,
			// which addNode above always prevents); advance by one rune
			// defensively so the loop always terminates.
			longest = 1
			if rsize == 0 {
				rsize = 1
			}
		}
		charPos += longest
		bytePos += advanceBytes(input[bytePos:], longest)
	}

	l.addNode(Node{ID: bosEosID, Class: ClassDummy, CharPos: nChars, BytePos: len(input)}, nChars+1)
	return l
}

// groupUnknownRun extends the unknown-word surface starting at bytePos
// across subsequent code points sharing category c, when d.Group(c) is
// set, up to maxUnknownWordRun characters.
func (l *Lattice) groupUnknownRun(d *dict.Dict, input []byte, bytePos int, c dict.CharCategory, first rune, firstSize int) []byte {
	if firstSize == 0 {
		firstSize = 1
	}
	end := bytePos + firstSize
	if !d.Group(c) {
		return input[bytePos:end]
	}
	chars := 1
	for end < len(input) && chars < maxUnknownWordRun {
		r, size := decodeRune(input[end:])
		if size == 0 {
			break
		}
		if d.Category(r) != c {
			break
		}
		end += size
		chars++
	}
	if chars >= maxUnknownWordRun && end < len(input) {
		if r, size := decodeRune(input[end:]); size > 0 && d.Category(r) == c {
			l.warnTruncated()
		}
	}
	return input[bytePos:end]
}

// truncationWarning ensures the truncation warning is logged at most once
// per process.
var truncationWarning sync.Once

func (l *Lattice) warnTruncated() {
	// RuntimeBudgetExceeded (spec §7) is a warning, not an error: the
	// lattice records it (see Truncated) and a log line is written the
	// first time it happens in the process.
	l.truncatedOnce = true
	truncationWarning.Do(func() {
		log.Printf("lattice: unknown-word run truncated at %d characters", maxUnknownWordRun)
	})
}

// Truncated reports whether any unknown-word run in this lattice hit the
// 1024-character cap.
func (l *Lattice) Truncated() bool {
	return l.truncatedOnce
}

// shortenByOneRune drops the last code point of a UTF-8 byte slice.
func shortenByOneRune(b []byte) []byte {
	if len(b) == 0 {
		return b
	}
	i := len(b) - 1
	for i > 0 && isUTF8Continuation(b[i]) {
		i--
	}
	return b[:i]
}

func isUTF8Continuation(b byte) bool {
	return b&0xC0 == 0x80
}

// decodeRune decodes one UTF-8 rune from b, returning size 0 only for an
// empty slice.
func decodeRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return 0, 0
	}
	r, size := decodeRuneImpl(b)
	return r, size
}

// advanceBytes returns the byte length consumed by the first n
// characters of b (counted the same way charCount does: invalid
// sequences are skipped without advancing the character count, but they
// still consume bytes).
func advanceBytes(b []byte, n int) int {
	consumed := 0
	chars := 0
	for chars < n && consumed < len(b) {
		r, size := decodeRuneImpl(b[consumed:])
		consumed += size
		if r != replacementRune || size != 1 {
			chars++
		}
	}
	return consumed
}
