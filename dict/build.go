package dict

import "sort"

// DATEntry is one (key, id) pair to compile into a double-array trie.
// Keys must be distinct; duplicate surfaces sharing one key are
// expressed separately via the resulting DAT's Dup map, not by
// repeating a key here.
type DATEntry struct {
	Key []byte
	ID  int32
}

// buildTrieNode is the intermediate, map-keyed trie used only during
// compilation; the double array itself never holds a node of this shape.
type buildTrieNode struct {
	children   map[byte]*buildTrieNode
	terminalID int32 // -1 when this node is not itself a complete key
}

func newBuildTrieNode() *buildTrieNode {
	return &buildTrieNode{children: make(map[byte]*buildTrieNode), terminalID: -1}
}

// BuildDAT compiles a flat set of entries into a double-array trie,
// following the construction described by spec §3's lookup algorithm in
// reverse: each trie node picks a collision-free base so every child
// (including the reserved terminator byte 0x00 for complete keys) lands
// on a free, distinctly-owned slot.
func BuildDAT(entries []DATEntry) *DAT {
	root := newBuildTrieNode()
	for _, e := range entries {
		node := root
		for _, b := range e.Key {
			child, ok := node.children[b]
			if !ok {
				child = newBuildTrieNode()
				node.children[b] = child
			}
			node = child
		}
		node.terminalID = e.ID
	}

	d := &DAT{
		Base:  []int32{0},
		Check: []int32{-1},
		Dup:   map[int32]int32{},
	}

	type queued struct {
		node  *buildTrieNode
		state int32
	}
	queue := []queued{{root, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		ports := make([]int, 0, len(cur.node.children)+1)
		if cur.node.terminalID >= 0 {
			ports = append(ports, 0x00)
		}
		for b := range cur.node.children {
			ports = append(ports, int(b))
		}
		if len(ports) == 0 {
			continue
		}
		sort.Ints(ports)

		base := d.findFreeBase(ports)
		d.ensureLen(int(base) + 256)
		d.Base[cur.state] = base

		for _, p := range ports {
			q := base + int32(p)
			d.Check[q] = cur.state
			if p == 0x00 {
				d.Base[q] = -cur.node.terminalID
				continue
			}
			child := cur.node.children[byte(p)]
			queue = append(queue, queued{child, q})
		}
	}
	return d
}

// findFreeBase returns the smallest base >= 1 such that base+p is
// unoccupied (Check == -1) for every port p.
func (d *DAT) findFreeBase(ports []int) int32 {
	for base := int32(1); ; base++ {
		d.ensureLen(int(base) + 256)
		ok := true
		for _, p := range ports {
			if d.Check[int(base)+p] != -1 {
				ok = false
				break
			}
		}
		if ok {
			return base
		}
	}
}

// ensureLen grows Base/Check to at least n entries, padding Check with
// the "unowned" sentinel -1.
func (d *DAT) ensureLen(n int) {
	if len(d.Base) >= n {
		return
	}
	grownBase := make([]int32, n)
	grownCheck := make([]int32, n)
	copy(grownBase, d.Base)
	copy(grownCheck, d.Check)
	for i := len(d.Check); i < n; i++ {
		grownCheck[i] = -1
	}
	d.Base = grownBase
	d.Check = grownCheck
}
