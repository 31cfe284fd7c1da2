package huffman

import (
	"container/heap"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// Build counts the symbols in the input and constructs a canonical Huffman
// code for them.  Every distinct symbol receives a code of at least 1 bit,
// even when the input holds only one distinct symbol.
//
// When two tree nodes have the same frequency, the node created first wins:
// leaves are created in order of each symbol's first appearance, before any
// internal node, and internal nodes in the order they are merged.  The same
// input therefore always yields the same table.
//
func Build[S comparable](symbols []S) *CodeTable[S] {
	order, freqs := countFrequencies(symbols)
	return buildFromCounts(order, freqs)
}

// BuildFromFrequencies constructs a canonical Huffman code from explicit
// symbol frequencies.  Symbols with a frequency of 0 are omitted.  The order
// of the symbols slice breaks frequency ties, as with Build.
//
// Codes are limited to MaxCodeSize bits.  Frequencies skewed enough to need
// longer codes (for example, 66 or more Fibonacci numbers) are flattened by
// repeated halving until the tree fits, so those codes are no longer optimal.
//
func BuildFromFrequencies[S comparable](symbols []S, frequencies []uint64) *CodeTable[S] {
	assert.Assertf(len(symbols) == len(frequencies), "len(symbols) %d != len(frequencies) %d", len(symbols), len(frequencies))

	order := make([]S, 0, len(symbols))
	freqs := make([]uint64, 0, len(symbols))
	seen := make(map[S]struct{}, len(symbols))
	for index, symbol := range symbols {
		_, dupe := seen[symbol]
		assert.Assertf(!dupe, "symbol %v listed more than once", symbol)
		seen[symbol] = struct{}{}
		if frequencies[index] != 0 {
			order = append(order, symbol)
			freqs = append(freqs, frequencies[index])
		}
	}
	return buildFromCounts(order, freqs)
}

// countFrequencies returns the distinct symbols in order of first appearance,
// along with the number of occurrences of each one.
func countFrequencies[S comparable](symbols []S) ([]S, []uint64) {
	index := make(map[S]int)
	var order []S
	var freqs []uint64
	for _, symbol := range symbols {
		i, found := index[symbol]
		if !found {
			i = len(order)
			index[symbol] = i
			order = append(order, symbol)
			freqs = append(freqs, 0)
		}
		freqs[i]++
	}
	return order, freqs
}

func buildFromCounts[S comparable](order []S, freqs []uint64) *CodeTable[S] {
	numLeaves := uint32(len(order))
	sizes := make([]byte, numLeaves)
	codes := make(map[S]Code, numLeaves)

	if numLeaves <= 2 {
		for index := uint32(0); index < numLeaves; index++ {
			codes[order[index]] = MakeCode(1, uint64(index))
		}
	} else {
		for firstPass(sizes, freqs) > MaxCodeSize {
			freqs = flatten(freqs)
		}
		secondPass(sizes, order, codes)
	}

	t := &CodeTable[S]{
		codes:   codes,
		symbols: make([]S, 0, numLeaves),
	}
	t.symbols = append(t.symbols, order...)
	t.sortSymbols()
	return t
}

// node is an entry in the tree arena.  Indices [0, numLeaves) are leaves,
// in the same order as the symbols they stand for; internal nodes follow in
// creation order.
type node struct {
	freq  uint64
	left  int32
	right int32
}

// flatten returns the frequencies halved, rounding up so that none becomes 0.
// Repeated flattening ends with every frequency equal to 1, which yields a
// balanced tree.
func flatten(freqs []uint64) []uint64 {
	out := make([]uint64, len(freqs))
	for index, freq := range freqs {
		out[index] = freq>>1 + freq&1
	}
	return out
}

// firstPass computes the "first pass" of Huffman code assignment, which is to
// determine and populate sizes[leaf], the code length of each leaf.  It
// returns the largest code length.  When that exceeds MaxCodeSize, sizes is
// not usable.
func firstPass(sizes []byte, freqs []uint64) int {
	numLeaves := uint32(len(freqs))
	nodeLog := log2uint32(numLeaves)

	// Step 1: place the leaves in the arena and build a minheap over them.

	nodes := make([]node, 0, 2*numLeaves-1)
	for _, freq := range freqs {
		nodes = append(nodes, node{freq: freq, left: -1, right: -1})
	}

	h := freqHeap{nodes: nodes, list: make([]int32, numLeaves)}
	for index := range h.list {
		h.list[index] = int32(index)
	}
	h.Init()

	// Step 2: process the minheap by popping two nodes, combining them
	// into a new internal node, and pushing the new node back onto the
	// minheap.

	for h.Len() > 1 {
		a := heap.Pop(&h).(int32)
		b := heap.Pop(&h).(int32)

		freqSum := saturatingAdd(h.nodes[a].freq, h.nodes[b].freq)
		h.nodes = append(h.nodes, node{freq: freqSum, left: a, right: b})
		heap.Push(&h, int32(len(h.nodes)-1))
	}
	nodes = h.nodes

	// root is the root of our tree.  This is not the *actual* Huffman code
	// tree that we'll be using, because it's not necessarily canonical,
	// but it's good enough to tell us the bit length for each leaf's
	// canonical code.
	root := heap.Pop(&h).(int32)

	// Step 3: use a stack to walk the tree.
	//
	// The current stack depth tells us how many bits are in the Huffman
	// code for a leaf reached from the top of the stack.  Leaves never get
	// pushed onto the stack, only internal nodes.
	//
	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		n int32
		x byte
	}

	stack := make([]stackItem, 0, nodeLog)
	maxSize := 0

	processChild := func(child int32) {
		if uint32(child) >= numLeaves {
			stack = append(stack, stackItem{n: child})
			return
		}
		size := len(stack)
		if size > maxSize {
			maxSize = size
		}
		if size <= MaxCodeSize {
			sizes[child] = byte(size)
		}
	}

	stack = append(stack, stackItem{n: root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			processChild(nodes[top.n].left)
		case 1:
			processChild(nodes[top.n].right)
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
	return maxSize
}

// secondPass computes the "second pass" of Huffman code assignment, which
// involves transforming the sizes from phase one into a canonical Huffman
// code.
func secondPass[S comparable](sizes []byte, order []S, codes map[S]Code) {
	// Step 1: sort the leaves by (size, leaf index) ascending.

	sorted := make(leavesBySize, 0, len(sizes))
	for leaf, size := range sizes {
		sorted = append(sorted, leafAndSize{int32(leaf), size})
	}
	sorted.Sort()

	// Step 2: assign the codes sequentially, per the algorithm detailed at
	// <https://en.wikipedia.org/w/index.php?title=Canonical_Huffman_code&oldid=999983137>.
	//
	// The canonical value is written most significant bit first, so it is
	// reversed to put the first bit in the least significant position.

	lastSize := sorted[0].size
	nextCode := uint64(0)
	for _, item := range sorted {
		if item.size > lastSize {
			nextCode <<= (item.size - lastSize)
			lastSize = item.size
		}
		codes[order[item.leaf]] = MakeReversedCode(item.size, nextCode)
		nextCode++
	}
}

// type freqHeap {{{

type freqHeap struct {
	nodes []node
	list  []int32
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	fa, fb := h.nodes[a].freq, h.nodes[b].freq
	if fa != fb {
		return fa < fb
	}
	return a < b
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(int32))
}

func (h *freqHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}

// type leafAndSize + type leavesBySize {{{

type leafAndSize struct {
	leaf int32
	size byte
}

type leavesBySize []leafAndSize

func (list leavesBySize) Len() int {
	return len(list)
}

func (list leavesBySize) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list leavesBySize) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.size != b.size {
		return a.size < b.size
	}
	return a.leaf < b.leaf
}

func (list leavesBySize) Sort() {
	sort.Sort(list)
}

var _ sort.Interface = leavesBySize(nil)

// }}}
