package codec

import "encoding/binary"

// Simple8bGap gap-encodes a postings list and then packs the gaps into
// 64-bit big-endian words using the Simple-8b scheme: the low 4 bits of each
// word hold a selector in [0, 15] identifying how the remaining 60 bits are
// divided into fixed-width integers.
//
// Example:
//
//	postings := make([]int, 360) // 1, 2, 3, ..., 360
//	for i := range postings { postings[i] = i + 1 }
//	Simple8bGap{}.Encode(postings)
//	// every gap is 1: the first 240 pack into one word with selector 0,
//	// the remaining 120 pack into a second word with selector 1
type Simple8bGap struct{}

func (Simple8bGap) Name() string { return "simple8b" }

// selectorEntry describes one row of the Simple-8b selector table: how many
// bits each packed integer occupies, and how many integers fit in a word
// under that selector.
type selectorEntry struct {
	bits  uint
	count int
}

// simple8bSelectors is the fixed selector table from the Simple-8b paper.
// Index 0 and 1 are special-cased runs of 1s; the rest hold bits/count pairs.
var simple8bSelectors = [16]selectorEntry{
	{0, 240}, {0, 120}, {1, 60}, {2, 30},
	{3, 20}, {4, 15}, {5, 12}, {6, 10},
	{7, 8}, {8, 7}, {10, 6}, {12, 5},
	{15, 4}, {20, 3}, {30, 2}, {60, 1},
}

func (Simple8bGap) Encode(postings []int) ([]byte, error) {
	g, err := gaps(postings)
	if err != nil {
		return nil, err
	}

	var buf []byte
	i := 0
	for i < len(g) {
		sel, err := findSelector(g[i:])
		if err != nil {
			return nil, err
		}
		entry := simple8bSelectors[sel]

		var word uint64
		if sel == 0 || sel == 1 {
			word = uint64(sel)
			i += entry.count
		} else {
			word = uint64(sel)
			for j := 0; j < entry.count; j++ {
				word |= uint64(g[i+j]) << (4 + entry.bits*uint(j))
			}
			i += entry.count
		}

		var wordBytes [8]byte
		binary.BigEndian.PutUint64(wordBytes[:], word)
		buf = append(buf, wordBytes[:]...)
	}
	return buf, nil
}

// findSelector greedily picks the smallest selector index whose word fully
// packs a prefix of g: selector 0 if at least 240 leading gaps equal 1,
// selector 1 if at least 120 do, otherwise the smallest sel >= 2 whose
// count-many leading gaps all fit in bits.
func findSelector(g []int) (int, error) {
	if len(g) >= 240 && allOnes(g[:240]) {
		return 0, nil
	}
	if len(g) >= 120 && allOnes(g[:120]) {
		return 1, nil
	}
	for sel := 2; sel < 16; sel++ {
		entry := simple8bSelectors[sel]
		if len(g) < entry.count {
			continue
		}
		if fitsInBits(g[:entry.count], entry.bits) {
			return sel, nil
		}
	}
	return 0, ErrGapTooLarge
}

func allOnes(g []int) bool {
	for _, v := range g {
		if v != 1 {
			return false
		}
	}
	return true
}

func fitsInBits(g []int, bits uint) bool {
	limit := 1 << bits
	for _, v := range g {
		if v < 0 || v >= limit {
			return false
		}
	}
	return true
}

func (Simple8bGap) Decode(data []byte) ([]int, error) {
	if len(data) == 0 || len(data)%8 != 0 {
		return nil, ErrCorruptStream
	}

	var g []int
	for off := 0; off < len(data); off += 8 {
		word := binary.BigEndian.Uint64(data[off : off+8])
		sel := int(word & 0xF)
		if sel < 0 || sel > 15 {
			return nil, ErrCorruptStream
		}
		entry := simple8bSelectors[sel]
		switch sel {
		case 0:
			g = append(g, onesN(240)...)
		case 1:
			g = append(g, onesN(120)...)
		default:
			mask := uint64(1<<entry.bits) - 1
			for j := 0; j < entry.count; j++ {
				v := int((word >> (4 + entry.bits*uint(j))) & mask)
				g = append(g, v)
			}
		}
	}
	if len(g) == 0 {
		return nil, ErrCorruptStream
	}
	return undoGaps(g), nil
}

func onesN(n int) []int {
	ones := make([]int, n)
	for i := range ones {
		ones[i] = 1
	}
	return ones
}
