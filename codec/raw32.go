package codec

import "encoding/binary"

// Raw32 stores each document ID as a 4-byte little-endian unsigned integer,
// concatenated with no further compression. It is the simplest codec and the
// baseline the other two are measured against.
//
// Example:
//
//	Raw32{}.Encode([]int{34, 67, 89, 454}) // 16 bytes, 4 bytes per value
type Raw32 struct{}

// maxUint32 is the largest value Raw32 can represent: 2^32 - 1.
const maxUint32 = 1<<32 - 1

func (Raw32) Name() string { return "raw32" }

func (Raw32) Encode(postings []int) ([]byte, error) {
	if len(postings) == 0 {
		return nil, ErrEmptyPostings
	}
	prev := -1
	buf := make([]byte, 4*len(postings))
	for i, v := range postings {
		if v <= prev {
			return nil, ErrNotAscending
		}
		if v < 0 || v > maxUint32 {
			return nil, ErrValueOverflow
		}
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(v))
		prev = v
	}
	return buf, nil
}

func (Raw32) Decode(data []byte) ([]int, error) {
	if len(data)%4 != 0 {
		return nil, ErrCorruptStream
	}
	n := len(data) / 4
	postings := make([]int, n)
	for i := 0; i < n; i++ {
		postings[i] = int(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return postings, nil
}
