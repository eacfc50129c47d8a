// Package codec implements the pluggable posting-list codecs.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS A POSTING-LIST CODEC?
// ═══════════════════════════════════════════════════════════════════════════════
// A posting list is a strictly ascending sequence of document IDs that contain
// a given term. Stored naively (one 4-byte int per doc ID) it is simple but
// wasteful: most postings lists are dense runs of nearby IDs, and the gaps
// between consecutive IDs are almost always much smaller than the IDs
// themselves.
//
// Three interchangeable codecs are provided, from simplest to most compact:
//
//	Raw32       fixed 4-byte little-endian ints, no compression
//	VByteGap    gap-encode, then variable-byte encode each gap
//	Simple8bGap gap-encode, then bit-pack gaps 1-240 per 64-bit word
//
// All three satisfy the same contract:
//
//	decode(encode(xs)) == xs   for every strictly ascending, non-empty xs
//
// ═══════════════════════════════════════════════════════════════════════════════
package codec

import "errors"

// Sentinel errors, defined as package-level variables so callers can compare
// with errors.Is.
var (
	ErrEmptyPostings    = errors.New("codec: postings list must not be empty")
	ErrNotAscending     = errors.New("codec: postings list must be strictly ascending")
	ErrValueOverflow    = errors.New("codec: value exceeds codec's representable width")
	ErrCorruptStream    = errors.New("codec: malformed encoded byte stream")
	ErrGapTooLarge      = errors.New("codec: gap exceeds 60 bits, cannot be Simple-8b encoded")
	ErrUnknownCodecName = errors.New("codec: unknown codec name")
)

// Codec transforms a strictly ascending sequence of non-negative document IDs
// to and from a compact byte representation. Implementations are stateless and
// safe for concurrent use.
type Codec interface {
	// Encode serializes postings, which must be strictly ascending and
	// non-empty, into a byte buffer. It returns ErrValueOverflow or
	// ErrGapTooLarge if a value cannot be represented.
	Encode(postings []int) ([]byte, error)

	// Decode reverses Encode. The returned slice is always strictly ascending.
	Decode(data []byte) ([]int, error)

	// Name identifies the codec, used for on-disk index metadata and the CLI's
	// --codec flag.
	Name() string
}

// ByName returns the codec registered under name.
//
// Example:
//
//	c, err := codec.ByName("vbyte")
func ByName(name string) (Codec, error) {
	switch name {
	case (Raw32{}).Name():
		return Raw32{}, nil
	case (VByteGap{}).Name():
		return VByteGap{}, nil
	case (Simple8bGap{}).Name():
		return Simple8bGap{}, nil
	default:
		return nil, ErrUnknownCodecName
	}
}

// gaps transforms a strictly ascending postings list into its gap sequence:
// g[0] = ps[0], g[i] = ps[i] - ps[i-1] for i >= 1.
//
// Example: [34, 67, 89, 454] -> [34, 33, 22, 365]
func gaps(postings []int) ([]int, error) {
	if len(postings) == 0 {
		return nil, ErrEmptyPostings
	}
	g := make([]int, len(postings))
	g[0] = postings[0]
	for i := 1; i < len(postings); i++ {
		gap := postings[i] - postings[i-1]
		if gap <= 0 {
			return nil, ErrNotAscending
		}
		g[i] = gap
	}
	return g, nil
}

// undoGaps prefix-sums a gap sequence back into the original ascending
// postings list.
func undoGaps(g []int) []int {
	postings := make([]int, len(g))
	sum := 0
	for i, gap := range g {
		sum += gap
		postings[i] = sum
	}
	return postings
}
