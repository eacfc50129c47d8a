// Package indexfile implements the on-disk representation of one inverted
// index: an append-only posting stream plus a dictionary sidecar mapping
// each term_id to the byte range of its encoded postings within the stream.
//
// ═══════════════════════════════════════════════════════════════════════════════
// ON-DISK LAYOUT
// ═══════════════════════════════════════════════════════════════════════════════
// Two physical files per index ("main_index" and "main_index.dict", say):
//
//	posting stream:  [encoded postings for term 0][encoded postings for term 3]...
//	                  (opaque; only the dictionary can interpret offsets/lengths)
//
//	dictionary:      [uint32 entry count]
//	                  [uint64 term_id][uint64 offset][uint64 length][uint64 count] ...
//
// Dictionary entries are written in strictly ascending term_id order, and
// offset+length of entry k equals the offset of entry k+1 for contiguously
// written records - exactly the invariant spec.md §3 and §6 require.
// ═══════════════════════════════════════════════════════════════════════════════
package indexfile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wizenheimer/blazebsbi/codec"
)

// Sentinel errors.
var (
	ErrNonAscendingTermID = errors.New("indexfile: term_id must be strictly greater than the previously appended one")
	ErrNotAscending       = errors.New("indexfile: postings must be strictly ascending")
	ErrWriterFailed       = errors.New("indexfile: writer is in a failed state and must not be reused")
	ErrCorruptDictionary  = errors.New("indexfile: dictionary sidecar is truncated or malformed")
)

// DictEntry records the byte range of one term's encoded postings within the
// posting stream.
type DictEntry struct {
	TermID int
	Offset int64
	Length int64
	Count  int // number of doc_ids the decoder will produce
}

// dictPath is the sidecar file name for a posting stream at path.
func dictPath(path string) string {
	return path + ".dict"
}

// writeDictionary serializes entries to w in the format documented above.
func writeDictionary(w io.Writer, entries []DictEntry) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		vals := [4]uint64{uint64(e.TermID), uint64(e.Offset), uint64(e.Length), uint64(e.Count)}
		for _, v := range vals {
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// readDictionary deserializes entries written by writeDictionary.
func readDictionary(r io.Reader) ([]DictEntry, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		if err == io.EOF {
			return nil, ErrCorruptDictionary
		}
		return nil, err
	}

	entries := make([]DictEntry, count)
	for i := range entries {
		var vals [4]uint64
		for j := range vals {
			if err := binary.Read(r, binary.LittleEndian, &vals[j]); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCorruptDictionary, err)
			}
		}
		entries[i] = DictEntry{
			TermID: int(vals[0]),
			Offset: int64(vals[1]),
			Length: int64(vals[2]),
			Count:  int(vals[3]),
		}
	}
	return entries, nil
}

// isStrictlyAscending reports whether postings is sorted with no duplicates.
func isStrictlyAscending(postings []int) bool {
	for i := 1; i < len(postings); i++ {
		if postings[i] <= postings[i-1] {
			return false
		}
	}
	return true
}

// openBuffered opens path for reading and wraps it in a bufio.Reader,
// returning the underlying file so callers can Close it.
func openBuffered(path string) (*os.File, *bufio.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, bufio.NewReader(f), nil
}

// codecByName is a thin indirection so writer/reader call sites read as
// domain code rather than repeating the error-wrapping boilerplate.
func codecByName(name string) (codec.Codec, error) {
	c, err := codec.ByName(name)
	if err != nil {
		return nil, fmt.Errorf("indexfile: %w", err)
	}
	return c, nil
}
