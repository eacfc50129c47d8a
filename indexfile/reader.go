package indexfile

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/wizenheimer/blazebsbi/codec"
)

// Reader is a scoped resource that loads an index file's dictionary into
// memory and opens its posting stream for random-access reads.
//
// Two access patterns are supported:
//   - sequential iteration via Next, in ascending term_id order
//   - random lookup via GetPostings, using the in-memory dictionary
//
// Both decode on demand; no postings are materialized until requested.
type Reader struct {
	path    string
	file    *os.File
	codec   codec.Codec
	entries []DictEntry
	byTerm  map[int]int // term_id -> index into entries, for GetPostings
	next    int         // cursor into entries, for sequential iteration

	warnMissingBytesOnce sync.Once
}

// Open loads path's dictionary sidecar and opens the posting stream for
// reading, using the named codec to decode postings.
func Open(path string, codecName string) (*Reader, error) {
	c, err := codecByName(codecName)
	if err != nil {
		return nil, err
	}

	dictFile, dictReader, err := openBuffered(dictPath(path))
	if err != nil {
		return nil, fmt.Errorf("indexfile: open dictionary %s: %w", dictPath(path), err)
	}
	entries, err := readDictionary(dictReader)
	dictFile.Close()
	if err != nil {
		return nil, fmt.Errorf("indexfile: read dictionary %s: %w", dictPath(path), err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("indexfile: open %s: %w", path, err)
	}

	byTerm := make(map[int]int, len(entries))
	for i, e := range entries {
		byTerm[e.TermID] = i
	}

	return &Reader{
		path:    path,
		file:    f,
		codec:   c,
		entries: entries,
		byTerm:  byTerm,
	}, nil
}

// Close releases the underlying file handle. Safe to call once, on every
// exit path.
func (r *Reader) Close() error {
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("indexfile: close %s: %w", r.path, err)
	}
	return nil
}

// Next yields the index's records in ascending term_id order, decoding each
// posting list on demand. ok is false once every record has been yielded.
func (r *Reader) Next() (termID int, postings []int, ok bool, err error) {
	if r.next >= len(r.entries) {
		return 0, nil, false, nil
	}
	e := r.entries[r.next]
	r.next++

	postings, err = r.decodeEntry(e)
	if err != nil {
		return 0, nil, false, err
	}
	return e.TermID, postings, true, nil
}

// GetPostings looks up term_id's postings via the dictionary. It returns an
// empty list, not an error, if term_id has no entry - a missing term at
// query time is a recoverable condition, not a failure.
func (r *Reader) GetPostings(termID int) ([]int, error) {
	i, ok := r.byTerm[termID]
	if !ok {
		return []int{}, nil
	}
	return r.decodeEntry(r.entries[i])
}

func (r *Reader) decodeEntry(e DictEntry) ([]int, error) {
	buf := make([]byte, e.Length)
	if _, err := r.file.ReadAt(buf, e.Offset); err != nil {
		// A dictionary-recorded range that can't be read back is treated as
		// an empty list, not a fatal error, but we log it once per reader so
		// the condition isn't invisible to an operator.
		r.warnMissingBytesOnce.Do(func() {
			slog.Warn("indexfile: dictionary-recorded bytes missing from posting stream",
				slog.String("path", r.path), slog.Int("term_id", e.TermID))
		})
		return []int{}, nil
	}

	postings, err := r.codec.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("indexfile: decode term %d in %s: %w", e.TermID, r.path, err)
	}
	if len(postings) != e.Count {
		return nil, fmt.Errorf("indexfile: term %d in %s: decoded %d postings, dictionary says %d",
			e.TermID, r.path, len(postings), e.Count)
	}
	return postings, nil
}
