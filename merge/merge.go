// Package merge implements the external k-way merge that unifies the BSBI
// driver's per-block intermediate indices into one final on-disk index.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHY A MIN-HEAP?
// ═══════════════════════════════════════════════════════════════════════════════
// Each intermediate index is already sorted by term_id (the BSBI driver wrote
// it that way). Merging N sorted streams into one sorted stream without
// reading them all into memory is the classic external-merge problem: keep
// one "next record" from each stream in a min-heap, repeatedly pop the
// smallest, advance that stream, and push its next record back in.
//
// Ties on term_id are broken by reader index so the merge is deterministic
// regardless of heap implementation details.
// ═══════════════════════════════════════════════════════════════════════════════
package merge

import (
	"container/heap"
	"fmt"

	"github.com/wizenheimer/blazebsbi/indexfile"
	"github.com/wizenheimer/blazebsbi/setops"
)

// Reader is the subset of indexfile.Reader the merger depends on, letting
// tests substitute an in-memory fake.
type Reader interface {
	Next() (termID int, postings []int, ok bool, err error)
}

// Writer is the subset of indexfile.Writer the merger depends on.
type Writer interface {
	Append(termID int, postings []int) error
}

var _ Reader = (*indexfile.Reader)(nil)
var _ Writer = (*indexfile.Writer)(nil)

// ErrNonAscendingTermID signals that a single reader yielded term_ids out of
// order - an invariant violation in the writer that produced that reader's
// file, not a condition the merger can recover from.
var ErrNonAscendingTermID = fmt.Errorf("merge: reader yielded a non-ascending term_id")

// entry is one (term_id, reader_index, postings) tuple resident in the heap.
type entry struct {
	termID      int
	readerIndex int
	postings    []int
}

// minHeap orders entries by (term_id, reader_index), matching spec.md §4.5's
// tie-breaking rule.
type minHeap []entry

func (h minHeap) Len() int { return len(h) }
func (h minHeap) Less(i, j int) bool {
	if h[i].termID != h[j].termID {
		return h[i].termID < h[j].termID
	}
	return h[i].readerIndex < h[j].readerIndex
}
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(entry)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Merge performs the k-way merge described in spec.md §4.5: it initializes a
// min-heap with the first record from each non-empty reader, then repeatedly
// pops the minimum, accumulates postings for repeated term_ids via sorted
// union, and emits each term's combined postings to writer exactly once, in
// strictly ascending term_id order.
func Merge(readers []Reader, writer Writer) error {
	h := &minHeap{}
	heap.Init(h)

	lastTermByReader := make([]int, len(readers))
	hasLastByReader := make([]bool, len(readers))

	advance := func(readerIndex int) error {
		termID, postings, ok, err := readers[readerIndex].Next()
		if err != nil {
			return fmt.Errorf("merge: reader %d: %w", readerIndex, err)
		}
		if !ok {
			return nil
		}
		if hasLastByReader[readerIndex] && termID <= lastTermByReader[readerIndex] {
			return fmt.Errorf("%w (reader %d)", ErrNonAscendingTermID, readerIndex)
		}
		lastTermByReader[readerIndex] = termID
		hasLastByReader[readerIndex] = true
		heap.Push(h, entry{termID: termID, readerIndex: readerIndex, postings: postings})
		return nil
	}

	for i := range readers {
		if err := advance(i); err != nil {
			return err
		}
	}

	var (
		currentTerm     int
		currentPostings []int
		hasCurrent      bool
	)

	for h.Len() > 0 {
		e := heap.Pop(h).(entry)

		if hasCurrent && e.termID != currentTerm {
			if err := writer.Append(currentTerm, currentPostings); err != nil {
				return fmt.Errorf("merge: append term %d: %w", currentTerm, err)
			}
			currentPostings = nil
		}

		currentTerm = e.termID
		hasCurrent = true
		if len(currentPostings) == 0 {
			currentPostings = e.postings
		} else {
			currentPostings = setops.Union(currentPostings, e.postings)
		}

		if err := advance(e.readerIndex); err != nil {
			return err
		}
	}

	if hasCurrent && len(currentPostings) > 0 {
		if err := writer.Append(currentTerm, currentPostings); err != nil {
			return fmt.Errorf("merge: append term %d: %w", currentTerm, err)
		}
	}
	return nil
}
