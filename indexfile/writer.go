package indexfile

import (
	"bufio"
	"fmt"
	"os"

	"github.com/wizenheimer/blazebsbi/codec"
)

// Writer is a scoped resource that accumulates (term_id, encoded_postings)
// records into an append-only posting stream, in strictly ascending term_id
// order, and flushes a dictionary sidecar on Close.
//
// A Writer must not be reused after Append returns an error: its output file
// is considered corrupt from that point on.
type Writer struct {
	path    string
	file    *os.File
	out     *bufio.Writer
	codec   codec.Codec
	offset  int64
	lastID  int
	hasLast bool
	entries []DictEntry
	failed  bool
}

// Create opens path for writing and returns a Writer using the named codec.
func Create(path string, codecName string) (*Writer, error) {
	c, err := codecByName(codecName)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("indexfile: create %s: %w", path, err)
	}

	return &Writer{
		path:  path,
		file:  f,
		out:   bufio.NewWriter(f),
		codec: c,
	}, nil
}

// Append encodes postings with the writer's codec and appends the bytes to
// the posting stream, recording a dictionary entry for term_id.
//
// Precondition: term_id is strictly greater than any term_id appended so far
// in this writer, and postings is sorted strictly ascending. Violating either
// precondition marks the writer failed and returns an error; a failed writer
// must not be used again.
func (w *Writer) Append(termID int, postings []int) error {
	if w.failed {
		return ErrWriterFailed
	}
	if w.hasLast && termID <= w.lastID {
		w.failed = true
		return ErrNonAscendingTermID
	}
	if !isStrictlyAscending(postings) {
		w.failed = true
		return ErrNotAscending
	}

	data, err := w.codec.Encode(postings)
	if err != nil {
		w.failed = true
		return fmt.Errorf("indexfile: encode term %d: %w", termID, err)
	}

	n, err := w.out.Write(data)
	if err != nil {
		w.failed = true
		return fmt.Errorf("indexfile: write term %d: %w", termID, err)
	}

	w.entries = append(w.entries, DictEntry{
		TermID: termID,
		Offset: w.offset,
		Length: int64(n),
		Count:  len(postings),
	})
	w.offset += int64(n)
	w.lastID = termID
	w.hasLast = true
	return nil
}

// Close flushes the posting stream and writes the dictionary sidecar. It is
// safe to call once, on every exit path, including after a failed Append (in
// which case the partially-written files are closed but left in place as a
// diagnostic, matching the "file is corrupt" policy of the on-disk format).
func (w *Writer) Close() error {
	flushErr := w.out.Flush()
	closeErr := w.file.Close()

	dictErr := w.writeDictionarySidecar()

	if flushErr != nil {
		return fmt.Errorf("indexfile: flush %s: %w", w.path, flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("indexfile: close %s: %w", w.path, closeErr)
	}
	return dictErr
}

func (w *Writer) writeDictionarySidecar() error {
	f, err := os.Create(dictPath(w.path))
	if err != nil {
		return fmt.Errorf("indexfile: create dictionary %s: %w", dictPath(w.path), err)
	}
	defer f.Close()

	buf := bufio.NewWriter(f)
	if err := writeDictionary(buf, w.entries); err != nil {
		return fmt.Errorf("indexfile: write dictionary %s: %w", dictPath(w.path), err)
	}
	return buf.Flush()
}
