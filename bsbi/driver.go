package bsbi

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/wizenheimer/blazebsbi/idmap"
	"github.com/wizenheimer/blazebsbi/indexfile"
	"github.com/wizenheimer/blazebsbi/merge"
)

// Driver runs one full indexing pass: block scan, per-block inversion,
// IdMap persistence, and the final external merge.
type Driver struct {
	cfg     Config
	TermIDs *idmap.IdMap
	DocIDs  *idmap.IdMap
}

// NewDriver returns a Driver ready to index cfg.DataPath into cfg.OutputPath.
func NewDriver(cfg Config) *Driver {
	return &Driver{
		cfg:     cfg.withDefaults(),
		TermIDs: idmap.New(),
		DocIDs:  idmap.New(),
	}
}

// StartIndexing performs the five BSBI steps: enumerate blocks, parse and
// invert each one into its own intermediate index file, persist the IdMaps,
// and merge the intermediates into the final index. ctx is checked only at
// block and merge-step boundaries - no operation within a block suspends or
// yields, matching the core's single-threaded, synchronous resource model.
func (d *Driver) StartIndexing(ctx context.Context) error {
	blocks, err := listBlocks(d.cfg.DataPath)
	if err != nil {
		return fmt.Errorf("bsbi: list blocks: %w", err)
	}

	var intermediatePaths []string
	for i, block := range blocks {
		if err := ctx.Err(); err != nil {
			return err
		}

		intermediatePath := filepath.Join(d.cfg.OutputPath, "intermediate_index_"+block)
		if err := d.indexBlock(block, intermediatePath); err != nil {
			return fmt.Errorf("bsbi: index block %q: %w", block, err)
		}
		intermediatePaths = append(intermediatePaths, intermediatePath)

		if d.cfg.ProgressFunc != nil {
			d.cfg.ProgressFunc(i+1, len(blocks))
		}
	}

	if err := d.saveIdMaps(); err != nil {
		return fmt.Errorf("bsbi: save id maps: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.mergeIntermediates(intermediatePaths); err != nil {
		return fmt.Errorf("bsbi: merge intermediates: %w", err)
	}
	return nil
}

// listBlocks returns the immediate sub-directories of root, sorted
// lexicographically, matching spec.md §6's traversal-order mandate.
func listBlocks(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var blocks []string
	for _, e := range entries {
		if e.IsDir() {
			blocks = append(blocks, e.Name())
		}
	}
	sort.Strings(blocks)
	return blocks, nil
}

// listDocs returns the regular files directly within blockDir, sorted
// lexicographically.
func listDocs(blockDir string) ([]string, error) {
	entries, err := os.ReadDir(blockDir)
	if err != nil {
		return nil, err
	}
	var docs []string
	for _, e := range entries {
		if !e.IsDir() {
			docs = append(docs, e.Name())
		}
	}
	sort.Strings(docs)
	return docs, nil
}

// indexBlock parses every document in block, inverts the resulting
// (term_id, doc_id) pairs using a per-term roaring.Bitmap accumulator, and
// writes the result to an intermediate index file at intermediatePath.
//
// The bitmap plays the same role here as the teacher's DocBitmaps field in
// its whole-corpus InvertedIndex: a term -> set<doc_id> accumulator. Scoping
// it to one block bounds its memory to one block's vocabulary instead of the
// whole corpus, and Bitmap.Iterator() already yields ascending doc_ids, so
// no separate sort step is needed before writing.
func (d *Driver) indexBlock(block, intermediatePath string) error {
	blockDir := filepath.Join(d.cfg.DataPath, block)
	docNames, err := listDocs(blockDir)
	if err != nil {
		return err
	}

	accumulator := make(map[int]*roaring.Bitmap)

	for _, docName := range docNames {
		docKey := filepath.Join(block, docName)
		docID := d.DocIDs.Intern(docKey)

		content, err := os.ReadFile(filepath.Join(blockDir, docName))
		if err != nil {
			return fmt.Errorf("read %s: %w", docKey, err)
		}

		for _, token := range d.cfg.Analyzer.Tokens(string(content)) {
			termID := d.TermIDs.Intern(token)
			bm, ok := accumulator[termID]
			if !ok {
				bm = roaring.NewBitmap()
				accumulator[termID] = bm
			}
			bm.Add(uint32(docID))
		}
	}

	termIDs := make([]int, 0, len(accumulator))
	for termID := range accumulator {
		termIDs = append(termIDs, termID)
	}
	sort.Ints(termIDs)

	w, err := indexfile.Create(intermediatePath, d.cfg.CodecName)
	if err != nil {
		return err
	}
	for _, termID := range termIDs {
		postings := bitmapToInts(accumulator[termID])
		if err := w.Append(termID, postings); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

func bitmapToInts(bm *roaring.Bitmap) []int {
	postings := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		postings = append(postings, int(it.Next()))
	}
	return postings
}

func (d *Driver) saveIdMaps() error {
	termBytes, err := d.TermIDs.Save()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(d.cfg.OutputPath, TermsDictName), termBytes, 0o644); err != nil {
		return err
	}

	docBytes, err := d.DocIDs.Save()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.cfg.OutputPath, DocsDictName), docBytes, 0o644)
}

// mergeIntermediates opens every intermediate index file as a merge.Reader,
// merges them into the final index via merge.Merge, and releases every
// reader regardless of how the merge ends.
func (d *Driver) mergeIntermediates(intermediatePaths []string) error {
	readers := make([]*indexfile.Reader, 0, len(intermediatePaths))
	defer func() {
		for _, r := range readers {
			r.Close()
		}
	}()

	mergeReaders := make([]merge.Reader, 0, len(intermediatePaths))
	for _, path := range intermediatePaths {
		r, err := indexfile.Open(path, d.cfg.CodecName)
		if err != nil {
			return err
		}
		readers = append(readers, r)
		mergeReaders = append(mergeReaders, r)
	}

	w, err := indexfile.Create(filepath.Join(d.cfg.OutputPath, IndexName), d.cfg.CodecName)
	if err != nil {
		return err
	}

	if err := merge.Merge(mergeReaders, w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
