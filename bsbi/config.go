// Package bsbi implements Blocked Sort-Based Indexing: a block-by-block scan
// of a corpus directory, per-block inversion into an intermediate index
// file, and a final k-way merge into one on-disk index.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHY BLOCKS?
// ═══════════════════════════════════════════════════════════════════════════════
// A naive inverted index build reads the whole corpus into memory, inverts
// it, and writes it out once. That caps corpus size at available RAM. BSBI
// instead treats every immediate sub-directory of the corpus root as one
// "block": each block is parsed and inverted independently, using memory
// proportional to one block rather than the whole corpus, and streamed to
// its own intermediate index file. A final external merge (package merge)
// unifies the per-block files into a single sorted index.
// ═══════════════════════════════════════════════════════════════════════════════
package bsbi

import "github.com/wizenheimer/blazebsbi/analyzer"

// IndexName is the final merged index's base filename within the output
// directory, matching the corpus layout spec.md §6 mandates.
const IndexName = "main_index"

// TermsDictName and DocsDictName are the serialized IdMap snapshots written
// alongside the final index.
const (
	TermsDictName = "terms.dict"
	DocsDictName  = "docs.dict"
)

// Config configures one indexing run.
type Config struct {
	// DataPath is the corpus root: a directory of block sub-directories.
	DataPath string

	// OutputPath is the directory intermediate and final index artifacts
	// are written to.
	OutputPath string

	// CodecName selects the postings codec ("raw32", "vbyte", or
	// "simple8b") used for both intermediate and final index files.
	CodecName string

	// Analyzer tokenizes, normalizes, and filters document text. Defaults
	// to analyzer.New() if nil.
	Analyzer analyzer.Analyzer

	// ProgressFunc, if non-nil, is called once per block as it completes,
	// letting a CLI render progress without the core depending on any UI
	// library.
	ProgressFunc func(blocksDone, blocksTotal int)
}

// withDefaults fills in zero-value fields with their defaults, returning a
// config safe to use without further nil checks.
func (c Config) withDefaults() Config {
	if c.Analyzer == nil {
		c.Analyzer = analyzer.New()
	}
	if c.CodecName == "" {
		c.CodecName = "vbyte"
	}
	return c
}
