// Package analyzer provides the default text-analysis pipeline used by the
// BSBI driver and the query evaluator.
//
// ═══════════════════════════════════════════════════════════════════════════════
// WHY A SEPARATE PACKAGE?
// ═══════════════════════════════════════════════════════════════════════════════
// The indexing core only ever consumes a stream of normalized term strings
// per document - it has no opinion on tokenization, stemming, or stopwords.
// This package is one concrete, swappable implementation of that contract:
//
//	Tokenize  -> split text into words
//	Lowercase -> normalize case ("Quick" -> "quick")
//	Stopword  -> drop common words ("the", "a", ...)
//	Length    -> drop tokens shorter than MinTokenLength
//	Stem      -> reduce to root form ("running" -> "run") via Snowball/Porter2
//
// The query evaluator reuses the same Normalize+IsStopword steps (without the
// stopword removal step running silently) so that a stopword appearing in a
// query can be detected and rejected rather than quietly dropped.
// ═══════════════════════════════════════════════════════════════════════════════
package analyzer

import (
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// Analyzer is the interface the BSBI driver and query evaluator depend on.
// A corpus author can swap in a different language, stemmer, or stopword
// policy by implementing this interface; the core never imports a concrete
// tokenizer itself.
type Analyzer interface {
	// Tokens turns a document's raw text into the final sequence of indexed
	// terms: tokenized, lowercased, stopword-filtered, length-filtered, and
	// stemmed, in that order.
	Tokens(text string) []string

	// Normalize applies lowercasing and stemming (but not stopword removal)
	// to a single token, matching the transformation Tokens applies to
	// surviving tokens. Used to normalize query operands before the
	// stopword check runs.
	Normalize(token string) string

	// IsStopword reports whether an already-lowercased token is a stopword.
	IsStopword(token string) bool
}

// Config holds tuning parameters for the default analyzer.
type Config struct {
	MinTokenLength int // minimum token length to keep (default: 2)
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{MinTokenLength: 2}
}

// English is the default Analyzer: Unicode-aware tokenization, English
// stopword removal, and Snowball (Porter2) stemming.
type English struct {
	cfg Config
}

// New returns an English analyzer using the default configuration.
func New() *English {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig returns an English analyzer with custom tuning.
func NewWithConfig(cfg Config) *English {
	return &English{cfg: cfg}
}

// Tokens implements Analyzer.
//
// Example:
//
//	New().Tokens("The Quick Brown Fox Jumps!")
//	// -> ["quick", "brown", "fox", "jump"]
func (e *English) Tokens(text string) []string {
	tokens := tokenize(text)
	tokens = lowercaseFilter(tokens)
	tokens = stopwordFilter(tokens)
	tokens = lengthFilter(tokens, e.cfg.MinTokenLength)
	tokens = stemmerFilter(tokens)
	return tokens
}

// Normalize implements Analyzer.
func (e *English) Normalize(token string) string {
	return snowballeng.Stem(strings.ToLower(token), false)
}

// IsStopword implements Analyzer.
func (e *English) IsStopword(token string) bool {
	_, exists := englishStopwords[token]
	return exists
}

// tokenize splits text into individual words using Unicode-aware splitting:
// any non-letter, non-digit rune is a delimiter.
//
// Examples:
//
//	"hello-world"    -> ["hello", "world"]
//	"user@email.com" -> ["user", "email", "com"]
func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func lowercaseFilter(tokens []string) []string {
	r := make([]string, len(tokens))
	for i, token := range tokens {
		r[i] = strings.ToLower(token)
	}
	return r
}

func stopwordFilter(tokens []string) []string {
	r := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, stop := englishStopwords[token]; !stop {
			r = append(r, token)
		}
	}
	return r
}

func lengthFilter(tokens []string, minLength int) []string {
	r := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len(token) >= minLength {
			r = append(r, token)
		}
	}
	return r
}

func stemmerFilter(tokens []string) []string {
	r := make([]string, len(tokens))
	for i, token := range tokens {
		r[i] = snowballeng.Stem(token, false)
	}
	return r
}
