package query

import (
	"fmt"
	"strings"

	"github.com/wizenheimer/blazebsbi/analyzer"
	"github.com/wizenheimer/blazebsbi/idmap"
	"github.com/wizenheimer/blazebsbi/setops"
)

// PostingsReader is the subset of indexfile.Reader the evaluator depends on.
type PostingsReader interface {
	GetPostings(termID int) ([]int, error)
}

// Result is the outcome of evaluating one query: a list of document paths in
// ascending doc_id order, or a diagnostic if the query was rejected outright
// because an operand is a stopword, rather than merely empty. Malformed
// queries (such as unbalanced parentheses) are reported as an error instead.
type Result struct {
	Paths      []string
	Diagnostic string // non-empty only when the query itself was invalid
}

// Evaluator evaluates Boolean query strings against one final index, using
// the same term and document IdMaps the BSBI driver populated.
type Evaluator struct {
	Analyzer analyzer.Analyzer
	TermIDs  *idmap.IdMap
	DocIDs   *idmap.IdMap
	Reader   PostingsReader
}

// Evaluate parses and evaluates raw as described in spec.md §4.7: operand
// preprocessing (lowercase, stopword check, stem), shunting-yard parsing to
// postfix, and stack-based evaluation using setops primitives. The stack-
// based evaluator argument order fixes DIFF's operand order: the second-
// popped list (the left-hand, earlier-pushed operand) is the minuend, and
// the first-popped list (the right-hand, later-pushed operand) is
// subtracted from it.
func (e *Evaluator) Evaluate(raw string) (Result, error) {
	tokens := lex(raw)

	for _, t := range tokens {
		if t.kind != tokOperand {
			continue
		}
		lowered := strings.ToLower(t.text)
		if e.Analyzer.IsStopword(lowered) {
			return Result{Diagnostic: fmt.Sprintf("query contains stopword %q", t.text)}, nil
		}
	}

	postfix, err := toPostfix(tokens)
	if err != nil {
		return Result{}, err
	}

	var stack [][]int
	for _, t := range postfix {
		switch t.kind {
		case tokOperand:
			postings, err := e.resolveOperand(t.text)
			if err != nil {
				return Result{}, err
			}
			stack = append(stack, postings)
		case tokAnd, tokOr, tokDiff:
			if len(stack) < 2 {
				return Result{}, fmt.Errorf("query: malformed expression: %q", raw)
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			var combined []int
			switch t.kind {
			case tokAnd:
				combined = setops.Intersect(left, right)
			case tokOr:
				combined = setops.Union(left, right)
			case tokDiff:
				combined = setops.Diff(left, right)
			}
			stack = append(stack, combined)
		}
	}

	if len(stack) == 0 {
		return Result{Paths: []string{}}, nil
	}
	docIDs := stack[len(stack)-1]

	paths := make([]string, 0, len(docIDs))
	for _, id := range docIDs {
		paths = append(paths, e.DocIDs.LookupString(id))
	}
	return Result{Paths: paths}, nil
}

// resolveOperand normalizes a raw operand token identically to indexing
// (lowercase then stem), looks up its term_id, and fetches postings. An
// absent term_id is not an error: spec.md §8 property 9 requires this to
// behave exactly as if an empty list had been pushed.
func (e *Evaluator) resolveOperand(raw string) ([]int, error) {
	normalized := e.Analyzer.Normalize(raw)

	termID, ok := e.TermIDs.LookupID(normalized)
	if !ok {
		return []int{}, nil
	}

	postings, err := e.Reader.GetPostings(termID)
	if err != nil {
		return nil, fmt.Errorf("query: fetch postings for %q: %w", raw, err)
	}
	return postings, nil
}
