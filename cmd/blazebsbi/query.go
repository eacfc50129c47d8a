package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/blazebsbi/analyzer"
	"github.com/wizenheimer/blazebsbi/bsbi"
	"github.com/wizenheimer/blazebsbi/idmap"
	"github.com/wizenheimer/blazebsbi/indexfile"
	"github.com/wizenheimer/blazebsbi/query"
)

func newQueryCmd() *cobra.Command {
	var (
		outDir    string
		dataDir   string
		codecName string
	)

	cmd := &cobra.Command{
		Use:   "query <query-string>",
		Short: "Evaluate a Boolean query against a previously built index",
		Long: `query loads the term and document identifier maps and the final index
from --out, evaluates the given Boolean expression (operands joined by
AND / OR / DIFF, with parentheses for grouping), and prints the matching
document paths, one per line.`,
		Example: `  blazebsbi query --out ./index "(alpha AND beta) DIFF gamma"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			termIDs, err := loadIdMap(filepath.Join(outDir, bsbi.TermsDictName))
			if err != nil {
				return fmt.Errorf("load term map: %w", err)
			}
			docIDs, err := loadIdMap(filepath.Join(outDir, bsbi.DocsDictName))
			if err != nil {
				return fmt.Errorf("load doc map: %w", err)
			}

			reader, err := indexfile.Open(filepath.Join(outDir, bsbi.IndexName), codecName)
			if err != nil {
				return fmt.Errorf("open index: %w", err)
			}
			defer reader.Close()

			eval := &query.Evaluator{
				Analyzer: analyzer.New(),
				TermIDs:  termIDs,
				DocIDs:   docIDs,
				Reader:   reader,
			}

			res, err := eval.Evaluate(args[0])
			if err != nil {
				return fmt.Errorf("evaluate query: %w", err)
			}
			if res.Diagnostic != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), res.Diagnostic)
				return nil
			}

			for _, path := range res.Paths {
				if dataDir != "" {
					path = filepath.Join(dataDir, path)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "index directory produced by the index command (required)")
	cmd.Flags().StringVar(&dataDir, "data", "", "corpus root, used to print full document paths")
	cmd.Flags().StringVar(&codecName, "codec", "vbyte", "postings codec the index was built with")
	cmd.MarkFlagRequired("out")

	return cmd
}

func loadIdMap(path string) (*idmap.IdMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return idmap.Load(data)
}
