package main

import (
	"context"

	"github.com/spf13/cobra"
)

func execute(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:   "blazebsbi",
		Short: "A disk-based inverted index engine with Boolean retrieval",
		Long: `blazebsbi builds an inverted index over a corpus of text files using
Blocked Sort-Based Indexing (BSBI), and evaluates Boolean queries
(AND / OR / DIFF) against the resulting index.`,
	}

	rootCmd.AddCommand(newIndexCmd(), newQueryCmd())
	return rootCmd.ExecuteContext(ctx)
}
