package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/wizenheimer/blazebsbi/bsbi"
)

func newIndexCmd() *cobra.Command {
	var (
		dataDir   string
		outDir    string
		codecName string
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build an inverted index over a corpus directory",
		Long: `index walks --data, treating every immediate sub-directory as one BSBI
block, parses and inverts each block independently, and merges the
resulting intermediate indices into a single final index under --out.`,
		Example: `  blazebsbi index --data ./corpus --out ./index --codec vbyte`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			bar := progressbar.Default(-1, "indexing blocks")
			cfg := bsbi.Config{
				DataPath:   dataDir,
				OutputPath: outDir,
				CodecName:  codecName,
				ProgressFunc: func(done, total int) {
					bar.ChangeMax(total)
					bar.Set(done)
				},
			}

			driver := bsbi.NewDriver(cfg)
			if err := driver.StartIndexing(cmd.Context()); err != nil {
				return fmt.Errorf("index: %w", err)
			}

			slog.Info("indexing complete",
				"terms", driver.TermIDs.Len(),
				"docs", driver.DocIDs.Len(),
				"out", outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", "", "corpus root directory (required)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory for index artifacts (required)")
	cmd.Flags().StringVar(&codecName, "codec", "vbyte", "postings codec: raw32 | vbyte | simple8b")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagRequired("out")

	return cmd
}
