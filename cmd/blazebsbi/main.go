// Command blazebsbi builds and queries a disk-based inverted index over a
// directory of text files, using Blocked Sort-Based Indexing.
package main

import (
	"context"
	"log/slog"
	"os"
)

func main() {
	if err := execute(context.Background()); err != nil {
		slog.Error("blazebsbi failed", "error", err)
		os.Exit(1)
	}
}
