package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dictgate/dictgate/corpus"
)

func genCmd() *cobra.Command {
	var (
		out  string
		raw  int
		keep int
		seed int64
	)

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate the dictionary file",
		Long: "Generate the offline word corpus: random words over the gate " +
			"alphabet, sorted, deduplicated and truncated to the requested size.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}

			n, err := corpus.Build(rng, raw, keep, f)
			if err != nil {
				f.Close()
				return fmt.Errorf("failed to build dictionary: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d words to %s\n", n, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "dictionary.txt", "output file")
	cmd.Flags().IntVar(&raw, "raw", corpus.DefaultRawCount, "words to generate before deduplication")
	cmd.Flags().IntVar(&keep, "keep", corpus.DefaultKeepCount, "maximum words to keep")
	cmd.Flags().Int64Var(&seed, "seed", 0, "rng seed (0 = time-based)")

	return cmd
}
