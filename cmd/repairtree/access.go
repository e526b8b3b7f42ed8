package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"repairtree/grammar"
)

func newAccessCmd(gf *globalFlags) *cobra.Command {
	var (
		output     string
		iterations int
		seed       int64
		depth      bool
		noRA       bool
		bins       int
	)

	cmd := &cobra.Command{
		Use:   "access",
		Short: "Benchmark random access into the grammar and report parse tree depth",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gf.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if depth {
				if err := printDepth(out, g, bins); err != nil {
					return err
				}
			}
			if noRA {
				return nil
			}

			results, elapsed, err := randomAccess(g, iterations, seed)
			if err != nil {
				return err
			}
			filename := output + ".txt"
			if err := WriteSlice(filename, results, ""); err != nil {
				return fmt.Errorf("write results: %w", err)
			}

			fmt.Fprintln(out, "\n--- Benchmark Complete ---")
			fmt.Fprintf(out, "It took %.4f seconds to perform %d random access queries.\n", elapsed.Seconds(), iterations)
			if iterations > 0 {
				fmt.Fprintf(out, "It took %.6f seconds on average per random access query.\n", elapsed.Seconds()/float64(iterations))
			}
			fmt.Fprintf(out, "Results saved to %s\n", filename)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "ra_output", "Prefix of output file.")
	cmd.Flags().IntVarP(&iterations, "iteration", "i", 10000, "Number of random positions to test")
	cmd.Flags().Int64Var(&seed, "seed", 100, "Seed for random number generator")
	cmd.Flags().BoolVar(&depth, "depth", false, "Calculate the depth of the parse tree.")
	cmd.Flags().BoolVar(&noRA, "no_ra", false, "Do not perform random access test.")
	cmd.Flags().IntVar(&bins, "bins", 8, "Number of bins in the rule height histogram")

	return cmd
}

func randomAccess(g *grammar.Grammar, iterations int, seed int64) ([]string, time.Duration, error) {
	total := g.ExpandedLen()
	if total == 0 {
		return nil, 0, errors.New("random access needs a non-empty input")
	}

	rng := rand.New(rand.NewSource(seed))
	results := make([]string, 0, iterations)
	var elapsed time.Duration

	for i := 0; i < iterations; i++ {
		pos := uint64(rng.Int63n(int64(total)))

		start := time.Now()
		s, err := g.At(pos)
		elapsed += time.Since(start)
		if err != nil {
			return nil, 0, err
		}

		if i%1000 == 0 {
			log.Debugf("Completed %d/%d queries...", i, iterations)
		}
		results = append(results, fmt.Sprintf("pos: %d value: %s", pos, s.Label()))
	}
	return results, elapsed, nil
}

func printDepth(w io.Writer, g *grammar.Grammar, bins int) error {
	st := g.Depth()
	fmt.Fprintln(w, "\n--- Depth Statistics ---")
	fmt.Fprintf(w, "Maximum parse tree depth: %d\n", st.Max)
	fmt.Fprintf(w, "Average leaf depth: %.4f\n", st.AvgLeaf)
	fmt.Fprintf(w, "The number of leaves (uncompressed file size): %d\n", st.Leaves)
	fmt.Fprintln(w, "------------------------")

	heights := g.Heights()
	if len(heights) == 0 {
		return nil
	}
	lo, hi := heights[0], heights[0]
	for _, h := range heights {
		if h < lo {
			lo = h
		}
		if h > hi {
			hi = h
		}
	}
	if lo == hi {
		fmt.Fprintf(w, "All %d rules have height %.0f\n", len(heights), lo)
		return nil
	}

	if bins < 1 {
		bins = 1
	}
	fmt.Fprintln(w, "\nRule heights:")
	hist := histogram.Hist(bins, heights)
	return histogram.Fprint(w, hist, histogram.Linear(40))
}

// WriteSlice writes one element per line, after an optional header.
func WriteSlice[V any](filename string, data []V, header string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if header != "" {
		if _, err := fmt.Fprintln(f, header); err != nil {
			return err
		}
	}
	for _, k := range data {
		if _, err := fmt.Fprintln(f, k); err != nil {
			return err
		}
	}
	return f.Close()
}
