package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/grove"
	"github.com/gordian-engine/grove/ghash/ghashes"
	"github.com/gordian-engine/grove/internal/gbitset"
	"github.com/spf13/cobra"
)

func newRootDigestCommand(opts *globalOptions) *cobra.Command {
	var prehashed bool

	cmd := &cobra.Command{
		Use:   "root [FILE...]",
		Short: "Print the root of a tree with one leaf per input line",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.entry()
			if err != nil {
				return err
			}
			log, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			src := leafSource{log: log, stdin: cmd.InOrStdin(), prehashed: prehashed}
			leaves, err := src.readLeaves(args)
			if err != nil {
				return err
			}

			t := grove.New(grove.Config{Hasher: e.Hasher, Log: log}, leaves...)
			log.Info("Built tree", "leaves", t.LeafCount(), "capacity", t.Capacity(), "hash", e.Name)

			out, err := opts.render(e, t.Root())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&prehashed, "prehashed", false, "Treat each line as a hex digest to store without hashing")

	return cmd
}

func newReplayCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay [FILE]",
		Short: "Apply a script of tree operations, printing the root after each",
		Long: `replay reads one operation per line:

  add VALUE
  add-digest HEX
  update INDEX VALUE
  remove INDEX

After each operation it prints the leaf count and the root.
Blank lines and lines starting with # are ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.entry()
			if err != nil {
				return err
			}
			log, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open script: %w", err)
				}
				defer f.Close()
				in = f
			}

			t := grove.New(grove.Config{Hasher: e.Hasher, Log: log})
			w := cmd.OutOrStdout()
			return replay(t, in, func(lineNo int) error {
				out, err := opts.render(e, t.Root())
				if err != nil {
					return err
				}
				log.Debug("Applied operation", "line", lineNo, "leaves", t.LeafCount())
				_, err = fmt.Fprintf(w, "%d %s\n", t.LeafCount(), out)
				return err
			})
		},
	}
}

func newDiffCommand(opts *globalOptions) *cobra.Command {
	var prehashed bool
	var bitsetOut string

	cmd := &cobra.Command{
		Use:   "diff FILE_A FILE_B",
		Short: "Print the leaf positions at which two line files differ",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.entry()
			if err != nil {
				return err
			}
			log, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			src := leafSource{log: log, prehashed: prehashed}
			cfg := grove.Config{Hasher: e.Hasher, Log: log}

			var trees [2]*grove.Tree
			for i, p := range args {
				leaves, err := src.readLeaves([]string{p})
				if err != nil {
					return err
				}
				trees[i] = grove.New(cfg, leaves...)
			}

			diff := grove.DiffLeaves(trees[0], trees[1])
			if bitsetOut != "" {
				if err := writeBitset(bitsetOut, diff); err != nil {
					return err
				}
				log.Info("Wrote diff bitset", "path", bitsetOut, "differing", diff.Count())
			}

			if grove.Equal(trees[0], trees[1]) {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "equal")
				return err
			}
			return printPositions(cmd.OutOrStdout(), diff)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&prehashed, "prehashed", false, "Treat each line as a hex digest to store without hashing")
	f.StringVar(&bitsetOut, "bitset-out", "", "Also write the differing positions to this file as an encoded bitset")

	return cmd
}

func newBitsetCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bitset FILE",
		Short: "Print the leaf positions stored by diff --bitset-out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := opts.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			bs, err := readBitset(args[0])
			if err != nil {
				return err
			}
			log.Info("Read diff bitset", "path", args[0], "length", bs.Len(), "differing", bs.Count())

			if bs.None() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "equal")
				return err
			}
			return printPositions(cmd.OutOrStdout(), bs)
		},
	}
}

func printPositions(w io.Writer, bs *bitset.BitSet) error {
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		if _, err := fmt.Fprintln(w, i); err != nil {
			return err
		}
	}
	return nil
}

func readBitset(path string) (*bitset.BitSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bitset file: %w", err)
	}
	defer f.Close()

	var dec gbitset.Decoder
	bs, err := dec.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return bs, nil
}

func writeBitset(path string, bs *bitset.BitSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bitset file: %w", err)
	}

	var enc gbitset.Encoder
	if err := enc.Encode(f, bs); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close bitset file: %w", err)
	}
	return nil
}

func newHashesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hashes",
		Short: "List the available hash functions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range ghashes.Names() {
				e, err := ghashes.ByName(name)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t0x%x\n", e.Name, e.MultihashCode); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
