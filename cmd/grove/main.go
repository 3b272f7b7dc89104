// Command grove computes and maintains incremental Merkle roots
// over line-oriented input.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/carlmjohnson/versioninfo"
	"github.com/gordian-engine/grove/ghash"
	"github.com/gordian-engine/grove/ghash/ghashes"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	hashName string
	format   string
	logLevel string
}

func (o *globalOptions) entry() (ghashes.Entry, error) {
	return ghashes.ByName(o.hashName)
}

func (o *globalOptions) logger(w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", o.logLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
	})), nil
}

// render formats d according to the --format flag.
func (o *globalOptions) render(e ghashes.Entry, d ghash.Digest) (string, error) {
	switch o.format {
	case "hex":
		return d.String(), nil
	case "multihash":
		mh, err := e.Multihash(d)
		if err != nil {
			return "", err
		}
		return mh.B58String(), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want hex or multihash)", o.format)
	}
}

func newRootCommand() *cobra.Command {
	var opts globalOptions

	rootCmd := &cobra.Command{
		Use:   "grove",
		Short: "Incremental Merkle tree tool",
		Long: `grove builds a Merkle tree with one leaf per input line,
and prints its root digest.

Empty slots are padded with the all-zero digest, unhashed,
and removal shifts later leaves down one position.`,
		Version: versioninfo.Short(),

		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.hashName, "hash", ghashes.Default, "Hash function name (see the hashes command)")
	pf.StringVar(&opts.format, "format", "hex", "Output format for digests: hex or multihash")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, or error")

	rootCmd.AddCommand(
		newRootDigestCommand(&opts),
		newReplayCommand(&opts),
		newDiffCommand(&opts),
		newBitsetCommand(&opts),
		newHashesCommand(),
	)

	return rootCmd
}
