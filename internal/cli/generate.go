package cli

import (
	"bufio"
	"context"
	"fmt"
	"math/big"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/seedshuffle/seedshuffle/pkg/entropy"
	"github.com/seedshuffle/seedshuffle/pkg/errors"
	"github.com/seedshuffle/seedshuffle/pkg/shuffle"
)

// biasMarginBits is the number of bits drawn beyond the minimum required for
// an outcome family. Reducing an oversampled seed modulo the outcome count
// leaves a residual bias below 2^-64, which is negligible for any practical
// purpose.
const biasMarginBits = 64

// genOptions holds the flags shared by the shuffle, cyclic and derange
// commands.
type genOptions struct {
	seed   string
	expand bool
}

func addGenFlags(cmd *cobra.Command, opts *genOptions) {
	cmd.Flags().StringVarP(&opts.seed, "seed", "s", "", "seed as a non-negative integer (decimal, or 0x/0b prefixed)")
	cmd.Flags().BoolVar(&opts.expand, "expand", false, "expand a short seed into full-width entropy before selecting an outcome")
}

// newShuffleCmd creates the "shuffle" command, which rearranges items with a
// seed-selected permutation drawn uniformly from all n! orderings.
func newShuffleCmd(configPath *string) *cobra.Command {
	opts := &genOptions{}
	cmd := &cobra.Command{
		Use:   "shuffle [items...]",
		Short: "Rearrange items with a seed-selected permutation",
		Long: `Rearrange items with a permutation selected uniformly from all n!
possible orderings. The identity ordering and fixed points are allowed.

Items are taken from the arguments, or read one per line from stdin when no
arguments are given. Without --seed, a fresh seed is drawn from the configured
entropy source and logged so the run can be reproduced.`,
		Example: `  seedshuffle shuffle alice bob carol dave
  cat names.txt | seedshuffle shuffle
  seedshuffle shuffle --seed 170141183460469231731687303715884105727 a b c d`,
		RunE: runGenerate(configPath, opts, shuffle.FamilyPermutation),
	}
	addGenFlags(cmd, opts)
	return cmd
}

// newCyclicCmd creates the "cyclic" command, which rearranges items with a
// permutation forming a single cycle over all positions.
func newCyclicCmd(configPath *string) *cobra.Command {
	opts := &genOptions{}
	cmd := &cobra.Command{
		Use:   "cyclic [items...]",
		Short: "Rearrange items with a single-cycle permutation",
		Long: `Rearrange items with a permutation whose cycle structure is a single
n-cycle: repeatedly applying it visits every position before returning to the
start. There are (n-1)! such permutations and every one of them moves every
item. Requires at least two items.`,
		Example: `  seedshuffle cyclic mon tue wed thu fri
  seedshuffle cyclic --seed 42 a b c d`,
		RunE: runGenerate(configPath, opts, shuffle.FamilyCyclic),
	}
	addGenFlags(cmd, opts)
	return cmd
}

// newDerangeCmd creates the "derange" command, which rearranges items so
// that no item remains in its original position.
func newDerangeCmd(configPath *string) *cobra.Command {
	opts := &genOptions{}
	cmd := &cobra.Command{
		Use:   "derange [items...]",
		Short: "Rearrange items so none stays in place",
		Long: `Rearrange items with a derangement: a permutation with no fixed
points, selected uniformly from all !n possibilities. Useful for gift
exchanges and any assignment where nobody may draw themselves. Requires at
least two items.`,
		Example: `  seedshuffle derange alice bob carol dave
  seedshuffle derange --seed 7 a b c d`,
		RunE: runGenerate(configPath, opts, shuffle.FamilyDerangement),
	}
	addGenFlags(cmd, opts)
	return cmd
}

func runGenerate(configPath *string, opts *genOptions, family shuffle.Family) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := loggerFromContext(ctx)

		items, err := readItems(cmd, args)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "no items given (pass arguments or pipe one item per line)")
		}

		cfg, err := loadConfig(*configPath)
		if err != nil {
			return err
		}

		seed, err := resolveSeed(ctx, logger, cfg, opts, len(items), family)
		if err != nil {
			return err
		}

		switch family {
		case shuffle.FamilyCyclic:
			err = shuffle.CyclicPermutation(items, seed)
		case shuffle.FamilyDerangement:
			err = shuffle.Derangement(items, seed)
		default:
			err = shuffle.Shuffle(items, seed)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, item := range items {
			fmt.Fprintln(out, item)
		}
		return nil
	}
}

// readItems returns the positional arguments, or reads items one per line
// from stdin when no arguments were given. Blank lines are skipped.
func readItems(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var items []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read items from stdin")
	}
	return items, nil
}

// resolveSeed produces the seed used to select an outcome. An explicit
// --seed is parsed and used as-is, unless --expand is set, in which case it
// keys a deterministic generator that stretches it to full width. Without
// --seed, fresh entropy is drawn from the configured source and logged so
// the run can be reproduced.
func resolveSeed(ctx context.Context, logger *charmlog.Logger, cfg Config, opts *genOptions, n int, family shuffle.Family) (*big.Int, error) {
	if opts.seed != "" && !opts.expand {
		return errors.ParseSeed(opts.seed)
	}

	bits, err := shuffle.RequiredBits(n, family)
	if err != nil {
		return nil, err
	}
	bits += biasMarginBits

	if opts.seed != "" {
		key, err := errors.ParseSeed(opts.seed)
		if err != nil {
			return nil, err
		}
		src, err := entropy.NewDeterministic(key)
		if err != nil {
			return nil, err
		}
		return src.Bits(ctx, bits)
	}

	var src entropy.Source
	switch cfg.Source {
	case "", "crypto":
		src = entropy.Crypto{}
	case "remote":
		if cfg.Endpoint == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "entropy source is \"remote\" but no endpoint is configured")
		}
		src = entropy.NewRemote(cfg.Endpoint)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown entropy source %q (expected \"crypto\" or \"remote\")", cfg.Source)
	}

	var seed *big.Int
	if cfg.Source == "remote" {
		spinner := newSpinner(ctx, fmt.Sprintf("fetching %d bits from %s", bits, cfg.Endpoint))
		spinner.Start()
		seed, err = src.Bits(ctx, bits)
		spinner.Stop()
	} else {
		seed, err = src.Bits(ctx, bits)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("drew fresh seed", "bits", bits, "source", cfg.Source)
	logger.Debugf("seed = %s", seed.String())
	return seed, nil
}
