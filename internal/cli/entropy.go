package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/seedshuffle/seedshuffle/pkg/errors"
	"github.com/seedshuffle/seedshuffle/pkg/shuffle"
)

// newEntropyCmd creates the "entropy" command, which reports how much seed
// entropy each rearrangement family needs for a given number of items.
func newEntropyCmd() *cobra.Command {
	var (
		familyName string
		period     string
	)
	cmd := &cobra.Command{
		Use:   "entropy <n>",
		Short: "Show the seed entropy required for n items",
		Long: `Show the outcome count and minimum seed width in bits for each
rearrangement family over n items. A seed narrower than the reported width
cannot reach every outcome.

With --period, also report how many passes of a generator with the given
period must be combined to cover all n! orderings.`,
		Example: `  seedshuffle entropy 52
  seedshuffle entropy 12 --family derangement
  seedshuffle entropy 52 --period 18446744073709551616`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "item count must be an integer, got %q", args[0])
			}

			families := []shuffle.Family{shuffle.FamilyPermutation, shuffle.FamilyCyclic, shuffle.FamilyDerangement}
			if familyName != "" {
				f, err := shuffle.ParseFamily(familyName)
				if err != nil {
					return err
				}
				families = []shuffle.Family{f}
			}

			fmt.Println(StyleTitle.Render(fmt.Sprintf("Entropy requirements for %d items", n)))
			for _, f := range families {
				count, err := shuffle.Count(n, f)
				if err != nil {
					if familyName != "" {
						return err
					}
					printKeyValue(string(f), StyleDim.Render(errors.UserMessage(err)))
					continue
				}
				bits, err := shuffle.RequiredBits(n, f)
				if err != nil {
					return err
				}
				printKeyValue(string(f), fmt.Sprintf("%s outcomes, %s bits",
					StyleNumber.Render(count.String()), StyleNumber.Render(strconv.Itoa(bits))))
			}

			if period != "" {
				p, err := errors.ParseSeed(period)
				if err != nil {
					return err
				}
				passes, err := shuffle.PassesRequired(n, p)
				if err != nil {
					return err
				}
				printKeyValue("passes", fmt.Sprintf("%s draws of a period-%s generator cover all orderings",
					StyleNumber.Render(strconv.Itoa(passes)), period))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&familyName, "family", "f", "", "restrict output to one family (permutation, cyclic, derangement)")
	cmd.Flags().StringVar(&period, "period", "", "generator period for the pass-count calculation")
	return cmd
}
