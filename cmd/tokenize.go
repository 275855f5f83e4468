package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/explicitize/feature"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [features...]",
	Short: "Show the tokens and product form of feature strings",
	Long: `Prints each feature with its tokens and consolidated product.
Example) explicitize tokenize x0x0x1 x1x0_dot`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		products := feature.Reformat(args)
		out := cmd.OutOrStdout()
		for i, f := range args {
			toks := feature.Tokenize(f)
			names := make([]string, len(toks))
			for j, t := range toks {
				names[j] = t.String()
			}
			fmt.Fprintf(out, "%s\t[%s]\t%s\n", f, strings.Join(names, " "), products[i])
		}
	},
}
