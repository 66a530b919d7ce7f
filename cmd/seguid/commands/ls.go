package commands

import (
	"fmt"

	"seguid/pkg/meta"
	"seguid/pkg/types"

	"github.com/spf13/cobra"
)

var (
	lsLimit int
	lsAfter string
)

var lsCmd = &cobra.Command{
	Use:         "ls",
	Short:       "List catalog entries in SEGUID order",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationCatalog: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if TV == nil {
			return fmt.Errorf("app not initialized")
		}

		var after types.Checksum
		if lsAfter != "" {
			var err error
			if after, err = types.Parse(lsAfter); err != nil {
				return fmt.Errorf("invalid --after value: %w", err)
			}
		}

		models, err := TV.Repository.ListSequences(cmd.Context(), after, lsLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i := range models {
			headers, err := meta.Headers(&models[i])
			if err != nil {
				return err
			}
			label := ""
			switch len(headers) {
			case 0:
			case 1:
				label = headers[0]
			default:
				label = fmt.Sprintf("%s (+%d)", headers[0], len(headers)-1)
			}
			fmt.Fprintf(out, "%s\t%d\t%s\n", models[i].Checksum, models[i].Length, label)
		}
		return nil
	},
}

func init() {
	lsCmd.Flags().IntVarP(&lsLimit, "limit", "n", 100, "maximum number of entries (0 = all)")
	lsCmd.Flags().StringVar(&lsAfter, "after", "", "only list entries sorting after this SEGUID")
	rootCmd.AddCommand(lsCmd)
}
