package commands

import (
	"fmt"

	"seguid/pkg/meta"
	"seguid/pkg/types"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:         "lookup [seguid]",
	Short:       "Show the catalog entry of a SEGUID",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationCatalog: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if TV == nil {
			return fmt.Errorf("app not initialized")
		}

		sum, err := types.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid seguid argument '%s': %w", args[0], err)
		}

		model, err := TV.Repository.GetSequence(cmd.Context(), sum)
		if err != nil {
			return err
		}
		headers, err := meta.Headers(model)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "seguid %s\n", model.Checksum)
		fmt.Fprintf(out, "Length: %d\n", model.Length)
		fmt.Fprintf(out, "Added:  %s\n", model.CreatedAt.Format("Mon Jan 2 15:04:05 2006 -0700"))
		for _, h := range headers {
			fmt.Fprintf(out, "    >%s\n", h)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
