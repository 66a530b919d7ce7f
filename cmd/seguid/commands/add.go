package commands

import (
	"fmt"
	"time"

	"seguid/pkg/types"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:         "add [file|-]",
	Short:       "Add the records of a FASTA file to the sequence catalog",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationCatalog: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if TV == nil {
			return fmt.Errorf("app not initialized")
		}
		ctx := cmd.Context()
		start := time.Now()

		// 1. 解析
		records, err := readFasta(cmd, args[0])
		if err != nil {
			return err
		}

		// 2. 并行计算
		results, err := TV.Digester.Run(ctx, records)
		if err != nil {
			return err
		}

		// 3. 逐条登记 (SQLite 单写者，串行即可)
		distinct := make(map[types.Checksum]struct{}, len(results))
		for _, res := range results {
			if err := TV.Repository.IndexSequence(ctx, res.Checksum, res.Record.Header, len(res.Record.Sequence)); err != nil {
				return fmt.Errorf("failed to index %q: %w", res.Record.Header, err)
			}
			distinct[res.Checksum] = struct{}{}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d records (%d distinct sequences) in %v\n",
			len(results), len(distinct), time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
