package commands

import (
	"fmt"
	"io"
	"os"

	"seguid/pkg/config"
	"seguid/pkg/digester"
	"seguid/pkg/fasta"

	"github.com/spf13/cobra"
)

var fastaJobs int

var fastaCmd = &cobra.Command{
	Use:   "fasta [file|-]",
	Short: "Print the SEGUID of every record in a FASTA file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := readFasta(cmd, args[0])
		if err != nil {
			return err
		}

		jobs := fastaJobs
		if !cmd.Flags().Changed("jobs") {
			jobs = config.Concurrency()
		}
		results, err := digester.New(digester.WithConcurrency(jobs)).Run(cmd.Context(), records)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, res := range results {
			text, err := res.Checksum.Display()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\t%s\n", text, res.Record.Header)
		}
		return nil
	},
}

// readFasta 读取文件，"-" 表示 stdin
func readFasta(cmd *cobra.Command, path string) ([]fasta.Record, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open fasta: %w", err)
		}
		defer f.Close()
		r = f
	}

	records, err := fasta.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func init() {
	fastaCmd.Flags().IntVarP(&fastaJobs, "jobs", "j", 0, "number of parallel workers (0 = number of CPUs)")
	rootCmd.AddCommand(fastaCmd)
}
