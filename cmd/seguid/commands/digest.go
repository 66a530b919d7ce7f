package commands

import (
	"bytes"
	"fmt"
	"io"

	"seguid/pkg/core"
	"seguid/pkg/types"

	"github.com/spf13/cobra"
)

var digestCmd = &cobra.Command{
	Use:   "digest [sequence...]",
	Short: "Print the SEGUID of raw sequences",
	Long: `Compute the SEGUID checksum of each sequence given as an argument.
With no arguments the whole of stdin is read as a single sequence; whitespace
and line breaks are removed first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			// 去掉所有空白，多行粘贴的序列也能直接算
			seq := bytes.Join(bytes.Fields(data), nil)
			return printChecksum(out, core.Digest(seq))
		}

		for _, seq := range args {
			if err := printChecksum(out, core.DigestString(seq)); err != nil {
				return err
			}
		}
		return nil
	},
}

func printChecksum(w io.Writer, sum types.Checksum) error {
	text, err := sum.Display()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}

func init() {
	rootCmd.AddCommand(digestCmd)
}
