package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSizeCmd() *cobra.Command {
	sizeCmd := &cobra.Command{
		Use:   "size",
		Short: "Print the encoded size of a record",
		Long: `Print the body length and the total encoded length of a record
without encoding it. Takes the same record flags as encode.

Example:
  recordctl size --value message1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, _, err := recordFromFlags(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "body_length: %d\n", record.BodyLength())
			fmt.Fprintf(out, "encoded_length: %d\n", record.EncodedLen())
			return nil
		},
	}

	addRecordFlags(sizeCmd)
	return sizeCmd
}
