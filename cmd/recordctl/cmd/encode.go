/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/brokercore/pkg/payload"
	"github.com/ssargent/brokercore/pkg/spool"
)

func newEncodeCmd() *cobra.Command {
	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a record",
		Long: `Encode a record and print it, or append it to a spool file.

The key and value are absent unless their flags are given. Passing --key ""
encodes a present but empty key.

Examples:
  recordctl encode --value message1
  recordctl encode --offset 42 --key-ksuid --value 68656c6c6f --value-encoding hex
  recordctl encode --value message1 --format raw > record.bin
  recordctl encode --value message1 --spool ./data/records.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd)
			logger := loggerFrom(cmd)

			record, generated, err := recordFromFlags(cmd)
			if err != nil {
				return err
			}
			if generated != nil {
				logger.Info("generated record key", zap.ByteString("key", generated))
			}

			spoolPath, _ := cmd.Flags().GetString("spool")
			if spoolPath != "" {
				writer, err := spool.NewWriter(spool.Config{
					FilePath:      spoolPath,
					FsyncInterval: cfg.Spool.FsyncInterval,
					BufferSize:    cfg.Spool.BufferSize,
					Logger:        logger,
				})
				if err != nil {
					return err
				}

				position, err := writer.Append(record)
				if closeErr := writer.Close(); err == nil {
					err = closeErr
				}
				if err != nil {
					return err
				}

				logger.Info("record spooled",
					zap.String("path", spoolPath),
					zap.Int64("position", position),
					zap.Int("bytes", record.EncodedLen()))
				return nil
			}

			format := cfg.Output.Format
			if cmd.Flags().Changed("format") {
				format, _ = cmd.Flags().GetString("format")
			}

			out, err := payload.Format(record.Encode(), format)
			if err != nil {
				return err
			}

			if format != payload.FormatRaw {
				out = append(out, '\n')
			}
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return fmt.Errorf("failed to write record: %w", err)
			}
			return nil
		},
	}

	addRecordFlags(encodeCmd)
	encodeCmd.Flags().StringP("format", "f", payload.FormatHex, "Output format (hex, base64, raw)")
	encodeCmd.Flags().String("spool", "", "Append the record to this spool file instead of printing it")
	encodeCmd.MarkFlagsMutuallyExclusive("format", "spool")

	return encodeCmd
}
