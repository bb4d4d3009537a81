package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/brokercore/pkg/api"
	"github.com/ssargent/brokercore/pkg/codec"
	"github.com/ssargent/brokercore/pkg/payload"
)

// addRecordFlags registers the flags that describe a single record
func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().Int64("offset", 0, "Record offset")
	cmd.Flags().Int64("timestamp", 0, "Record timestamp")
	cmd.Flags().Uint8("attributes", 0, "Record attributes byte")
	cmd.Flags().Int32("sequence", 0, "Record sequence number (not encoded)")
	cmd.Flags().String("key", "", "Record key; omit for a record without a key")
	cmd.Flags().String("key-encoding", payload.EncodingUTF8, "Key encoding (utf8, hex, base64)")
	cmd.Flags().Bool("key-ksuid", false, "Use a generated KSUID as the key")
	cmd.Flags().String("value", "", "Record value; omit for a record without a value")
	cmd.Flags().String("value-encoding", payload.EncodingUTF8, "Value encoding (utf8, hex, base64)")
	cmd.MarkFlagsMutuallyExclusive("key", "key-ksuid")
}

// recordFromFlags builds the record described by the flags. A key or value
// flag that was not given leaves the field absent; --key "" sets an empty key.
func recordFromFlags(cmd *cobra.Command) (*codec.Record, []byte, error) {
	flags := cmd.Flags()

	req := api.RecordRequest{}
	req.Offset, _ = flags.GetInt64("offset")
	req.Timestamp, _ = flags.GetInt64("timestamp")
	req.Attributes, _ = flags.GetUint8("attributes")
	req.Sequence, _ = flags.GetInt32("sequence")
	req.KeyEncoding, _ = flags.GetString("key-encoding")
	req.ValueEncoding, _ = flags.GetString("value-encoding")
	req.GenerateKey, _ = flags.GetBool("key-ksuid")

	if flags.Changed("key") {
		key, _ := flags.GetString("key")
		req.Key = &key
	}
	if flags.Changed("value") {
		value, _ := flags.GetString("value")
		req.Value = &value
	}

	return req.Build()
}
