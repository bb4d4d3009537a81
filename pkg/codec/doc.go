// Package codec provides the in-memory broker log record and its binary
// encoding.
//
// # Record Format
//
// A record is written as a length prefix followed by the record body. Every
// integer except the attributes byte is a zigzag varint (see package varint):
//
//	[Length][Attributes(1)][Timestamp][Offset][KeyLen][Key][ValueLen][Value][HeaderCount]
//
// Fields:
//   - Length: size of everything after the prefix
//   - Attributes: flag byte, written as is
//   - Timestamp: record timestamp
//   - Offset: log offset assigned by the caller
//   - KeyLen/Key: key length and bytes, or the single length -1 when no key is set
//   - ValueLen/Value: same as the key
//   - HeaderCount: number of headers, currently always 0
//
// A record with no key, no value and zero offset and timestamp has a body of
// 6 bytes. The sequence number held by a Record is not encoded.
//
// # Usage
//
//	record := codec.NewRecordBuilder().
//	    WithOffset(42).
//	    WithTimestamp(time.Now().UnixMilli()).
//	    WithValue([]byte("message1")).
//	    Build()
//
//	var buf bytes.Buffer
//	if _, err := record.Serialize(&buf); err != nil {
//	    return err
//	}
//
// Fixed buffers go through MarshalTo, which reports ErrInsufficientBuffer
// instead of writing a partial record.
//
// # Thread Safety
//
// Records are immutable once built and safe to share between goroutines.
// RecordBuilder is not safe for concurrent use.
//
// # Compatibility
//
// Decoding is not provided. The layout matches the record entries of a Kafka
// v2 record batch, so encoding/binary.Varint reads every varint field back.
package codec
