//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// FuzzRecord_LengthPrefix checks that the prefix always matches the bytes after it
func FuzzRecord_LengthPrefix(f *testing.F) {
	f.Add(uint8(0), int64(0), int64(0), []byte(""), []byte(""), true, true)
	f.Add(uint8(1), int64(150), int64(-1), []byte("key"), []byte("value"), true, true)
	f.Add(uint8(0), int64(0), int64(0), []byte(""), []byte("message1"), false, true)
	f.Add(uint8(255), int64(-1<<63), int64(1<<62), []byte{0x00}, []byte{0xff}, false, false)

	f.Fuzz(func(t *testing.T, attributes uint8, offset, timestamp int64, key, value []byte, hasKey, hasValue bool) {
		if len(key) > 10000 || len(value) > 100000 {
			t.Skip("Input too large for fuzz test")
		}

		builder := NewRecordBuilder().
			WithAttributes(attributes).
			WithOffset(offset).
			WithTimestamp(timestamp)
		if hasKey {
			builder.WithKey(key)
		}
		if hasValue {
			builder.WithValue(value)
		}
		record := builder.Build()

		var buf bytes.Buffer
		n, err := record.Serialize(&buf)
		if err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		if n != buf.Len() || n != record.EncodedLen() {
			t.Fatalf("Serialize wrote %d bytes, buffer has %d, EncodedLen %d", n, buf.Len(), record.EncodedLen())
		}

		length, read := binary.Varint(buf.Bytes())
		if read <= 0 {
			t.Fatalf("bad length prefix % x", buf.Bytes())
		}
		if int(length) != buf.Len()-read || int(length) != record.BodyLength() {
			t.Fatalf("prefix %d, body %d, BodyLength %d", length, buf.Len()-read, record.BodyLength())
		}

		if !bytes.Equal(buf.Bytes(), record.Encode()) {
			t.Fatalf("Serialize and Encode disagree")
		}
	})
}
