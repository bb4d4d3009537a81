//go:build fuzz
// +build fuzz

package varint

import (
	"encoding/binary"
	"testing"
)

// FuzzInt64_SizeMatchesEncoding checks SizeOfInt64 against the bytes written
func FuzzInt64_SizeMatchesEncoding(f *testing.F) {
	f.Add(int64(0))
	f.Add(int64(-1))
	f.Add(int64(150))
	f.Add(int64(1 << 62))

	f.Fuzz(func(t *testing.T, n int64) {
		enc := AppendInt64(nil, n)
		if len(enc) != SizeOfInt64(n) {
			t.Fatalf("SizeOfInt64(%d) = %d, encoded %d bytes", n, SizeOfInt64(n), len(enc))
		}

		got, read := binary.Varint(enc)
		if read != len(enc) || got != n {
			t.Fatalf("binary.Varint(%x) = %d (%d bytes), want %d", enc, got, read, n)
		}
	})
}

// FuzzInt32_SizeMatchesEncoding is the 32-bit form of the above
func FuzzInt32_SizeMatchesEncoding(f *testing.F) {
	f.Add(int32(0))
	f.Add(int32(-1))
	f.Add(int32(14))
	f.Add(int32(-2147483648))

	f.Fuzz(func(t *testing.T, n int32) {
		enc := AppendInt32(nil, n)
		if len(enc) != SizeOfInt32(n) {
			t.Fatalf("SizeOfInt32(%d) = %d, encoded %d bytes", n, SizeOfInt32(n), len(enc))
		}
		if string(enc) != string(AppendInt64(nil, int64(n))) {
			t.Fatalf("32 and 64 bit encodings differ for %d", n)
		}
	})
}
