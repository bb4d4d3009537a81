// Package varint implements the zigzag variable-length integer encoding used
// by broker log records.
//
// Signed values are first mapped to unsigned ones with the zigzag transform
// so that small magnitudes of either sign produce short encodings. The result
// is then written seven bits at a time, least-significant group first, with
// the high bit of every byte except the last set as a continuation flag.
package varint

import "io"

const (
	dataBits     = 7
	dataMask     = 0x7f
	continuation = 0x80
)

// MaxLen32 and MaxLen64 are the longest encodings of a 32-bit and a 64-bit value.
const (
	MaxLen32 = 5
	MaxLen64 = 10
)

// ZigZag32 maps n onto the unsigned range so that 0, -1, 1, -2 ... become 0, 1, 2, 3 ...
func ZigZag32(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

// ZigZag64 is the 64-bit form of ZigZag32.
func ZigZag64(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

// SizeOfInt32 returns the number of bytes PutInt32 writes for n.
func SizeOfInt32(n int32) int {
	v := ZigZag32(n)
	size := 1
	for v&^dataMask != 0 {
		size++
		v >>= dataBits
	}
	return size
}

// SizeOfInt64 returns the number of bytes PutInt64 writes for n.
func SizeOfInt64(n int64) int {
	v := ZigZag64(n)
	size := 1
	for v&^dataMask != 0 {
		size++
		v >>= dataBits
	}
	return size
}

// SizeOfUint returns the number of bytes PutUint writes for n.
func SizeOfUint(n uint) int {
	return SizeOfInt64(int64(n))
}

// PutInt32 writes the encoding of n to w. The only error is one returned by w.
func PutInt32(w io.ByteWriter, n int32) error {
	v := ZigZag32(n)
	for v&^dataMask != 0 {
		if err := w.WriteByte(byte(v&dataMask) | continuation); err != nil {
			return err
		}
		v >>= dataBits
	}
	return w.WriteByte(byte(v))
}

// PutInt64 writes the encoding of n to w. The only error is one returned by w.
func PutInt64(w io.ByteWriter, n int64) error {
	v := ZigZag64(n)
	for v&^dataMask != 0 {
		if err := w.WriteByte(byte(v&dataMask) | continuation); err != nil {
			return err
		}
		v >>= dataBits
	}
	return w.WriteByte(byte(v))
}

// PutUint writes n through the signed 64-bit path. n must not exceed
// math.MaxInt64; larger values wrap negative and encode as such.
func PutUint(w io.ByteWriter, n uint) error {
	return PutInt64(w, int64(n))
}

// AppendInt32 appends the encoding of n to dst and returns the extended slice.
func AppendInt32(dst []byte, n int32) []byte {
	v := ZigZag32(n)
	for v&^dataMask != 0 {
		dst = append(dst, byte(v&dataMask)|continuation)
		v >>= dataBits
	}
	return append(dst, byte(v))
}

// AppendInt64 appends the encoding of n to dst and returns the extended slice.
func AppendInt64(dst []byte, n int64) []byte {
	v := ZigZag64(n)
	for v&^dataMask != 0 {
		dst = append(dst, byte(v&dataMask)|continuation)
		v >>= dataBits
	}
	return append(dst, byte(v))
}

// AppendUint appends n through the signed 64-bit path, see PutUint.
func AppendUint(dst []byte, n uint) []byte {
	return AppendInt64(dst, int64(n))
}
