package codec

import (
	"io"

	"github.com/pkg/errors"
	"github.com/ssargent/brokercore/pkg/varint"
)

// ErrInsufficientBuffer is returned by MarshalTo when dest cannot hold the record
var ErrInsufficientBuffer = errors.New("buffer too small")

const (
	attributesSize = 1

	// nullLength stands in for the length of a missing key or value
	nullLength int32 = -1
)

// Writer is the sink Serialize writes to. *bytes.Buffer and *bufio.Writer satisfy it.
type Writer interface {
	io.Writer
	io.ByteWriter
}

// BodyLength returns the number of bytes that follow the length prefix in the
// encoded record. The sequence number is not part of the body.
func (r *Record) BodyLength() int {
	size := attributesSize
	size += varint.SizeOfInt64(r.offset)
	size += varint.SizeOfInt64(r.timestamp)
	size += fieldSize(r.key, r.hasKey)
	size += fieldSize(r.value, r.hasValue)
	size += varint.SizeOfInt32(int32(r.headers.Size()))
	return size
}

// EncodedLen returns the total encoded size, length prefix included
func (r *Record) EncodedLen() int {
	body := r.BodyLength()
	return varint.SizeOfUint(uint(body)) + body
}

func fieldSize(b []byte, present bool) int {
	if !present {
		return varint.SizeOfInt32(nullLength)
	}
	return varint.SizeOfUint(uint(len(b))) + len(b)
}

// Serialize writes the encoded record to w and returns the number of bytes
// written. A failed write is returned wrapped with the field being written;
// bytes already accepted by w are not rolled back.
//
// Layout:
//
//	varint(body length)
//	byte(attributes)
//	varint(timestamp)
//	varint(offset)
//	varint(key length) key | varint(-1)
//	varint(value length) value | varint(-1)
//	varint(header count)
func (r *Record) Serialize(w Writer) (int, error) {
	cw := &countingWriter{w: w}

	if err := varint.PutUint(cw, uint(r.BodyLength())); err != nil {
		return cw.n, errors.Wrap(err, "write length")
	}
	if err := cw.WriteByte(r.attributes); err != nil {
		return cw.n, errors.Wrap(err, "write attributes")
	}
	if err := varint.PutInt64(cw, r.timestamp); err != nil {
		return cw.n, errors.Wrap(err, "write timestamp")
	}
	if err := varint.PutInt64(cw, r.offset); err != nil {
		return cw.n, errors.Wrap(err, "write offset")
	}
	if err := writeField(cw, r.key, r.hasKey); err != nil {
		return cw.n, errors.Wrap(err, "write key")
	}
	if err := writeField(cw, r.value, r.hasValue); err != nil {
		return cw.n, errors.Wrap(err, "write value")
	}
	if err := varint.PutInt32(cw, int32(r.headers.Size())); err != nil {
		return cw.n, errors.Wrap(err, "write headers")
	}

	return cw.n, nil
}

func writeField(w Writer, b []byte, present bool) error {
	if !present {
		return varint.PutInt32(w, nullLength)
	}
	if err := varint.PutUint(w, uint(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	return err
}

// AppendTo appends the encoded record to dst and returns the extended slice
func (r *Record) AppendTo(dst []byte) []byte {
	dst = varint.AppendUint(dst, uint(r.BodyLength()))
	dst = append(dst, r.attributes)
	dst = varint.AppendInt64(dst, r.timestamp)
	dst = varint.AppendInt64(dst, r.offset)
	dst = appendField(dst, r.key, r.hasKey)
	dst = appendField(dst, r.value, r.hasValue)
	return varint.AppendInt32(dst, int32(r.headers.Size()))
}

func appendField(dst []byte, b []byte, present bool) []byte {
	if !present {
		return varint.AppendInt32(dst, nullLength)
	}
	dst = varint.AppendUint(dst, uint(len(b)))
	return append(dst, b...)
}

// MarshalTo encodes the record into the front of dest and returns the number
// of bytes written. Nothing is written when dest is shorter than EncodedLen.
func (r *Record) MarshalTo(dest []byte) (int, error) {
	size := r.EncodedLen()
	if len(dest) < size {
		return 0, ErrInsufficientBuffer
	}

	r.AppendTo(dest[:0])
	return size, nil
}

// Encode returns the encoded record in a new slice of exactly EncodedLen bytes
func (r *Record) Encode() []byte {
	return r.AppendTo(make([]byte, 0, r.EncodedLen()))
}

type countingWriter struct {
	w Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}

func (c *countingWriter) WriteByte(b byte) error {
	if err := c.w.WriteByte(b); err != nil {
		return err
	}
	c.n++
	return nil
}
