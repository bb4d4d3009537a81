package codec

// Headers holds the key/value metadata attached to a record. No entries can be
// attached yet, so every Headers is empty.
type Headers struct{}

// NewHeaders returns an empty header set
func NewHeaders() Headers {
	return Headers{}
}

// Size returns the number of header entries
func (h Headers) Size() int {
	return 0
}

// Record is a single broker log entry. Records are built with a RecordBuilder
// and are immutable afterwards, so they are safe to share between goroutines.
type Record struct {
	attributes uint8
	offset     int64
	timestamp  int64
	sequence   int32
	key        []byte
	hasKey     bool
	value      []byte
	hasValue   bool
	headers    Headers
}

// NewRecord returns a record with every field zeroed and no key or value
func NewRecord() *Record {
	return &Record{}
}

// Attributes returns the record flag byte
func (r *Record) Attributes() uint8 {
	return r.attributes
}

// Offset returns the log offset assigned to the record
func (r *Record) Offset() int64 {
	return r.offset
}

// Timestamp returns the record timestamp
func (r *Record) Timestamp() int64 {
	return r.timestamp
}

// Sequence returns the producer sequence number. It is carried in memory only
// and is not part of the encoded form.
func (r *Record) Sequence() int32 {
	return r.sequence
}

// Key returns the record key and whether one is set. An empty key that is set
// is distinct from a missing key. The returned slice must not be modified.
func (r *Record) Key() ([]byte, bool) {
	return r.key, r.hasKey
}

// Value returns the record value and whether one is set, see Key.
func (r *Record) Value() ([]byte, bool) {
	return r.value, r.hasValue
}

// Headers returns the record headers
func (r *Record) Headers() Headers {
	return r.headers
}

// RecordBuilder accumulates record fields. Build may be called any number of
// times; each call returns an independent Record.
type RecordBuilder struct {
	record Record
}

// NewRecordBuilder creates a builder for a default record
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{}
}

func (b *RecordBuilder) WithAttributes(attributes uint8) *RecordBuilder {
	b.record.attributes = attributes
	return b
}

func (b *RecordBuilder) WithOffset(offset int64) *RecordBuilder {
	b.record.offset = offset
	return b
}

func (b *RecordBuilder) WithTimestamp(timestamp int64) *RecordBuilder {
	b.record.timestamp = timestamp
	return b
}

func (b *RecordBuilder) WithSequence(sequence int32) *RecordBuilder {
	b.record.sequence = sequence
	return b
}

// WithKey sets the key to a copy of key. A nil key sets an empty key.
func (b *RecordBuilder) WithKey(key []byte) *RecordBuilder {
	b.record.key = cloneBytes(key)
	b.record.hasKey = true
	return b
}

// WithoutKey clears any key set earlier
func (b *RecordBuilder) WithoutKey() *RecordBuilder {
	b.record.key = nil
	b.record.hasKey = false
	return b
}

// WithValue sets the value to a copy of value. A nil value sets an empty value.
func (b *RecordBuilder) WithValue(value []byte) *RecordBuilder {
	b.record.value = cloneBytes(value)
	b.record.hasValue = true
	return b
}

// WithoutValue clears any value set earlier
func (b *RecordBuilder) WithoutValue() *RecordBuilder {
	b.record.value = nil
	b.record.hasValue = false
	return b
}

func (b *RecordBuilder) WithHeaders(headers Headers) *RecordBuilder {
	b.record.headers = headers
	return b
}

// Build returns the record described by the builder
func (b *RecordBuilder) Build() *Record {
	r := b.record
	return &r
}

// cloneBytes never returns nil so that a set field always has a backing slice.
// Builder setters replace slices rather than writing into them, which lets
// built records share them with the builder.
func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
