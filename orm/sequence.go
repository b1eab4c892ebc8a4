package orm

import (
	"encoding/binary"

	"github.com/iov-one/covenant"
)

// Sequence maintains a counter. Each value is greater than the last, and
// EncodeSequence keeps that order for bytes.Compare.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//    _s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextInt increments the sequence and returns its state as int.
// The first value returned by a fresh sequence is 1.
func (s *Sequence) NextInt(db covenant.KVStore) uint64 {
	val := DecodeSequence(db.Get(s.id)) + 1
	db.Set(s.id, EncodeSequence(val))
	return val
}

// Latest returns the recently returned value of the sequence. This method does
// not modify the sequence state. Use NextInt to acquire a sequence value that
// was not given to anyone else.
func (s *Sequence) Latest(db covenant.ReadOnlyKVStore) uint64 {
	return DecodeSequence(db.Get(s.id))
}

// DecodeSequence reads a big endian sequence value. Missing values
// decode as zero.
func DecodeSequence(bz []byte) uint64 {
	if len(bz) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// EncodeSequence serializes a sequence value so that byte order matches
// numeric order.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
