package multisig

import (
	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/orm"
)

const (
	// BucketName is where we store the operations
	BucketName = "ops"
	// SequenceName is the operation index counter
	SequenceName = "index"
)

// OperationStore keeps pending operations under their index.
type OperationStore struct {
	bucket orm.Bucket
	seq    orm.Sequence
}

// NewOperationStore returns a store using the default bucket.
func NewOperationStore() OperationStore {
	b := orm.NewBucket(BucketName)
	return OperationStore{
		bucket: b,
		seq:    b.Sequence(SequenceName),
	}
}

// NextIndex reserves a new operation index. The first index is 1 and an
// index is never issued twice.
func (s OperationStore) NextIndex(db covenant.KVStore) uint64 {
	return s.seq.NextInt(db)
}

// LastIndex returns the most recently issued index, 0 if none.
func (s OperationStore) LastIndex(db covenant.ReadOnlyKVStore) uint64 {
	return s.seq.Latest(db)
}

// Get returns the operation stored under index. Missing operations are a
// state error, as they were either never submitted or already consumed.
func (s OperationStore) Get(db covenant.ReadOnlyKVStore, index uint64) (*Operation, error) {
	var op Operation
	err := s.bucket.One(db, orm.EncodeSequence(index), &op)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrState, "operation %d: unknown or already executed", index)
	case err != nil:
		return nil, err
	}
	return &op, nil
}

// Save writes the operation under its index.
func (s OperationStore) Save(db covenant.KVStore, op *Operation) error {
	return s.bucket.Put(db, orm.EncodeSequence(op.Index), op)
}

// Delete removes the operation with given index.
func (s OperationStore) Delete(db covenant.KVStore, index uint64) {
	s.bucket.Delete(db, orm.EncodeSequence(index))
}

// Has returns true if an operation is stored under index.
func (s OperationStore) Has(db covenant.ReadOnlyKVStore, index uint64) bool {
	return s.bucket.Has(db, orm.EncodeSequence(index))
}

// Indices returns all live operation indices in ascending order.
func (s OperationStore) Indices(db covenant.ReadOnlyKVStore) []uint64 {
	keys := s.bucket.Keys(db)
	res := make([]uint64, 0, len(keys))
	for _, k := range keys {
		res = append(res, orm.DecodeSequence(k))
	}
	return res
}
