package store

// SliceIterator iterates over a materialized list of models. All iterators
// returned by this package are slice iterators, so a contract can freely
// write while it walks over a range.
type SliceIterator struct {
	data []Model
	pos  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator returns an iterator over data in the given order.
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

// Valid returns false once all models were visited.
func (s *SliceIterator) Valid() bool {
	return s.pos < len(s.data)
}

// Next panics when called on an exhausted iterator.
func (s *SliceIterator) Next() {
	s.current()
	s.pos++
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) Close() {
	s.data = nil
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("iterator exhausted")
	}
	return s.data[s.pos]
}

// EmptyKVStore holds nothing and ignores all writes. It is the bottom
// layer of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) []byte                { return nil }
func (EmptyKVStore) Has(key []byte) bool                  { return false }
func (EmptyKVStore) Set(key, value []byte)                {}
func (EmptyKVStore) Delete(key []byte)                    {}
func (EmptyKVStore) Iterator(start, end []byte) Iterator  { return NewSliceIterator(nil) }
func (EmptyKVStore) ReverseIterator(s, e []byte) Iterator { return NewSliceIterator(nil) }
func (e EmptyKVStore) NewBatch() Batch                    { return NewNonAtomicBatch(e) }

// NonAtomicBatch records writes and replays them in order on Write. It
// gives no atomicity guarantee and is meant for stores where every single
// write is already applied in memory.
type NonAtomicBatch struct {
	out    SetDeleter
	writes []write
}

// write is a set, or a delete when value is nil.
type write struct {
	key   []byte
	value []byte
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch returns an empty batch flushing into out.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) {
	if value == nil {
		value = []byte{}
	}
	b.writes = append(b.writes, write{key: key, value: value})
}

func (b *NonAtomicBatch) Delete(key []byte) {
	b.writes = append(b.writes, write{key: key})
}

// Write flushes all recorded writes and empties the batch.
func (b *NonAtomicBatch) Write() {
	for _, w := range b.writes {
		if w.value == nil {
			b.out.Delete(w.key)
		} else {
			b.out.Set(w.key, w.value)
		}
	}
	b.writes = nil
}

// Len returns the number of writes waiting for Write.
func (b *NonAtomicBatch) Len() int {
	return len(b.writes)
}
