package store

// PrefixStore exposes a namespace of a parent KVStore. Every key is
// transparently prefixed on write and stripped on read, so two stores
// with distinct prefixes never observe each other's data.
type PrefixStore struct {
	prefix []byte
	parent KVStore
}

var _ KVStore = PrefixStore{}

// NewPrefixStore returns a view of parent limited to keys starting with
// prefix.
func NewPrefixStore(parent KVStore, prefix []byte) PrefixStore {
	return PrefixStore{
		prefix: append([]byte(nil), prefix...),
		parent: parent,
	}
}

func (p PrefixStore) key(key []byte) []byte {
	res := make([]byte, 0, len(p.prefix)+len(key))
	res = append(res, p.prefix...)
	return append(res, key...)
}

// Get returns nil iff key doesn't exist.
func (p PrefixStore) Get(key []byte) []byte {
	return p.parent.Get(p.key(key))
}

// Has checks if a key exists.
func (p PrefixStore) Has(key []byte) bool {
	return p.parent.Has(p.key(key))
}

// Set writes a value under the prefixed key.
func (p PrefixStore) Set(key, value []byte) {
	p.parent.Set(p.key(key), value)
}

// Delete removes the prefixed key.
func (p PrefixStore) Delete(key []byte) {
	p.parent.Delete(p.key(key))
}

// NewBatch returns a batch that writes under the same prefix.
func (p PrefixStore) NewBatch() Batch {
	return prefixBatch{prefix: p, batch: p.parent.NewBatch()}
}

// Iterator over [start, end) of the namespace in ascending order. Returned
// keys have the prefix removed.
func (p PrefixStore) Iterator(start, end []byte) Iterator {
	s, e := p.bounds(start, end)
	return prefixIterator{Iterator: p.parent.Iterator(s, e), cut: len(p.prefix)}
}

// ReverseIterator over [start, end) of the namespace in descending order.
func (p PrefixStore) ReverseIterator(start, end []byte) Iterator {
	s, e := p.bounds(start, end)
	return prefixIterator{Iterator: p.parent.ReverseIterator(s, e), cut: len(p.prefix)}
}

func (p PrefixStore) bounds(start, end []byte) ([]byte, []byte) {
	s := p.key(start)
	if end == nil {
		return s, PrefixEnd(p.prefix)
	}
	return s, p.key(end)
}

// PrefixRange returns the [start, end) range that covers all keys
// beginning with prefix.
func PrefixRange(prefix []byte) ([]byte, []byte) {
	start := append([]byte(nil), prefix...)
	return start, PrefixEnd(prefix)
}

// PrefixEnd returns the first key that is greater than all keys starting
// with prefix, or nil if no such key exists (prefix is all 0xFF).
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

type prefixBatch struct {
	prefix PrefixStore
	batch  Batch
}

func (b prefixBatch) Set(key, value []byte) { b.batch.Set(b.prefix.key(key), value) }
func (b prefixBatch) Delete(key []byte)     { b.batch.Delete(b.prefix.key(key)) }
func (b prefixBatch) Write()                { b.batch.Write() }

type prefixIterator struct {
	Iterator
	cut int
}

func (i prefixIterator) Key() []byte {
	return i.Iterator.Key()[i.cut:]
}
