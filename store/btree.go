package store

import (
	"bytes"

	"github.com/google/btree"
)

const (
	// DefaultFreeListSize is the size we hold for free node in btree
	DefaultFreeListSize = btree.DefaultFreeListSize
)

// BTreeCacheable adds a simple btree-based CacheWrap
// strategy to a KVStore
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later
// written to this store, or rolled back
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a simple implementation useful for tests.
// There is no persistence here....
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

///////////////////////////////////////////////
// Actual CacheWrap implementation

// BTreeCacheWrap places a btree cache over a KVStore
type BTreeCacheWrap struct {
	bt        *btree.BTree
	free      *btree.FreeList
	back      ReadOnlyKVStore
	batch     Batch
	discarded bool
}

var _ KVCacheWrap = (*BTreeCacheWrap)(nil)

// NewBTreeCacheWrap initializes a BTree to cache around this
// kv store. Use ReadOnlyKVStore to emphasize that all writes
// must go through the Batch.
//
// free may be nil, but set to an existing list to reuse it
// for memory savings
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) *BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return &BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another BTree on top of this one.
//
// Uses NonAtomicBatch as it is only backed by another in-memory batch
func (b *BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a non-atomic batch that eventually may write to
// our cachewrap
func (b *BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write syncs with the underlying store.
// And then cleans up
func (b *BTreeCacheWrap) Write() {
	if b.discarded {
		panic("write of a discarded cache wrap")
	}
	b.batch.Write()
	b.Discard()
}

// Discard invalidates this CacheWrap and releases all data
func (b *BTreeCacheWrap) Discard() {
	// clean up the btree -> freelist
	for stop := false; !stop; {
		rem := b.bt.DeleteMin()
		stop = (rem == nil)
	}
	b.discarded = true
}

// Set writes to the BTree and to the batch
func (b *BTreeCacheWrap) Set(key, value []byte) {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	b.batch.Set(key, value)
}

// Delete deletes from the BTree and to the batch
func (b *BTreeCacheWrap) Delete(key []byte) {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	b.batch.Delete(key)
}

// Get reads from btree if there, else backing store
func (b *BTreeCacheWrap) Get(key []byte) []byte {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch t := res.(type) {
		case setItem:
			return t.value
		case deletedItem:
			return nil
		default:
			panic("Unknown item in btree")
		}
	}
	return b.back.Get(key)
}

// Has reads from btree if there, else backing store
func (b *BTreeCacheWrap) Has(key []byte) bool {
	res := b.bt.Get(bkey{key})
	if res != nil {
		switch res.(type) {
		case setItem:
			return true
		case deletedItem:
			return false
		default:
			panic("Unknown item in btree")
		}
	}
	return b.back.Has(key)
}

// Iterator over a domain of keys in ascending order.
// Combines results from btree and backing store
func (b *BTreeCacheWrap) Iterator(start, end []byte) Iterator {
	local := ascendBtree(b.bt, start, end)
	parent := b.back.Iterator(start, end)
	defer parent.Close()
	return NewSliceIterator(combine(parent, local, false))
}

// ReverseIterator over a domain of keys in descending order.
// Combines results from btree and backing store
func (b *BTreeCacheWrap) ReverseIterator(start, end []byte) Iterator {
	local := ascendBtree(b.bt, start, end)
	for i, j := 0, len(local)-1; i < j; i, j = i+1, j-1 {
		local[i], local[j] = local[j], local[i]
	}
	parent := b.back.ReverseIterator(start, end)
	defer parent.Close()
	return NewSliceIterator(combine(parent, local, true))
}

// ascendBtree returns all btree items within [start, end) in ascending
// order. nil start or end means an open range.
func ascendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	collect := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// combine joins our results with those of the parent,
// taking into consideration overwrites and deletes.
// Both sources must be ordered the same way, descending if desc is set.
func combine(parent Iterator, local []btree.Item, desc bool) []Model {
	var res []Model
	for parent.Valid() || len(local) > 0 {
		if len(local) == 0 {
			res = append(res, Model{Key: parent.Key(), Value: parent.Value()})
			parent.Next()
			continue
		}
		item := local[0].(keyer)
		if parent.Valid() {
			cmp := bytes.Compare(parent.Key(), item.Key())
			if desc {
				cmp = -cmp
			}
			if cmp < 0 {
				res = append(res, Model{Key: parent.Key(), Value: parent.Value()})
				parent.Next()
				continue
			}
			if cmp == 0 {
				// Our value is shadowing the parent one.
				parent.Next()
			}
		}
		if set, ok := item.(setItem); ok {
			res = append(res, Model{Key: set.key, Value: set.value})
		}
		local = local[1:]
	}
	return res
}

/////////////////////////////////////////////////////////
// Items to write to btree

// we enforce all data in our btree implements keyer so we
// can compare nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item
// and may be used for queries or embedded in data to store
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first
//
// panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type deletedItem struct {
	bkey
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{bkey{key}}
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}
