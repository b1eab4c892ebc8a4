package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/covenant"
	"github.com/iov-one/covenant/errors"
	"github.com/iov-one/covenant/store"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a prefixed subspace of the DB holding records of a single
// type.
//
// This is a generic building block that should generally
// be embedded in a type-safe wrapper to ensure all data
// is the same type.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}

	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name of the bucket.
func (b Bucket) Name() string {
	return b.name
}

// Sequence returns a sequence that lives next to this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consequetive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One loads the record stored under key into dest. Returns ErrNotFound
// if there is no such record.
func (b Bucket) One(db covenant.ReadOnlyKVStore, key []byte, dest Record) error {
	bz := db.Get(b.DBKey(key))
	if bz == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return Unmarshal(bz, dest)
}

// Has returns true if a record is stored under key.
func (b Bucket) Has(db covenant.ReadOnlyKVStore, key []byte) bool {
	return db.Has(b.DBKey(key))
}

// Put validates and writes a record under key.
func (b Bucket) Put(db covenant.KVStore, key []byte, r Record) error {
	bz, err := Marshal(r)
	if err != nil {
		return errors.Wrapf(err, "%s %X", b.name, key)
	}
	db.Set(b.DBKey(key), bz)
	return nil
}

// Delete will remove the value at a key
func (b Bucket) Delete(db covenant.KVStore, key []byte) {
	db.Delete(b.DBKey(key))
}

// Keys returns all keys of this bucket in ascending order, with the
// bucket prefix removed.
func (b Bucket) Keys(db covenant.ReadOnlyKVStore) [][]byte {
	start, end := store.PrefixRange(b.prefix)
	it := db.Iterator(start, end)
	defer it.Close()

	var keys [][]byte
	for ; it.Valid(); it.Next() {
		k := it.Key()
		keys = append(keys, append([]byte(nil), k[len(b.prefix):]...))
	}
	return keys
}
