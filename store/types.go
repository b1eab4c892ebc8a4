//nolint
package store

import "github.com/iov-one/covenant"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = covenant.ReadOnlyKVStore
type SetDeleter = covenant.SetDeleter
type KVStore = covenant.KVStore
type Batch = covenant.Batch
type Iterator = covenant.Iterator
type CacheableKVStore = covenant.CacheableKVStore
type KVCacheWrap = covenant.KVCacheWrap
type CommitKVStore = covenant.CommitKVStore
type CommitID = covenant.CommitID
type Model = covenant.Model
