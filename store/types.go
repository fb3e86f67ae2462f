//nolint
package store

import "github.com/iov-one/swap"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = swap.ReadOnlyKVStore
type SetDeleter = swap.SetDeleter
type KVStore = swap.KVStore
type Batch = swap.Batch
type Iterator = swap.Iterator
type CacheableKVStore = swap.CacheableKVStore
type KVCacheWrap = swap.KVCacheWrap
type CommitKVStore = swap.CommitKVStore
type CommitID = swap.CommitID
