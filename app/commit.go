package app

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// CommitStore handles loading from a CommitKVStore, maintaining the
// deliver CacheWrap transactions are written to, and returning useful
// state info.
type CommitStore struct {
	committed swap.CommitKVStore
	deliver   swap.KVCacheWrap
}

// NewCommitStore loads the latest version of the store and sets up the
// deliver cache.
func NewCommitStore(store swap.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	return &CommitStore{
		committed: store,
		deliver:   store.CacheWrap(),
	}, nil
}

// CommitInfo returns the current version and hash.
func (cs *CommitStore) CommitInfo() (swap.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit flushes deliver to the underlying store and persists it. It then
// regenerates the deliver cache.
func (cs *CommitStore) Commit() (swap.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return swap.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	res, err := cs.committed.Commit()
	if err != nil {
		return res, err
	}
	cs.deliver = cs.committed.CacheWrap()
	return res, nil
}

// DeliverStore returns the store uncommitted transactions are applied to.
func (cs *CommitStore) DeliverStore() swap.CacheableKVStore {
	return cs.deliver
}
