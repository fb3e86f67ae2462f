package store

import (
	"bytes"

	"github.com/google/btree"
)

// ascendBtree returns the btree items, both set and deleted, within the
// [start, end) range in ascending order. A nil bound is open.
func ascendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	visit := func(i btree.Item) bool {
		items = append(items, i)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(visit)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, visit)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, visit)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, visit)
	}
	return items
}

// collect drains the iterator into a slice of models.
func collect(it Iterator) ([]Model, error) {
	var res []Model
	for it.Valid() {
		res = append(res, Pair(it.Key(), it.Value()))
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// mergeItems combines the ascending parent models with the ascending cache
// items. A cached value hides the parent value of the same key and a
// deleted item hides it entirely.
func mergeItems(parent []Model, cached []btree.Item) []Model {
	res := make([]Model, 0, len(parent)+len(cached))
	for len(parent) > 0 || len(cached) > 0 {
		if len(cached) == 0 {
			res = append(res, parent...)
			break
		}
		e := cached[0].(entry)
		if len(parent) > 0 {
			switch cmp := bytes.Compare(parent[0].Key, e.key); {
			case cmp < 0:
				res = append(res, parent[0])
				parent = parent[1:]
				continue
			case cmp == 0:
				parent = parent[1:]
			}
		}
		if !e.deleted {
			res = append(res, Pair(e.key, e.value))
		}
		cached = cached[1:]
	}
	return res
}
