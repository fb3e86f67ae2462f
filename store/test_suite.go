package store

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"sort"
	"testing"

	"github.com/iov-one/swap/swaptest/assert"
)

// TestSuite runs the savepoint checks every CacheableKVStore must pass.
// The executor keeps account records in these stores and relies on a
// cache wrap being invisible to its parent until written.
type TestSuite struct {
	open TestStoreConstructor
}

// TestStoreConstructor opens an empty store and returns a function that
// releases it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{open: constructor}
}

// acctKey builds a key shaped like an account record key.
func acctKey(n int) []byte {
	key := make([]byte, 2+32)
	copy(key, "a:")
	binary.BigEndian.PutUint64(key[2:], uint64(n))
	return key
}

// acctValue builds a value that looks like a serialized account with the
// given lamports.
func acctValue(lamports uint64) []byte {
	v := make([]byte, 8+32+1)
	binary.BigEndian.PutUint64(v, lamports)
	return v
}

// GetSet walks one account through a savepoint that is written, one that
// is discarded and one that closes the account.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.open()
	defer cleanup()

	payer, payee, temp := acctKey(1), acctKey(2), acctKey(3)
	funded := acctValue(1000)
	s.AssertGetHas(t, base, payer, nil, false)
	assert.Nil(t, base.Set(payer, funded))
	s.AssertGetHas(t, base, payer, funded, true)

	tx := base.CacheWrap()
	s.AssertGetHas(t, tx, payer, funded, true)
	assert.Nil(t, tx.Set(payee, acctValue(10)))
	s.AssertGetHas(t, tx, payee, acctValue(10), true)
	// the parent sees nothing until the savepoint is written
	s.AssertGetHas(t, base, payee, nil, false)
	assert.Nil(t, tx.Write())
	s.AssertGetHas(t, base, payer, funded, true)
	s.AssertGetHas(t, base, payee, acctValue(10), true)

	failed := base.CacheWrap()
	assert.Nil(t, failed.Set(temp, acctValue(5)))
	assert.Nil(t, failed.Set(payer, acctValue(0)))
	failed.Discard()
	s.AssertGetHas(t, base, temp, nil, false)
	s.AssertGetHas(t, base, payer, funded, true)

	closing := base.CacheWrap()
	assert.Nil(t, closing.Delete(payer))
	s.AssertGetHas(t, closing, payer, nil, false)
	s.AssertGetHas(t, base, payer, funded, true)
	assert.Nil(t, closing.Write())
	s.AssertGetHas(t, base, payer, nil, false)
	s.AssertGetHas(t, base, payee, acctValue(10), true)
}

// CacheConflicts writes to keys the parent already holds.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	cases := map[string]struct {
		parent []Op
		child  []Op
		// a nil value means the key must be absent
		beforeWrite []Model
		afterWrite  []Model
	}{
		"debit credit and close": {
			parent:      []Op{SetOp(acctKey(1), acctValue(100)), SetOp(acctKey(2), acctValue(7))},
			child:       []Op{SetOp(acctKey(1), acctValue(60)), SetOp(acctKey(3), acctValue(40)), DelOp(acctKey(2))},
			beforeWrite: []Model{Pair(acctKey(1), acctValue(100)), Pair(acctKey(2), acctValue(7)), Pair(acctKey(3), nil)},
			afterWrite:  []Model{Pair(acctKey(1), acctValue(60)), Pair(acctKey(2), nil), Pair(acctKey(3), acctValue(40))},
		},
		"recreate a closed account": {
			parent:      []Op{SetOp(acctKey(4), acctValue(9))},
			child:       []Op{DelOp(acctKey(4)), SetOp(acctKey(4), acctValue(2))},
			beforeWrite: []Model{Pair(acctKey(4), acctValue(9))},
			afterWrite:  []Model{Pair(acctKey(4), acctValue(2))},
		},
		"close an unknown account": {
			parent:      []Op{SetOp(acctKey(5), acctValue(1))},
			child:       []Op{DelOp(acctKey(6))},
			beforeWrite: []Model{Pair(acctKey(5), acctValue(1)), Pair(acctKey(6), nil)},
			afterWrite:  []Model{Pair(acctKey(5), acctValue(1)), Pair(acctKey(6), nil)},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			parent, cleanup := s.open()
			defer cleanup()
			applyOps(t, parent, tc.parent)

			child := parent.CacheWrap()
			applyOps(t, child, tc.child)
			for _, m := range tc.beforeWrite {
				s.AssertGetHas(t, parent, m.Key, m.Value, m.Value != nil)
			}
			for _, m := range tc.afterWrite {
				s.AssertGetHas(t, child, m.Key, m.Value, m.Value != nil)
			}

			assert.Nil(t, child.Write())
			for _, m := range tc.afterWrite {
				s.AssertGetHas(t, parent, m.Key, m.Value, m.Value != nil)
			}
		})
	}
}

// FuzzIterator checks range iteration over random records spread between
// a parent and a cache wrap, with random deletes on both sides.
func (s *TestSuite) FuzzIterator(t *testing.T) {
	const size = 50
	r := rand.New(rand.NewSource(42))

	child := randModels(r, size)
	childDel := randModels(r, 20)
	parent := randModels(r, size)
	parentDel := randModels(r, 20)

	onlyChild := sortModels(child)
	merged := sortModels(append(append([]Model{}, child...), parent...))

	cases := map[string]iterCase{
		"empty parent": {
			child:   append(setOps(child...), delOps(childDel...)...),
			queries: boundedQueries(onlyChild),
		},
		"parent and child": {
			parent:  append(setOps(parent...), delOps(parentDel...)...),
			child:   append(setOps(child...), delOps(childDel...)...),
			queries: boundedQueries(merged),
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			base, cleanup := s.open()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// boundedQueries covers open, lower-bounded, upper-bounded and closed
// ranges over the sorted models.
func boundedQueries(sorted []Model) []rangeQuery {
	n := len(sorted)
	return []rangeQuery{
		{nil, nil, sorted},
		{sorted[10].Key, nil, sorted[10:]},
		{nil, sorted[n-8].Key, sorted[:n-8]},
		{sorted[17].Key, sorted[28].Key, sorted[17:28]},
	}
}

// IteratorWithConflicts iterates over keys that are overwritten or
// deleted by the cache wrap.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	payer := Pair(acctKey(1), acctValue(100))
	payee := Pair(acctKey(2), acctValue(0))
	escrow := Pair(acctKey(3), acctValue(5))
	temp := Pair(acctKey(4), acctValue(2))
	payerAfter := Pair(payer.Key, acctValue(70))
	payeeAfter := Pair(payee.Key, acctValue(30))

	all := []Model{payer, payee, escrow}
	settled := []Model{payerAfter, payeeAfter, escrow, temp}

	cases := map[string]iterCase{
		"child only": {
			child:   setOps(payer, payee, escrow),
			queries: []rangeQuery{{nil, nil, all}, {payee.Key, escrow.Key, all[1:2]}},
		},
		"parent only": {
			parent:  setOps(payer, payee, escrow),
			queries: []rangeQuery{{nil, nil, all}, {payee.Key, escrow.Key, all[1:2]}},
		},
		"split between both": {
			parent:  setOps(payer, payee),
			child:   setOps(escrow),
			queries: []rangeQuery{{nil, nil, all}, {payee.Key, escrow.Key, all[1:2]}},
		},
		"child overwrites": {
			parent:  setOps(payer, payee, escrow),
			child:   setOps(payerAfter, payeeAfter, temp),
			queries: []rangeQuery{{nil, nil, settled}, {payee.Key, temp.Key, settled[1:3]}},
		},
		"child closes": {
			parent: setOps(payer, escrow, temp),
			child:  delOps(payer, payee, temp),
			queries: []rangeQuery{
				{nil, nil, []Model{escrow}},
				{nil, escrow.Key, nil},
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			base, cleanup := s.open()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

// AssertGetHas checks Get and Has agree on the expected value.
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func applyOps(t testing.TB, kv SetDeleter, ops []Op) {
	t.Helper()
	for _, op := range ops {
		assert.Nil(t, op.Apply(kv))
	}
}

// randModels returns count records under distinct random account keys.
func randModels(r *rand.Rand, count int) []Model {
	models := make([]Model, count)
	for i := range models {
		key := acctKey(0)
		r.Read(key[2:])
		models[i] = Pair(key, acctValue(r.Uint64()))
	}
	return models
}

type iterCase struct {
	parent  []Op
	child   []Op
	queries []rangeQuery
}

func (c iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()
	applyOps(t, base, c.parent)
	child := base.CacheWrap()
	applyOps(t, child, c.child)

	for _, q := range c.queries {
		it, err := child.Iterator(q.start, q.end)
		assert.Nil(t, err)
		got, err := collect(it)
		assert.Nil(t, err)
		it.Close()
		if len(got) != len(q.expected) {
			t.Fatalf("range %X..%X: want %d records, got %d", q.start, q.end, len(q.expected), len(got))
		}
		for i, m := range q.expected {
			if !bytes.Equal(m.Key, got[i].Key) {
				t.Fatalf("record %d: want key %X, got %X", i, m.Key, got[i].Key)
			}
			assert.Equal(t, m.Value, got[i].Value)
		}
	}
}

type rangeQuery struct {
	start    []byte
	end      []byte
	expected []Model
}

// sortModels returns a copy ordered by key.
func sortModels(models []Model) []Model {
	res := append([]Model(nil), models...)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func setOps(ms ...Model) []Op {
	ops := make([]Op, len(ms))
	for i, m := range ms {
		ops[i] = SetOp(m.Key, m.Value)
	}
	return ops
}

func delOps(ms ...Model) []Op {
	ops := make([]Op, len(ms))
	for i, m := range ms {
		ops[i] = DelOp(m.Key)
	}
	return ops
}
