package mystore

import (
	"context"
	"maps"
	"sort"
	"sync"
)

type inMemoryTxKey struct{}

// inMemoryTx spans every in-memory store written within it. A store joins on first
// transactional use: it is locked and snapshotted until the outermost transaction ends.
type inMemoryTx struct {
	finishers map[any]func(rollback bool)
}

func (tx *inMemoryTx) joined(store any) bool {
	_, found := tx.finishers[store]
	return found
}

func (tx *inMemoryTx) finish(rollback bool) {
	for _, f := range tx.finishers {
		f(rollback)
	}
}

func inMemoryTxFromContext(c context.Context) *inMemoryTx {
	tx, _ := c.Value(inMemoryTxKey{}).(*inMemoryTx)
	return tx
}

type InMemoryStore[T any] struct {
	sync.Mutex
	Items map[string]T
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		Items: make(map[string]T),
	}, func() {}, nil
}

func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// Nested transactions, also on other stores, join the outer one
	tx := inMemoryTxFromContext(c)
	if tx != nil {
		s.join(tx)
		return f(c)
	}

	// Start transaction
	tx = &inMemoryTx{finishers: map[any]func(rollback bool){}}
	ctx := context.WithValue(c, inMemoryTxKey{}, tx)
	s.join(tx)

	// Within this block everything is transactional
	err := f(ctx)

	// Commit or rollback all joined stores
	tx.finish(err != nil)

	return err
}

func (s *InMemoryStore[T]) join(tx *inMemoryTx) {
	if tx.joined(s) {
		return
	}

	s.Lock()
	snapshot := maps.Clone(s.Items)

	tx.finishers[s] = func(rollback bool) {
		if rollback {
			s.Items = snapshot
		}
		s.Unlock()
	}
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	tx := inMemoryTxFromContext(c)
	if tx != nil {
		s.join(tx)
	} else {
		s.Lock()
		defer s.Unlock()
	}

	s.Items[uid] = value

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	nonTransactional := !s.inTransaction(c)

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	result, exists := s.Items[uid]

	return result, exists, nil
}

func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	nonTransactional := !s.inTransaction(c)

	if nonTransactional {
		s.Lock()
		defer s.Unlock()
	}

	// Stable order by key, like a datastore key-scan
	keys := make([]string, 0, len(s.Items))
	for k := range s.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]T, 0, len(s.Items))
	for _, k := range keys {
		result = append(result, s.Items[k])
	}

	return result, nil
}

func (s *InMemoryStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	return s.List(c)
}

// inTransaction reports whether this store already holds its lock for the transaction in c.
// Reads do not join: they lock briefly like outside a transaction.
func (s *InMemoryStore[T]) inTransaction(c context.Context) bool {
	tx := inMemoryTxFromContext(c)
	return tx != nil && tx.joined(s)
}
