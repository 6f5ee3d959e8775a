// Package memory is an in-process Store used by tests and by STORE_DRIVER=memory.
// Units of work are serialized and applied to a private copy that replaces
// the committed data only when the callback succeeds.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/SscSPs/commerce_lifecycle_app/internal/core/domain"
	portsrepo "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/repositories"
)

type dataset struct {
	transactions map[string]domain.Transaction
	sequences    map[string]string
	reservations map[string][]domain.Reservation
	items        map[string]domain.CatalogItem
	skus         map[string]string
	components   map[string][]domain.ComboComponent
	inventory    map[string]domain.InventoryRecord
	history      map[string][]domain.StatusHistoryEntry
	outbox       []domain.OutboxMessage
	profiles     map[string]domain.CommissionProfile
}

func newDataset() *dataset {
	return &dataset{
		transactions: map[string]domain.Transaction{},
		sequences:    map[string]string{},
		reservations: map[string][]domain.Reservation{},
		items:        map[string]domain.CatalogItem{},
		skus:         map[string]string{},
		components:   map[string][]domain.ComboComponent{},
		inventory:    map[string]domain.InventoryRecord{},
		history:      map[string][]domain.StatusHistoryEntry{},
		profiles:     map[string]domain.CommissionProfile{},
	}
}

// clone copies the maps. Stored values are never mutated in place, so sharing them is safe.
func (d *dataset) clone() *dataset {
	return &dataset{
		transactions: cloneMap(d.transactions),
		sequences:    cloneMap(d.sequences),
		reservations: cloneMap(d.reservations),
		items:        cloneMap(d.items),
		skus:         cloneMap(d.skus),
		components:   cloneMap(d.components),
		inventory:    cloneMap(d.inventory),
		history:      cloneMap(d.history),
		outbox:       slices.Clone(d.outbox),
		profiles:     cloneMap(d.profiles),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type root struct {
	mu     sync.RWMutex // guards data
	txMu   sync.Mutex   // serializes units of work
	data   *dataset
	faults map[string]error
}

type txState struct {
	data *dataset
}

// Store implements portsrepo.Store in memory.
type Store struct {
	root *root
	tx   *txState
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{root: &root{data: newDataset(), faults: map[string]error{}}}
}

// NewRepositoryProvider wires a fresh in-memory store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{Store: NewStore()}
}

var _ portsrepo.Store = (*Store)(nil)

// InjectFault makes every subsequent call of op fail with err until cleared with a nil err.
// op is the repository method name, e.g. "UpdateTransactionState".
func (s *Store) InjectFault(op string, err error) {
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	if err == nil {
		delete(s.root.faults, op)
		return
	}
	s.root.faults[op] = err
}

func (s *Store) fault(op string) error {
	s.root.mu.RLock()
	defer s.root.mu.RUnlock()
	return s.root.faults[op]
}

// WithinTx runs fn on a private copy of the data and publishes it when fn returns nil.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.Store) error) error {
	if s.tx != nil {
		nested := &txState{data: s.tx.data.clone()}
		if err := fn(ctx, &Store{root: s.root, tx: nested}); err != nil {
			return err
		}
		s.tx.data = nested.data
		return nil
	}

	s.root.txMu.Lock()
	defer s.root.txMu.Unlock()

	s.root.mu.RLock()
	work := &txState{data: s.root.data.clone()}
	s.root.mu.RUnlock()

	if err := fn(ctx, &Store{root: s.root, tx: work}); err != nil {
		return err
	}

	s.root.mu.Lock()
	s.root.data = work.data
	s.root.mu.Unlock()
	return nil
}

func (s *Store) read(op string, fn func(d *dataset) error) error {
	if err := s.fault(op); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s.tx.data)
	}
	s.root.mu.RLock()
	defer s.root.mu.RUnlock()
	return fn(s.root.data)
}

// write runs fn inside the current unit of work, or a fresh one when there is none.
// fn may leave d partially modified on error; the copy is then discarded.
func (s *Store) write(ctx context.Context, op string, fn func(d *dataset) error) error {
	if err := s.fault(op); err != nil {
		return err
	}
	if s.tx != nil {
		nested := s.tx.data.clone()
		if err := fn(nested); err != nil {
			return err
		}
		s.tx.data = nested
		return nil
	}
	return s.WithinTx(ctx, func(_ context.Context, st portsrepo.Store) error {
		inner := st.(*Store)
		return fn(inner.tx.data)
	})
}

func (s *Store) Transactions() portsrepo.TransactionRepositoryFacade { return transactionRepo{s} }
func (s *Store) Inventory() portsrepo.InventoryRepositoryFacade     { return inventoryRepo{s} }
func (s *Store) Catalog() portsrepo.CatalogRepositoryFacade         { return catalogRepo{s} }
func (s *Store) History() portsrepo.HistoryRepositoryFacade         { return historyRepo{s} }
func (s *Store) Outbox() portsrepo.OutboxRepositoryFacade           { return outboxRepo{s} }
func (s *Store) Commission() portsrepo.CommissionRepositoryFacade   { return commissionRepo{s} }
