// Package memory is an in-process storage backend. It serializes units of
// work with a single writer slot and publishes each unit's changes by
// swapping in a private copy of the state on commit, so a rolled back unit
// leaves no trace.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/usecase"
)

var (
	errTxDone       = errors.New("memory: transaction already finished")
	errForeignTx    = errors.New("memory: transaction was not started by this store")
	errDuplicateKey = errors.New("memory: duplicate key")
)

type state struct {
	accounts     map[string]*domain.Account
	parties      map[string]*domain.Counterparty
	products     map[string]*domain.Product
	batches      map[string]*domain.Batch
	transactions map[string]*domain.Transaction
	entries      []*domain.BalanceEntry
	outbox       []*domain.OutboxEvent
	batchSeq     int64
}

func newState() *state {
	return &state{
		accounts:     make(map[string]*domain.Account),
		parties:      make(map[string]*domain.Counterparty),
		products:     make(map[string]*domain.Product),
		batches:      make(map[string]*domain.Batch),
		transactions: make(map[string]*domain.Transaction),
	}
}

// clone copies every mutable record. Entries and outbox events are
// append-only apart from publish marks, so their slices are copied but the
// entries themselves are shared.
func (s *state) clone() *state {
	c := &state{
		accounts:     make(map[string]*domain.Account, len(s.accounts)),
		parties:      make(map[string]*domain.Counterparty, len(s.parties)),
		products:     make(map[string]*domain.Product, len(s.products)),
		batches:      make(map[string]*domain.Batch, len(s.batches)),
		transactions: make(map[string]*domain.Transaction, len(s.transactions)),
		entries:      append([]*domain.BalanceEntry(nil), s.entries...),
		outbox:       make([]*domain.OutboxEvent, len(s.outbox)),
		batchSeq:     s.batchSeq,
	}
	for id, a := range s.accounts {
		c.accounts[id] = copyAccount(a)
	}
	for id, p := range s.parties {
		c.parties[id] = copyParty(p)
	}
	for id, p := range s.products {
		c.products[id] = copyProduct(p)
	}
	for id, b := range s.batches {
		c.batches[id] = copyBatch(b)
	}
	for id, t := range s.transactions {
		c.transactions[id] = copyTransaction(t)
	}
	for i, e := range s.outbox {
		c.outbox[i] = copyEvent(e)
	}
	return c
}

// Store holds the committed state and implements usecase.TransactionManager.
type Store struct {
	// writer is a one-slot semaphore held from Begin until Commit or
	// Rollback, and around every write made outside a unit of work.
	writer chan struct{}

	mu        sync.RWMutex
	committed *state
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		writer:    make(chan struct{}, 1),
		committed: newState(),
	}
}

// Begin waits for the writer slot and starts a unit of work on a private
// copy of the committed state.
func (s *Store) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	work := s.committed.clone()
	s.mu.RUnlock()

	return &Tx{store: s, work: work}, nil
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.writer <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.writer
}

// read runs fn against the committed state.
func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.committed)
}

// write applies fn to the committed state outside any unit of work.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.committed)
}

// Tx is a unit of work against a Store.
type Tx struct {
	store *Store
	work  *state
	done  bool
}

// Commit publishes the unit's state.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true

	t.store.mu.Lock()
	t.store.committed = t.work
	t.store.mu.Unlock()

	t.store.release()
	return nil
}

// Rollback discards the unit's state. Calling it after Commit is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.work = nil
	t.store.release()
	return nil
}

func workState(tx usecase.Transaction) (*state, error) {
	t, ok := tx.(*Tx)
	if !ok {
		return nil, errForeignTx
	}
	if t.done {
		return nil, errTxDone
	}
	return t.work, nil
}

// Accounts returns the account repository.
func (s *Store) Accounts() *AccountRepository { return &AccountRepository{store: s} }

// Counterparties returns the counterparty repository.
func (s *Store) Counterparties() *CounterpartyRepository { return &CounterpartyRepository{store: s} }

// Products returns the product repository.
func (s *Store) Products() *ProductRepository { return &ProductRepository{store: s} }

// Batches returns the batch repository.
func (s *Store) Batches() *BatchRepository { return &BatchRepository{store: s} }

// Transactions returns the transaction repository.
func (s *Store) Transactions() *TransactionRepository { return &TransactionRepository{store: s} }

// Entries returns the balance entry repository.
func (s *Store) Entries() *EntryRepository { return &EntryRepository{store: s} }

// Ledger returns the ledger-wide aggregation repository.
func (s *Store) Ledger() *LedgerRepository { return &LedgerRepository{store: s} }

// Outbox returns the outbox repository.
func (s *Store) Outbox() *OutboxRepository { return &OutboxRepository{store: s} }

func copyAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func copyParty(p *domain.Counterparty) *domain.Counterparty {
	c := *p
	return &c
}

func copyProduct(p *domain.Product) *domain.Product {
	c := *p
	return &c
}

func copyBatch(b *domain.Batch) *domain.Batch {
	c := *b
	return &c
}

func copyTransaction(t *domain.Transaction) *domain.Transaction {
	c := *t
	c.Lines = make([]*domain.TransactionLine, len(t.Lines))
	for i, l := range t.Lines {
		lc := *l
		lc.Consumptions = make([]*domain.BatchConsumption, len(l.Consumptions))
		for j, bc := range l.Consumptions {
			bcc := *bc
			lc.Consumptions[j] = &bcc
		}
		c.Lines[i] = &lc
	}
	return &c
}

func copyEvent(e *domain.OutboxEvent) *domain.OutboxEvent {
	c := *e
	return &c
}
