package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/costledger/internal/domain"
	"github.com/iho/costledger/internal/infrastructure/metrics"
)

// TransactionUseCase is the transaction processor. It validates a payload
// against the effect table and applies inventory and balance effects in one
// unit of work, re-running the unit on retryable conflicts.
type TransactionUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	partyRepo   CounterpartyRepository
	productRepo ProductRepository
	txRepo      TransactionRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	inventory   *InventoryStore
	ledger      *BalanceLedger

	retrier Retrier
	cache   Cache
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// TransactionOption configures optional collaborators of TransactionUseCase.
type TransactionOption func(*TransactionUseCase)

// WithRetrier re-runs units of work that fail on retryable conflicts.
func WithRetrier(r Retrier) TransactionOption {
	return func(uc *TransactionUseCase) { uc.retrier = r }
}

// WithBalanceCache invalidates cached balances of touched accounts after commit.
func WithBalanceCache(c Cache) TransactionOption {
	return func(uc *TransactionUseCase) { uc.cache = c }
}

// WithMetrics records transaction metrics.
func WithMetrics(m *metrics.Metrics) TransactionOption {
	return func(uc *TransactionUseCase) { uc.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) TransactionOption {
	return func(uc *TransactionUseCase) { uc.logger = l }
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	partyRepo CounterpartyRepository,
	productRepo ProductRepository,
	batchRepo BatchRepository,
	txRepo TransactionRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	opts ...TransactionOption,
) *TransactionUseCase {
	uc := &TransactionUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		partyRepo:   partyRepo,
		productRepo: productRepo,
		txRepo:      txRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		inventory:   NewInventoryStore(batchRepo, productRepo, idGen),
		ledger:      NewBalanceLedger(accountRepo, partyRepo, entryRepo, idGen),
		logger:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// TransactionLineInput represents one product line of a transaction payload.
type TransactionLineInput struct {
	ProductID       string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPerUnit decimal.Decimal
	// TotalAmount is computed from quantity and net price when zero.
	TotalAmount decimal.Decimal
	BatchID     *string
	ExpiresAt   *time.Time
}

// TransactionInput represents input for creating or updating a transaction.
type TransactionInput struct {
	Type                 domain.TransactionType
	SourceAccountID      *string
	DestinationAccountID *string
	AccountPayableID     *string
	AccountReceivableID  *string
	ReferenceID          *string
	TotalAmount          decimal.Decimal
	PaidAmount           decimal.Decimal
	Date                 *time.Time
	Note                 string
	Lines                []TransactionLineInput
}

// TransactionResult is a committed transaction with everything it produced.
type TransactionResult struct {
	Transaction   *domain.Transaction
	Lines         []*domain.TransactionLine
	Consumptions  []*domain.BatchConsumption
	PaymentStatus domain.PaymentStatus
}

func newTransactionResult(t *domain.Transaction) *TransactionResult {
	return &TransactionResult{
		Transaction:   t,
		Lines:         t.Lines,
		Consumptions:  t.Consumptions(),
		PaymentStatus: t.PaymentStatus(),
	}
}

// CreateTransaction applies a new transaction atomically.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input TransactionInput) (*TransactionResult, error) {
	start := time.Now()
	id := uc.idGen.Generate()

	var result *TransactionResult
	err := uc.retry(ctx, func() error {
		var err error
		result, err = uc.create(ctx, id, input)
		return err
	})

	uc.observe("create", input.Type, start, err)
	if err != nil {
		return nil, err
	}

	uc.recordCommitted(result.Transaction)
	uc.invalidateBalances(ctx, result.Transaction)

	return result, nil
}

func (uc *TransactionUseCase) create(ctx context.Context, id string, input TransactionInput) (*TransactionResult, error) {
	now := time.Now().UTC()

	// 1. Validate the payload before touching storage
	t := uc.build(id, input, now)
	if err := t.Validate(); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	// 2. Lock the referenced transaction, then accounts, counterparties and
	// products in id order (deadlock prevention)
	if t.ReferenceID != nil {
		if _, err := uc.txRepo.GetByIDForUpdate(txCtx, tx, *t.ReferenceID); err != nil {
			return nil, err
		}
	}

	rows, err := uc.lockRows(txCtx, tx, t)
	if err != nil {
		return nil, err
	}

	if err := checkParties(t, rows); err != nil {
		return nil, err
	}

	// 3. Inventory, then balances
	if err := uc.apply(txCtx, tx, t, rows, now); err != nil {
		return nil, err
	}

	// 4. Persist transaction, lines, consumptions and the outbox event
	if err := uc.txRepo.Create(txCtx, tx, t); err != nil {
		return nil, err
	}

	event := domain.NewTransactionEvent(uc.idGen.Generate(), domain.EventTypeTransactionCreated, t, now)
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return newTransactionResult(t), nil
}

// DeleteTransaction replays the inverse of a transaction's effects and
// removes it. Transactions referenced by others cannot be deleted.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string) error {
	start := time.Now()

	var deleted *domain.Transaction
	err := uc.retry(ctx, func() error {
		var err error
		deleted, err = uc.delete(ctx, id)
		return err
	})

	var typ domain.TransactionType
	if deleted != nil {
		typ = deleted.Type
	}
	uc.observe("delete", typ, start, err)
	if err != nil {
		return err
	}

	uc.invalidateBalances(ctx, deleted)

	return nil
}

func (uc *TransactionUseCase) delete(ctx context.Context, id string) (*domain.Transaction, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	t, err := uc.txRepo.GetByIDForUpdate(txCtx, tx, id)
	if err != nil {
		return nil, err
	}

	rows, err := uc.lockRows(txCtx, tx, t)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := uc.reverse(txCtx, tx, t, rows, now); err != nil {
		return nil, err
	}

	event := domain.NewTransactionEvent(uc.idGen.Generate(), domain.EventTypeTransactionDeleted, t, now)
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return t, nil
}

// UpdateTransaction deletes and recreates a transaction under the same id
// in one unit of work.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, id string, input TransactionInput) (*TransactionResult, error) {
	start := time.Now()

	var (
		result *TransactionResult
		old    *domain.Transaction
	)
	err := uc.retry(ctx, func() error {
		var err error
		result, old, err = uc.update(ctx, id, input)
		return err
	})

	uc.observe("update", input.Type, start, err)
	if err != nil {
		return nil, err
	}

	uc.recordCommitted(result.Transaction)
	uc.invalidateBalances(ctx, old)
	uc.invalidateBalances(ctx, result.Transaction)

	return result, nil
}

func (uc *TransactionUseCase) update(
	ctx context.Context,
	id string,
	input TransactionInput,
) (*TransactionResult, *domain.Transaction, error) {
	now := time.Now().UTC()

	t := uc.build(id, input, now)
	if err := t.Validate(); err != nil {
		return nil, nil, err
	}
	if t.ReferenceID != nil && *t.ReferenceID == id {
		return nil, nil, domain.Validationf("transaction cannot reference itself")
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	old, err := uc.txRepo.GetByIDForUpdate(txCtx, tx, id)
	if err != nil {
		return nil, nil, err
	}
	t.CreatedAt = old.CreatedAt

	if t.ReferenceID != nil {
		if _, err := uc.txRepo.GetByIDForUpdate(txCtx, tx, *t.ReferenceID); err != nil {
			return nil, nil, err
		}
	}

	rows, err := uc.lockRows(txCtx, tx, old, t)
	if err != nil {
		return nil, nil, err
	}

	if err := uc.reverse(txCtx, tx, old, rows, now); err != nil {
		return nil, nil, err
	}

	if err := checkParties(t, rows); err != nil {
		return nil, nil, err
	}

	if err := uc.apply(txCtx, tx, t, rows, now); err != nil {
		return nil, nil, err
	}

	if err := uc.txRepo.Create(txCtx, tx, t); err != nil {
		return nil, nil, err
	}

	event := domain.NewTransactionEvent(uc.idGen.Generate(), domain.EventTypeTransactionUpdated, t, now)
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, nil, err
	}

	return newTransactionResult(t), old, nil
}

// GetTransaction retrieves a transaction with its lines and consumptions.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*TransactionResult, error) {
	t, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return newTransactionResult(t), nil
}

// ListTransactions lists transactions matching filter, newest first.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, error) {
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)
	return uc.txRepo.List(ctx, filter)
}

func (uc *TransactionUseCase) build(id string, input TransactionInput, now time.Time) *domain.Transaction {
	date := now
	if input.Date != nil {
		date = input.Date.UTC()
	}

	t := &domain.Transaction{
		ID:                   id,
		Type:                 input.Type,
		SourceAccountID:      input.SourceAccountID,
		DestinationAccountID: input.DestinationAccountID,
		AccountPayableID:     input.AccountPayableID,
		AccountReceivableID:  input.AccountReceivableID,
		ReferenceID:          input.ReferenceID,
		TotalAmount:          input.TotalAmount,
		PaidAmount:           input.PaidAmount,
		Date:                 date,
		Note:                 input.Note,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	for _, li := range input.Lines {
		t.Lines = append(t.Lines, &domain.TransactionLine{
			ID:              uc.idGen.Generate(),
			ProductID:       li.ProductID,
			Quantity:        li.Quantity,
			UnitPrice:       li.UnitPrice,
			DiscountPerUnit: li.DiscountPerUnit,
			TotalAmount:     li.TotalAmount,
			BatchID:         li.BatchID,
			ExpiresAt:       li.ExpiresAt,
		})
	}

	t.Normalize()

	return t
}

type lockedRows struct {
	accounts map[string]*domain.Account
	parties  map[string]*domain.Counterparty
	products map[string]*domain.Product
}

func (uc *TransactionUseCase) lockRows(ctx context.Context, tx Transaction, ts ...*domain.Transaction) (*lockedRows, error) {
	var accountIDs, partyIDs, productIDs []string
	for _, t := range ts {
		accountIDs = append(accountIDs, t.AccountIDs()...)
		partyIDs = append(partyIDs, t.CounterpartyIDs()...)
		productIDs = append(productIDs, t.ProductIDs()...)
	}

	rows := &lockedRows{
		accounts: make(map[string]*domain.Account),
		parties:  make(map[string]*domain.Counterparty),
		products: make(map[string]*domain.Product),
	}

	if ids := sortedUnique(accountIDs); len(ids) > 0 {
		accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		if len(accounts) != len(ids) {
			return nil, domain.ErrAccountNotFound
		}
		for _, a := range accounts {
			rows.accounts[a.ID] = a
		}
	}

	if ids := sortedUnique(partyIDs); len(ids) > 0 {
		parties, err := uc.partyRepo.GetByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		if len(parties) != len(ids) {
			return nil, domain.ErrCounterpartyNotFound
		}
		for _, p := range parties {
			rows.parties[p.ID] = p
		}
	}

	if ids := sortedUnique(productIDs); len(ids) > 0 {
		products, err := uc.productRepo.GetByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return nil, err
		}
		if len(products) != len(ids) {
			return nil, domain.ErrProductNotFound
		}
		for _, p := range products {
			rows.products[p.ID] = p
		}
	}

	return rows, nil
}

// checkParties validates the stored state of everything a new transaction names.
func checkParties(t *domain.Transaction, rows *lockedRows) error {
	for _, id := range t.AccountIDs() {
		if !rows.accounts[id].IsActive() {
			return domain.ErrInactiveAccount
		}
	}

	named := []struct {
		id   *string
		kind domain.CounterpartyKind
	}{
		{t.AccountPayableID, domain.CounterpartyPayable},
		{t.AccountReceivableID, domain.CounterpartyReceivable},
	}
	for _, n := range named {
		if n.id == nil || *n.id == "" {
			continue
		}
		party := rows.parties[*n.id]
		if party.Kind != n.kind {
			return domain.ErrCounterpartyKindMismatch
		}
		if !party.IsActive() {
			return domain.ErrInactiveCounterparty
		}
	}

	return nil
}

func (uc *TransactionUseCase) apply(ctx context.Context, tx Transaction, t *domain.Transaction, rows *lockedRows, now time.Time) error {
	effect, _ := t.Effect()

	if err := uc.applyInventory(ctx, tx, t, effect, rows); err != nil {
		return err
	}

	if effect.ComputesProfit {
		profit := decimal.Zero
		for _, l := range t.Lines {
			profit = profit.Add(l.Profit())
		}
		t.ProfitLoss = &profit
	}

	return uc.applyLegs(ctx, tx, t, effect, rows, false, now)
}

func (uc *TransactionUseCase) applyInventory(
	ctx context.Context,
	tx Transaction,
	t *domain.Transaction,
	effect domain.Effect,
	rows *lockedRows,
) error {
	var sources map[string][]RestockSource
	if effect.Inventory == domain.InventoryRestock {
		var err error
		if sources, err = uc.restockSources(ctx, tx, t); err != nil {
			return err
		}
	}

	for _, line := range t.Lines {
		product := rows.products[line.ProductID]

		var (
			consumptions []*domain.BatchConsumption
			err          error
		)

		switch effect.Inventory {
		case domain.InventoryRecord:
			_, err = uc.inventory.RecordPurchase(ctx, tx, product, t.ID, line, t.Date, line.ExpiresAt)
		case domain.InventoryAllocate:
			consumptions, err = uc.inventory.Allocate(ctx, tx, product, line, t.Date)
		case domain.InventoryReturnToVendor:
			if line.BatchID != nil {
				consumptions, err = uc.inventory.ConsumeBatch(ctx, tx, product, *line.BatchID, line)
			} else {
				consumptions, err = uc.inventory.Allocate(ctx, tx, product, line, t.Date)
			}
		case domain.InventoryRestock:
			consumptions, err = uc.inventory.Restock(ctx, tx, product, line, sources[line.ProductID])
			drainSources(sources[line.ProductID], consumptions)
		}
		if err != nil {
			return err
		}

		line.Consumptions = consumptions
	}

	return nil
}

// restockSources computes, per product, what the referenced sale took from
// each batch minus what earlier returns already put back. Batches keep the
// sale's FIFO order.
func (uc *TransactionUseCase) restockSources(ctx context.Context, tx Transaction, t *domain.Transaction) (map[string][]RestockSource, error) {
	sale, err := uc.txRepo.GetByIDForUpdate(ctx, tx, *t.ReferenceID)
	if err != nil {
		return nil, err
	}

	if sale.Type != domain.TxSale {
		return nil, domain.Validationf("reference %s is a %s, not a sale", sale.ID, sale.Type)
	}

	if t.AccountReceivableID != nil && sale.AccountReceivableID != nil &&
		*t.AccountReceivableID != *sale.AccountReceivableID {
		return nil, domain.Validationf("return must use the receivable of sale %s", sale.ID)
	}

	sources := make(map[string][]RestockSource)
	index := make(map[string]int)

	for _, line := range sale.Lines {
		for _, c := range line.Consumptions {
			key := line.ProductID + "/" + c.BatchID
			if i, ok := index[key]; ok {
				sources[line.ProductID][i].Quantity = sources[line.ProductID][i].Quantity.Add(c.QuantitySold)
				continue
			}
			index[key] = len(sources[line.ProductID])
			sources[line.ProductID] = append(sources[line.ProductID], RestockSource{
				BatchID:       c.BatchID,
				Quantity:      c.QuantitySold,
				PurchasePrice: c.PurchasePriceUsed,
			})
		}
	}

	returns, err := uc.txRepo.ListByReference(ctx, tx, sale.ID)
	if err != nil {
		return nil, err
	}

	for _, r := range returns {
		if r.ID == t.ID {
			continue
		}
		for _, line := range r.Lines {
			for _, c := range line.Consumptions {
				if i, ok := index[line.ProductID+"/"+c.BatchID]; ok {
					sources[line.ProductID][i].Quantity = sources[line.ProductID][i].Quantity.Add(c.QuantitySold)
				}
			}
		}
	}

	return sources, nil
}

// drainSources lowers the returnable quantity by what restock rows put back,
// so a second line for the same product sees the remainder.
func drainSources(sources []RestockSource, rows []*domain.BatchConsumption) {
	for _, row := range rows {
		for i := range sources {
			if sources[i].BatchID == row.BatchID {
				sources[i].Quantity = sources[i].Quantity.Add(row.QuantitySold)
				break
			}
		}
	}
}

func (uc *TransactionUseCase) applyLegs(
	ctx context.Context,
	tx Transaction,
	t *domain.Transaction,
	effect domain.Effect,
	rows *lockedRows,
	reverse bool,
	now time.Time,
) error {
	accountLegs := []struct {
		leg domain.AccountLeg
		id  *string
	}{
		{effect.Source, t.SourceAccountID},
		{effect.Destination, t.DestinationAccountID},
	}

	for _, al := range accountLegs {
		delta := al.leg.Delta(t)
		if reverse {
			delta = delta.Neg()
		}
		if delta.IsZero() {
			continue
		}
		if al.id == nil {
			return domain.Validationf("%s moves an account it does not name", t.Type)
		}

		if err := uc.ledger.ApplyDelta(ctx, tx, rows.accounts[*al.id], t.ID, delta, false, now); err != nil {
			return err
		}
	}

	leg := effect.Counterparty
	if leg.Sign == 0 {
		return nil
	}

	delta := leg.Delta(t)
	if reverse {
		delta = delta.Neg()
	}
	if delta.IsZero() {
		return nil
	}

	id := leg.CounterpartyID(t)
	if id == nil {
		return domain.Validationf("%s moves a %s it does not name", t.Type, leg.Kind)
	}

	return uc.ledger.ApplyCounterpartyDelta(ctx, tx, rows.parties[*id], leg.Kind, t.ID, delta, now)
}

func (uc *TransactionUseCase) reverse(ctx context.Context, tx Transaction, t *domain.Transaction, rows *lockedRows, now time.Time) error {
	dependents, err := uc.txRepo.ListByReference(ctx, tx, t.ID)
	if err != nil {
		return err
	}
	if len(dependents) > 0 {
		return domain.ErrTransactionHasDependents
	}

	effect, ok := t.Effect()
	if !ok {
		return domain.ErrUnknownTransactionType
	}

	switch effect.Inventory {
	case domain.InventoryNone:
	case domain.InventoryRecord:
		for _, pid := range t.ProductIDs() {
			if err := uc.inventory.RemovePurchase(ctx, tx, rows.products[pid], t.ID); err != nil {
				return err
			}
		}
	default:
		byProduct := make(map[string][]*domain.BatchConsumption)
		for _, l := range t.Lines {
			byProduct[l.ProductID] = append(byProduct[l.ProductID], l.Consumptions...)
		}
		for _, pid := range t.ProductIDs() {
			if err := uc.inventory.Release(ctx, tx, rows.products[pid], byProduct[pid]); err != nil {
				return err
			}
		}
	}

	if err := uc.applyLegs(ctx, tx, t, effect, rows, true, now); err != nil {
		return err
	}

	return uc.txRepo.Delete(ctx, tx, t.ID)
}

func (uc *TransactionUseCase) retry(ctx context.Context, op func() error) error {
	if uc.retrier == nil {
		return op()
	}

	attempt := 0
	return uc.retrier.Retry(ctx, func() error {
		attempt++
		if attempt > 1 && uc.metrics != nil {
			uc.metrics.Retries.Inc()
		}
		return op()
	})
}

func (uc *TransactionUseCase) observe(op string, typ domain.TransactionType, start time.Time, err error) {
	if err != nil {
		uc.logger.Warn().
			Err(err).
			Str("operation", op).
			Str("type", string(typ)).
			Str("kind", domain.ErrorKind(err)).
			Msg("transaction rejected")
	} else {
		uc.logger.Debug().
			Str("operation", op).
			Str("type", string(typ)).
			Dur("duration", time.Since(start)).
			Msg("transaction committed")
	}

	if uc.metrics == nil {
		return
	}

	uc.metrics.TransactionDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		uc.metrics.TransactionErrors.WithLabelValues(op, domain.ErrorKind(err)).Inc()
		if errors.Is(err, domain.ErrInsufficientInventory) {
			uc.metrics.AllocationsFailed.Inc()
		}
		return
	}

	uc.metrics.Transactions.WithLabelValues(string(typ), op).Inc()
}

func (uc *TransactionUseCase) recordCommitted(t *domain.Transaction) {
	if uc.metrics == nil {
		return
	}

	amount, _ := t.TotalAmount.Abs().Float64()
	uc.metrics.TransactionAmount.WithLabelValues(string(t.Type)).Observe(amount)

	effect, _ := t.Effect()
	switch effect.Inventory {
	case domain.InventoryRecord:
		uc.metrics.BatchesCreated.Add(float64(len(t.Lines)))
	case domain.InventoryAllocate, domain.InventoryReturnToVendor:
		units := decimal.Zero
		for _, l := range t.Lines {
			units = units.Add(l.Quantity)
		}
		f, _ := units.Float64()
		uc.metrics.UnitsAllocated.WithLabelValues(string(t.Type)).Add(f)
	}
}

func (uc *TransactionUseCase) invalidateBalances(ctx context.Context, t *domain.Transaction) {
	if uc.cache == nil || t == nil {
		return
	}

	for _, id := range t.AccountIDs() {
		if err := uc.cache.Delete(ctx, BalanceCacheKey(id)); err != nil {
			uc.logger.Warn().Err(err).Str("account_id", id).Msg("failed to invalidate cached balance")
		}
	}
}

func sortedUnique(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)

	return out
}
