package repository

import (
	"context"
	"fmt"

	"salespoint/database"
	"salespoint/events"
	"salespoint/models"
	"salespoint/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the UnitOfWork interface over a Postgres transaction
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	legacyTeam       models.Team
	transactionalBus *events.TransactionalBus
	recordRepo       service.RecordRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus, legacyTeam models.Team) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:         db,
		eventBus:   eventBus,
		legacyTeam: legacyTeam,
	}
}

type unitOfWorkFactory struct {
	db         *database.DB
	eventBus   *events.Bus
	legacyTeam models.Team
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		legacyTeam:       f.legacyTeam,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx
	u.recordRepo = newRecordRepositoryWithStore(&postgresStore{q: tx}, u.legacyTeam)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// RecordRepository returns the record repository for this unit of work
func (u *unitOfWork) RecordRepository() service.RecordRepository {
	if u.recordRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.recordRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}

// memoryUnitOfWork stages writes against a MemoryStore
type memoryUnitOfWork struct {
	store            *MemoryStore
	tx               *memoryTx
	ctx              context.Context
	legacyTeam       models.Team
	transactionalBus *events.TransactionalBus
	recordRepo       service.RecordRepository
}

// NewMemoryUnitOfWorkFactory creates a UnitOfWork factory backed by store
func NewMemoryUnitOfWorkFactory(store *MemoryStore, eventBus *events.Bus, legacyTeam models.Team) service.UnitOfWorkFactory {
	return &memoryUnitOfWorkFactory{
		store:      store,
		eventBus:   eventBus,
		legacyTeam: legacyTeam,
	}
}

type memoryUnitOfWorkFactory struct {
	store      *MemoryStore
	eventBus   *events.Bus
	legacyTeam models.Team
}

func (f *memoryUnitOfWorkFactory) Create() service.UnitOfWork {
	return &memoryUnitOfWork{
		store:            f.store,
		legacyTeam:       f.legacyTeam,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

func (u *memoryUnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = newMemoryTx(u.store)
	u.ctx = ctx
	u.recordRepo = newRecordRepositoryWithStore(u.tx, u.legacyTeam)
	return nil
}

func (u *memoryUnitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	u.tx.commit()
	u.tx = nil
	u.transactionalBus.Flush(u.ctx)
	return nil
}

func (u *memoryUnitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}
	u.tx = nil
	u.transactionalBus.Discard()
	return nil
}

func (u *memoryUnitOfWork) RecordRepository() service.RecordRepository {
	if u.recordRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.recordRepo
}

func (u *memoryUnitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}
