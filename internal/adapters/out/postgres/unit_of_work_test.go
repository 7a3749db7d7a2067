package postgres_test

import (
	"context"
	"testing"
	"time"

	"ordersync/internal/adapters/out/postgres"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/domain/model/reel"
	"ordersync/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(context.Background(), db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newReelEvent(t *testing.T) *reel.Event {
	t.Helper()

	d1, err := reel.NewDetail(1, 1, "PX-100", false, 3)
	require.NoError(t, err)
	d2, err := reel.NewDetail(2, 1, "PX-200", true, 0)
	require.NoError(t, err)

	e, err := reel.NewEvent(kernel.NewUUID(), reel.Shape{
		ProductionOrder: 60000,
		UserID:          4,
		UpperShaftReels: 1,
		LowerShaftReels: 1,
		ReelLength:      1200,
	}, []reel.Detail{d1, d2}, time.Now().UTC())
	require.NoError(t, err)
	return e
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}

func TestUnitOfWork_TransactionErrors(t *testing.T) {
	ctx := testContext(t)
	uow := postgres.NewGormUnitOfWorkFactory(openSQLite(t)).Create()

	require.ErrorIs(t, uow.Commit(ctx), gorm.ErrInvalidTransaction)
	require.ErrorIs(t, uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.Begin(ctx), "second Begin is a no-op")
	require.NoError(t, uow.Rollback(ctx))
}

func TestUnitOfWork_CommitPersistsHeaderAndDetails(t *testing.T) {
	ctx := testContext(t)
	db := openSQLite(t)
	uow := postgres.NewGormUnitOfWorkFactory(db).Create()
	event := newReelEvent(t)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ReelEventRepository().Add(ctx, event))
	require.NoError(t, uow.Commit(ctx))
	require.ErrorIs(t, uow.Rollback(ctx), gorm.ErrInvalidTransaction, "rollback after commit changes nothing")

	stored, err := postgres.NewGormUnitOfWorkFactory(db).Create().ReelEventRepository().Get(ctx, event.MessageID())
	require.NoError(t, err)
	require.Len(t, stored.Details(), 2)
	assert.Equal(t, "PX-100", stored.Details()[0].ProductCode())
	assert.Equal(t, "PX-200", stored.Details()[1].ProductCode())
	assert.True(t, stored.Details()[1].ManualExit())
}

func TestUnitOfWork_RollbackRemovesHeaderAndDetails(t *testing.T) {
	ctx := testContext(t)
	db := openSQLite(t)
	uow := postgres.NewGormUnitOfWorkFactory(db).Create()
	event := newReelEvent(t)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ReelEventRepository().Add(ctx, event))
	require.NoError(t, uow.Rollback(ctx))

	assert.Zero(t, countRows(t, db, "reel_events"))
	assert.Zero(t, countRows(t, db, "reel_event_details"))

	_, err := postgres.NewGormUnitOfWorkFactory(db).Create().ReelEventRepository().Get(ctx, event.MessageID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUnitOfWork_WithoutTransaction(t *testing.T) {
	ctx := testContext(t)
	db := openSQLite(t)
	repo := postgres.NewGormUnitOfWorkFactory(db).Create().OrderRepository()

	o, err := order.NewOrder(60000, 3, kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)

	require.NoError(t, repo.Add(ctx, o))
	assert.Equal(t, int64(1), countRows(t, db, "production_orders"))
}

func TestNotConfiguredUnitOfWork(t *testing.T) {
	ctx := testContext(t)
	uow := postgres.NotConfiguredUnitOfWorkFactory{}.Create()

	require.ErrorIs(t, uow.Begin(ctx), errs.ErrNotConfigured)

	_, err := uow.OrderRepository().Get(ctx, 60000)
	require.ErrorIs(t, err, errs.ErrNotConfigured)
	assert.Equal(t, errs.StageConfiguration, errs.StageOf(err))
}
