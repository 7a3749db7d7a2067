package queries_test

import (
	"context"
	"testing"
	"time"

	"ordersync/internal/adapters/out/postgres"
	"ordersync/internal/adapters/out/postgres/orderrepo"
	"ordersync/internal/core/application/usecases/queries"
	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var created = time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

func newDB(t *testing.T) *gorm.DB {
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

func seedOrder(t *testing.T, db *gorm.DB, n int, at time.Time, status order.Status) *order.Order {
	t.Helper()

	repo := orderrepo.NewGormOrderRepository(db)
	o, err := order.NewOrder(n, 5, kernel.NewUUID(), at)
	require.NoError(t, err)
	require.NoError(t, repo.Add(testContext(t), o))
	if status != order.StatusCreated {
		require.NoError(t, repo.UpdateStatus(testContext(t), n, status))
	}
	return o
}

func TestGetOrderQueryHandler(t *testing.T) {
	db := newDB(t)
	stored := seedOrder(t, db, 60000, created, order.Status(950))
	h := queries.NewGetOrderQueryHandler(db)

	t.Run("found", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(60000)
		require.NoError(t, err)

		view, err := h.Handle(testContext(t), query)

		require.NoError(t, err)
		assert.Equal(t, 60000, view.ProductionOrder)
		assert.Equal(t, 950, view.Status)
		assert.Equal(t, string(order.StateRegistered), view.State)
		assert.Equal(t, 5, view.CreatorUser)
		assert.Equal(t, stored.CorrelationID().String(), view.CorrelationID)
		assert.True(t, created.Equal(view.CreatedAt))
	})

	t.Run("missing", func(t *testing.T) {
		query, _ := queries.NewGetOrderQuery(70000)

		_, err := h.Handle(testContext(t), query)

		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("not constructed", func(t *testing.T) {
		_, err := h.Handle(testContext(t), queries.GetOrderQuery{})
		assert.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}

func TestGetAllOrdersQueryHandler(t *testing.T) {
	db := newDB(t)
	seedOrder(t, db, 60000, created, order.StatusCreated)
	seedOrder(t, db, 60001, created.Add(time.Hour), order.StatusRunning)

	views, err := queries.NewGetAllOrdersQueryHandler(db).Handle(testContext(t), queries.NewGetAllOrdersQuery())

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 60001, views[0].ProductionOrder, "newest first")
	assert.Equal(t, string(order.StateRunning), views[0].State)
	assert.Equal(t, 60000, views[1].ProductionOrder)
}

func TestValidateOrderExistsQueryHandler(t *testing.T) {
	db := newDB(t)
	seedOrder(t, db, 60000, created, order.StatusCreated)
	h := queries.NewValidateOrderExistsQueryHandler(db)

	exists, err := h.Handle(testContext(t), queries.NewValidateOrderExistsQuery(60000))
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = h.Handle(testContext(t), queries.NewValidateOrderExistsQuery(42))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetSlitterMachinesQueryHandler(t *testing.T) {
	db := newDB(t)
	require.NoError(t, db.Create(&[]postgres.SlitterMachineDTO{
		{ID: 1, Code: "S2", Name: "Slitter two", Active: true},
		{ID: 2, Code: "S1", Name: "Slitter one", Active: true},
		{ID: 3, Code: "S9", Name: "Retired", Active: true},
	}).Error)
	require.NoError(t, db.Model(&postgres.SlitterMachineDTO{}).Where("id = ?", 3).Update("active", false).Error)

	machines, err := queries.NewGetSlitterMachinesQueryHandler(db).Handle(testContext(t), queries.NewGetSlitterMachinesQuery())

	require.NoError(t, err)
	assert.Equal(t, []queries.SlitterMachineView{
		{ID: 2, Code: "S1", Name: "Slitter one"},
		{ID: 1, Code: "S2", Name: "Slitter two"},
	}, machines)
}

func TestQueryHandlers_NotConfigured(t *testing.T) {
	ctx := testContext(t)

	getQuery, _ := queries.NewGetOrderQuery(60000)
	_, err := queries.NewGetOrderQueryHandler(nil).Handle(ctx, getQuery)
	assert.ErrorIs(t, err, errs.ErrNotConfigured)

	_, err = queries.NewGetAllOrdersQueryHandler(nil).Handle(ctx, queries.NewGetAllOrdersQuery())
	assert.ErrorIs(t, err, errs.ErrNotConfigured)

	_, err = queries.NewValidateOrderExistsQueryHandler(nil).Handle(ctx, queries.NewValidateOrderExistsQuery(60000))
	assert.ErrorIs(t, err, errs.ErrNotConfigured)

	_, err = queries.NewGetSlitterMachinesQueryHandler(nil).Handle(ctx, queries.NewGetSlitterMachinesQuery())
	assert.ErrorIs(t, err, errs.ErrNotConfigured)
}
