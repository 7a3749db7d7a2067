package order_test

import (
	"testing"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)

func TestNewOrder(t *testing.T) {
	correlationID := kernel.NewUUID()

	t.Run("should create order with valid parameters", func(t *testing.T) {
		o, err := order.NewOrder(60000, 7, correlationID, now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, 60000, o.ProductionOrder())
		assert.Equal(t, 7, o.CreatorUser())
		assert.Equal(t, 7, o.LastModificatorUser())
		assert.Equal(t, order.StatusCreated, o.Status())
		assert.Equal(t, order.StatePending, o.State())
		assert.True(t, o.CorrelationID().IsEqual(correlationID))
		assert.Equal(t, now, o.CreatedAt())
	})

	t.Run("should reject numbers outside the exclusive range", func(t *testing.T) {
		for _, n := range []int{-1, 0, 50000, 1000000, 1000001} {
			o, err := order.NewOrder(n, 7, correlationID, now)

			require.Error(t, err, "number %d", n)
			assert.Nil(t, o)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should accept the numbers next to the bounds", func(t *testing.T) {
		for _, n := range []int{50001, 999999} {
			_, err := order.NewOrder(n, 7, correlationID, now)

			require.NoError(t, err, "number %d", n)
		}
	})

	t.Run("should join every failed check", func(t *testing.T) {
		_, err := order.NewOrder(10, 0, kernel.UUID{}, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "productionOrder")
		assert.Contains(t, err.Error(), "value is invalid: creatorUser")
		assert.Contains(t, err.Error(), "UUID must be created")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail for nil order", func(t *testing.T) {
		var o *order.Order

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should fail for zero value order", func(t *testing.T) {
		o := &order.Order{}

		assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should keep legacy numbers and stored status", func(t *testing.T) {
		o := order.RestoreOrder(42, "S1", 3, 4, now, now, order.Status(950), kernel.UUID{})

		require.NoError(t, o.Validate())
		assert.Equal(t, 42, o.ProductionOrder())
		assert.Equal(t, order.StateRegistered, o.State())
	})

	t.Run("should mint a message id when no correlation id is stored", func(t *testing.T) {
		o := order.RestoreOrder(60000, "S1", 3, 3, now, now, order.StatusRegistered, kernel.UUID{})

		first := o.MessageID()

		require.NoError(t, first.Validate())
		assert.True(t, o.CorrelationID().IsZero())
	})

	t.Run("should reuse the stored correlation id", func(t *testing.T) {
		id := kernel.NewUUID()
		o := order.RestoreOrder(60000, "S1", 3, 3, now, now, order.StatusRegistered, id)

		assert.True(t, o.MessageID().IsEqual(id))
	})
}

func TestOrder_ValidateStart(t *testing.T) {
	t.Run("should allow the whole 900..999 window", func(t *testing.T) {
		for _, s := range []order.Status{900, 901, 920, 930, 950, 999} {
			o := order.RestoreOrder(60000, "S1", 1, 1, now, now, s, kernel.UUID{})

			require.NoError(t, o.ValidateStart(), "status %d", s)
		}
	})

	t.Run("should reject codes outside the window", func(t *testing.T) {
		for _, s := range []order.Status{0, 100, 200, 201, 899, 1000, 1100, 1300} {
			o := order.RestoreOrder(60000, "S1", 1, 1, now, now, s, kernel.UUID{})

			err := o.ValidateStart()

			require.Error(t, err, "status %d", s)
			assert.True(t, errs.IsValidation(err))
		}
	})
}

func TestOrder_ValidateDelete(t *testing.T) {
	t.Run("should reject terminal orders with a conflict", func(t *testing.T) {
		for _, s := range []order.Status{1001, 1100, 1300} {
			o := order.RestoreOrder(60000, "S1", 1, 1, now, now, s, kernel.UUID{})

			assert.ErrorIs(t, o.ValidateDelete(), errs.ErrConflict, "status %d", s)
		}
	})

	t.Run("should allow non terminal orders", func(t *testing.T) {
		for _, s := range []order.Status{100, 201, 900, 930, 1000} {
			o := order.RestoreOrder(60000, "S1", 1, 1, now, now, s, kernel.UUID{})

			require.NoError(t, o.ValidateDelete(), "status %d", s)
		}
	})

	t.Run("should require a remote delete only inside the window", func(t *testing.T) {
		registered := order.RestoreOrder(60000, "S1", 1, 1, now, now, order.StatusStopped, kernel.UUID{})
		pending := order.RestoreOrder(60001, "S1", 1, 1, now, now, order.StatusCreated, kernel.UUID{})

		assert.True(t, registered.RequiresRemoteDelete())
		assert.False(t, pending.RequiresRemoteDelete())
	})
}

func TestOrder_Apply(t *testing.T) {
	t.Run("should move a started order to running", func(t *testing.T) {
		o := order.RestoreOrder(60000, "S1", 1, 1, now, now, order.Status(950), kernel.UUID{})

		next, err := o.Apply(order.EventStarted)

		require.NoError(t, err)
		assert.Equal(t, order.StatusRunning, next)
		assert.Equal(t, order.StatusRunning, o.Status())
	})

	t.Run("should leave the status untouched on an illegal event", func(t *testing.T) {
		o := order.RestoreOrder(60000, "S1", 1, 1, now, now, order.StatusCreated, kernel.UUID{})

		_, err := o.Apply(order.EventStarted)

		require.Error(t, err)
		assert.Equal(t, order.StatusCreated, o.Status())
	})
}

func TestOrder_Reassign(t *testing.T) {
	o := order.RestoreOrder(60000, "S1", 1, 1, now, now, order.StatusCreated, kernel.UUID{})
	later := now.Add(time.Hour)

	t.Run("should update slitter and modifier", func(t *testing.T) {
		require.NoError(t, o.Reassign(" S2 ", 9, later))

		assert.Equal(t, "S2", o.Slitter())
		assert.Equal(t, 9, o.LastModificatorUser())
		assert.Equal(t, later, o.ModifiedAt())
	})

	t.Run("should reject an invalid user", func(t *testing.T) {
		err := o.Reassign("S3", 0, later)

		require.Error(t, err)
		assert.Equal(t, "S2", o.Slitter())
	})
}
