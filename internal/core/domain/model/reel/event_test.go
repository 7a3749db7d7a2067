package reel_test

import (
	"testing"
	"time"

	"ordersync/internal/core/domain/model/kernel"
	"ordersync/internal/core/domain/model/reel"
	"ordersync/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validShape() reel.Shape {
	return reel.Shape{
		ProductionOrder: 60000,
		UserID:          4,
		UpperShaftReels: 2,
		LowerShaftReels: 1,
		ReelLength:      1500,
		EndOfLot:        true,
	}
}

func TestNewDetail(t *testing.T) {
	t.Run("should trim the product code", func(t *testing.T) {
		d, err := reel.NewDetail(1, 2, "  PX-100 ", true, 5)

		require.NoError(t, err)
		assert.Equal(t, "PX-100", d.ProductCode())
		assert.True(t, d.ManualExit())
		assert.Equal(t, 5, d.EdgeTrim())
	})

	t.Run("should join every failed check", func(t *testing.T) {
		_, err := reel.NewDetail(0, 0, " ", false, -1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "value is invalid: shaft")
		assert.Contains(t, err.Error(), "value is invalid: position")
		assert.Contains(t, err.Error(), "value is required: productCode")
		assert.Contains(t, err.Error(), "value is invalid: edgeTrim")
	})
}

func TestNewEvent(t *testing.T) {
	detail, err := reel.NewDetail(1, 1, "PX-100", false, 0)
	require.NoError(t, err)
	now := time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)

	t.Run("should build an event with its details", func(t *testing.T) {
		id := kernel.NewUUID()

		e, err := reel.NewEvent(id, validShape(), []reel.Detail{detail, detail}, now)

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.True(t, e.MessageID().IsEqual(id))
		assert.Equal(t, 60000, e.ProductionOrder())
		assert.Len(t, e.Details(), 2)
		assert.True(t, e.EndOfLot())
	})

	t.Run("should require at least one reel", func(t *testing.T) {
		_, err := reel.NewEvent(kernel.NewUUID(), validShape(), nil, now)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject an invalid header", func(t *testing.T) {
		shape := validShape()
		shape.UserID = 0
		shape.ReelLength = 0

		_, err := reel.NewEvent(kernel.UUID{}, shape, []reel.Detail{detail}, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "value is invalid: userId")
		assert.Contains(t, err.Error(), "value is invalid: reelLength")
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should not share the details slice", func(t *testing.T) {
		details := []reel.Detail{detail}
		e, err := reel.NewEvent(kernel.NewUUID(), validShape(), details, now)
		require.NoError(t, err)

		got := e.Details()
		got[0] = reel.Detail{}

		assert.Equal(t, "PX-100", e.Details()[0].ProductCode())
	})
}
