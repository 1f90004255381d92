package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreator(t *testing.T, role order.Role) order.Creator {
	t.Helper()
	creator, err := order.NewCreator(kernel.NewUUID(), role)
	require.NoError(t, err)
	return creator
}

func validItem(t *testing.T) order.Item {
	t.Helper()
	item, err := order.NewItem("SKU-100", 2, 50, "", 20, 35)
	require.NoError(t, err)
	return item
}

func validOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"INV-1001",
		kernel.CanonicalCountry("UAE"),
		"Dubai",
		"971",
		[]order.Item{validItem(t)},
		10,
		0,
		nil,
		validCreator(t, order.RoleManager),
		time.Now(),
	)
	require.NoError(t, err)
	return o
}

func orderInStatus(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o := validOrder(t)
	_, err := o.ChangeStatus(status, time.Now())
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create a pending order with all valid parameters", func(t *testing.T) {
		now := time.Now()
		id := kernel.NewUUID()

		o, err := order.NewOrder(id, "INV-1", kernel.SaudiArabia, "Riyadh", "966",
			[]order.Item{validItem(t)}, 15, 5, nil, validCreator(t, order.RoleOwner), now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, kernel.SaudiArabia, o.Country())
		assert.Equal(t, now, o.CreatedAt())
		assert.Nil(t, o.DriverID())
		assert.Nil(t, o.ShippedAt())
		assert.Nil(t, o.DeliveredAt())
		assert.False(t, o.ReturnState().IsSubmitted())
	})

	t.Run("should fail without an invoice number", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "", kernel.SaudiArabia, "", "",
			[]order.Item{validItem(t)}, 0, 0, nil, validCreator(t, order.RoleOwner), time.Now())

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "invoiceNumber")
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "INV-1", kernel.SaudiArabia, "", "",
			nil, 0, 0, nil, validCreator(t, order.RoleOwner), time.Now())

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "items")
	})

	t.Run("should fail with a non-canonical country", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "INV-1", kernel.CountryUnknown, "", "",
			[]order.Item{validItem(t)}, 0, 0, nil, validCreator(t, order.RoleOwner), time.Now())

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "country is invalid")
	})

	t.Run("should fail with malformed charges", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "INV-1", kernel.SaudiArabia, "", "",
			[]order.Item{validItem(t)}, -3, 0, nil, validCreator(t, order.RoleOwner), time.Now())

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "shippingFee is invalid")
	})

	t.Run("should reject a zero-value order", func(t *testing.T) {
		var o order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should move freely between non-delivered statuses", func(t *testing.T) {
		o := validOrder(t)

		path := []order.Status{
			order.Assigned, order.PickedUp, order.Pending,
			order.NoResponse, order.Cancelled, order.InTransit,
		}
		for _, status := range path {
			adjustments, err := o.ChangeStatus(status, time.Now())

			require.NoError(t, err, "transition to %s", status)
			assert.Empty(t, adjustments)
			assert.Equal(t, status, o.Status())
		}
	})

	t.Run("should reject statuses outside the fixed set", func(t *testing.T) {
		o := validOrder(t)

		_, err := o.ChangeStatus(order.Unknown, time.Now())

		require.Error(t, err)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should stamp shippedAt on first entry into in_transit only", func(t *testing.T) {
		o := validOrder(t)
		first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		second := first.Add(48 * time.Hour)

		_, err := o.ChangeStatus(order.InTransit, first)
		require.NoError(t, err)
		require.NotNil(t, o.ShippedAt())
		assert.Equal(t, first, *o.ShippedAt())

		_, err = o.ChangeStatus(order.NoResponse, second)
		require.NoError(t, err)
		_, err = o.ChangeStatus(order.InTransit, second)
		require.NoError(t, err)

		assert.Equal(t, first, *o.ShippedAt(), "shippedAt must not move on re-entry")
	})

	t.Run("should stamp deliveredAt and emit stock decrements on delivery", func(t *testing.T) {
		o := validOrder(t)
		deliveredAt := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)

		adjustments, err := o.ChangeStatus(order.Delivered, deliveredAt)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
		require.Len(t, adjustments, 1)
		assert.Equal(t, "SKU-100", adjustments[0].ProductRef)
		assert.Equal(t, o.Country(), adjustments[0].Country)
		assert.Equal(t, -2, adjustments[0].Quantity)
	})

	t.Run("should freeze a delivered order", func(t *testing.T) {
		o := orderInStatus(t, order.Delivered)
		deliveredAt := *o.DeliveredAt()

		for _, status := range []order.Status{order.Pending, order.Cancelled, order.InTransit} {
			_, err := o.ChangeStatus(status, time.Now())

			require.Error(t, err)
			var locked *order.LockedError
			require.ErrorAs(t, err, &locked)
			assert.Equal(t, "shipmentStatus", locked.Field)
			require.ErrorIs(t, err, order.ErrOrderLocked)
		}

		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
	})

	t.Run("should treat delivered to delivered as a no-op", func(t *testing.T) {
		o := orderInStatus(t, order.Delivered)
		deliveredAt := *o.DeliveredAt()

		adjustments, err := o.ChangeStatus(order.Delivered, time.Now())

		require.NoError(t, err)
		assert.Empty(t, adjustments, "re-delivery must not decrement stock again")
		assert.Equal(t, deliveredAt, *o.DeliveredAt())
	})

	t.Run("should pin a cancelled order once its return is verified", func(t *testing.T) {
		o := orderInStatus(t, order.Cancelled)
		require.NoError(t, o.SubmitReturn("refused at door", time.Now()))
		_, err := o.VerifyReturn(kernel.NewUUID(), time.Now())
		require.NoError(t, err)

		adjustments, err := o.ChangeStatus(order.Pending, time.Now())

		var invalidState *order.InvalidStateError
		require.ErrorAs(t, err, &invalidState)
		assert.Empty(t, adjustments)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.True(t, o.ReturnVerified())
	})

	t.Run("should pin a returned order while a submission awaits verification", func(t *testing.T) {
		o := orderInStatus(t, order.Returned)
		require.NoError(t, o.SubmitReturn("damaged box", time.Now()))

		_, err := o.ChangeStatus(order.InTransit, time.Now())

		var invalidState *order.InvalidStateError
		require.ErrorAs(t, err, &invalidState)
		assert.Equal(t, order.Returned, o.Status())
	})

	t.Run("should still move between cancelled and returned with an open return", func(t *testing.T) {
		o := orderInStatus(t, order.Cancelled)
		require.NoError(t, o.SubmitReturn("refused at door", time.Now()))

		_, err := o.ChangeStatus(order.Returned, time.Now())

		require.NoError(t, err)
		assert.Equal(t, order.Returned, o.Status())
	})
}

func TestOrder_AssignDriver(t *testing.T) {
	t.Run("should assign driver and commission without changing status", func(t *testing.T) {
		o := validOrder(t)
		driverID := kernel.NewUUID()

		err := o.AssignDriver(driverID, 10, time.Now())

		require.NoError(t, err)
		require.NotNil(t, o.DriverID())
		assert.True(t, o.DriverID().IsEqual(driverID))
		assert.Equal(t, 10.0, o.DriverCommission())
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("should allow reassignment before delivery", func(t *testing.T) {
		o := orderInStatus(t, order.InTransit)
		require.NoError(t, o.AssignDriver(kernel.NewUUID(), 10, time.Now()))
		replacement := kernel.NewUUID()

		err := o.AssignDriver(replacement, 12, time.Now())

		require.NoError(t, err)
		assert.True(t, o.DriverID().IsEqual(replacement))
		assert.Equal(t, 12.0, o.DriverCommission())
	})

	t.Run("should reject assignment on a delivered order", func(t *testing.T) {
		o := validOrder(t)
		original := kernel.NewUUID()
		require.NoError(t, o.AssignDriver(original, 10, time.Now()))
		_, err := o.ChangeStatus(order.Delivered, time.Now())
		require.NoError(t, err)

		err = o.AssignDriver(kernel.NewUUID(), 99, time.Now())

		var locked *order.LockedError
		require.ErrorAs(t, err, &locked)
		assert.Equal(t, "deliveryBoy", locked.Field)
		assert.True(t, o.DriverID().IsEqual(original), "driver must be unchanged")
		assert.Equal(t, 10.0, o.DriverCommission(), "commission must be unchanged")
	})

	t.Run("should reject commission edits on a delivered order", func(t *testing.T) {
		o := orderInStatus(t, order.Delivered)

		err := o.SetDriverCommission(42, time.Now())

		var locked *order.LockedError
		require.ErrorAs(t, err, &locked)
		assert.Equal(t, "driverCommission", locked.Field)
	})

	t.Run("should reject an invalid commission", func(t *testing.T) {
		o := validOrder(t)

		err := o.SetDriverCommission(-1, time.Now())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "driverCommission is invalid")
	})
}

func TestOrder_SubmitReturn(t *testing.T) {
	t.Run("should record the submission on a cancelled order", func(t *testing.T) {
		o := orderInStatus(t, order.Cancelled)
		now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

		err := o.SubmitReturn("customer refused delivery", now)

		require.NoError(t, err)
		assert.True(t, o.AwaitingReturnVerification())
		assert.Equal(t, "customer refused delivery", o.ReturnState().Reason())
		require.NotNil(t, o.ReturnState().SubmittedAt())
		assert.Equal(t, now, *o.ReturnState().SubmittedAt())
		assert.Equal(t, "awaiting_verification", o.DisplayStatus())
	})

	t.Run("should be a no-op on retry while unverified", func(t *testing.T) {
		o := orderInStatus(t, order.Returned)
		first := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
		require.NoError(t, o.SubmitReturn("damaged box", first))

		err := o.SubmitReturn("different reason", first.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, "damaged box", o.ReturnState().Reason(), "retry must not overwrite")
		assert.Equal(t, first, *o.ReturnState().SubmittedAt())
	})

	t.Run("should reject submission outside cancelled/returned", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.InTransit, order.Delivered} {
			o := orderInStatus(t, status)

			err := o.SubmitReturn("reason", time.Now())

			var invalidState *order.InvalidStateError
			require.ErrorAs(t, err, &invalidState, "status %s", status)
			assert.False(t, o.ReturnState().IsSubmitted())
		}
	})
}

func TestOrder_VerifyReturn(t *testing.T) {
	submittedOrder := func(t *testing.T) *order.Order {
		o := orderInStatus(t, order.Cancelled)
		require.NoError(t, o.SubmitReturn("refused", time.Now()))
		return o
	}

	t.Run("should verify a submitted return and emit exactly one restock", func(t *testing.T) {
		o := submittedOrder(t)
		verifier := kernel.NewUUID()
		now := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)

		adjustments, err := o.VerifyReturn(verifier, now)

		require.NoError(t, err)
		assert.True(t, o.ReturnVerified())
		assert.Equal(t, "return_verified", o.DisplayStatus())
		require.NotNil(t, o.ReturnState().VerifiedBy())
		assert.True(t, o.ReturnState().VerifiedBy().IsEqual(verifier))
		require.Len(t, adjustments, 1)
		assert.Equal(t, "SKU-100", adjustments[0].ProductRef)
		assert.Equal(t, 2, adjustments[0].Quantity, "restock is the full order quantity")
	})

	t.Run("should reject a second verification without emitting signals", func(t *testing.T) {
		o := submittedOrder(t)
		_, err := o.VerifyReturn(kernel.NewUUID(), time.Now())
		require.NoError(t, err)
		verifiedAt := *o.ReturnState().VerifiedAt()

		adjustments, err := o.VerifyReturn(kernel.NewUUID(), time.Now())

		var alreadyVerified *order.AlreadyVerifiedError
		require.ErrorAs(t, err, &alreadyVerified)
		require.ErrorIs(t, err, order.ErrReturnAlreadyVerified)
		assert.Empty(t, adjustments, "duplicate verification must not restock")
		assert.Equal(t, verifiedAt, *o.ReturnState().VerifiedAt())
	})

	t.Run("should reject verification without a submission", func(t *testing.T) {
		o := orderInStatus(t, order.Cancelled)

		adjustments, err := o.VerifyReturn(kernel.NewUUID(), time.Now())

		var invalidState *order.InvalidStateError
		require.ErrorAs(t, err, &invalidState)
		require.ErrorIs(t, err, order.ErrReturnStateIsInvalid)
		assert.Empty(t, adjustments)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore a delivered order with its frozen state", func(t *testing.T) {
		id := kernel.NewUUID()
		driverID := kernel.NewUUID()
		deliveredAt := time.Date(2026, 2, 10, 16, 0, 0, 0, time.UTC)
		creator := validCreator(t, order.RoleAgent)

		restored, err := order.RestoreOrder(order.OrderSnapshot{
			ID:               id,
			InvoiceNumber:    "INV-7",
			Country:          kernel.SaudiArabia,
			Items:            []order.Item{validItem(t)},
			Status:           order.Delivered,
			CreatedAt:        deliveredAt.Add(-72 * time.Hour),
			UpdatedAt:        deliveredAt,
			DeliveredAt:      &deliveredAt,
			DriverID:         &driverID,
			DriverCommission: 8,
			CreatedBy:        creator,
		})

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, restored.Status())
		assert.Equal(t, 8.0, restored.DriverCommission())

		_, err = restored.ChangeStatus(order.Pending, time.Now())
		require.ErrorIs(t, err, order.ErrOrderLocked)
	})

	t.Run("should restore a verified return", func(t *testing.T) {
		submittedAt := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
		verifiedAt := submittedAt.Add(24 * time.Hour)
		verifier := kernel.NewUUID()

		returnState, err := order.RestoreReturnState(
			order.ReturnVerified, "damaged", &submittedAt, &verifiedAt, &verifier)
		require.NoError(t, err)

		restored, err := order.RestoreOrder(order.OrderSnapshot{
			ID:            kernel.NewUUID(),
			InvoiceNumber: "INV-8",
			Country:       kernel.Qatar,
			Items:         []order.Item{validItem(t)},
			Status:        order.Returned,
			CreatedBy:     validCreator(t, order.RoleManager),
			ReturnState:   returnState,
		})

		require.NoError(t, err)
		assert.True(t, restored.ReturnVerified())

		_, err = restored.VerifyReturn(kernel.NewUUID(), time.Now())
		require.ErrorIs(t, err, order.ErrReturnAlreadyVerified)
	})

	t.Run("should reject a verified return on a non-eligible status", func(t *testing.T) {
		submittedAt := time.Now()
		verifiedAt := submittedAt
		verifier := kernel.NewUUID()
		returnState, err := order.RestoreReturnState(
			order.ReturnVerified, "", &submittedAt, &verifiedAt, &verifier)
		require.NoError(t, err)

		_, err = order.RestoreOrder(order.OrderSnapshot{
			ID:            kernel.NewUUID(),
			InvoiceNumber: "INV-9",
			Country:       kernel.Qatar,
			Items:         []order.Item{validItem(t)},
			Status:        order.Delivered,
			CreatedBy:     validCreator(t, order.RoleManager),
			ReturnState:   returnState,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "returnState is invalid")
	})
}

func TestRestoreReturnState(t *testing.T) {
	t.Run("should reject impossible combinations", func(t *testing.T) {
		now := time.Now()
		verifier := kernel.NewUUID()

		testCases := []struct {
			name        string
			phase       order.ReturnPhase
			submittedAt *time.Time
			verifiedAt  *time.Time
			verifiedBy  *kernel.UUID
		}{
			{"none with timestamps", order.ReturnNone, &now, nil, nil},
			{"submitted without timestamp", order.ReturnSubmitted, nil, nil, nil},
			{"submitted with verifier", order.ReturnSubmitted, &now, nil, &verifier},
			{"verified without verifier", order.ReturnVerified, &now, &now, nil},
			{"verified without submission", order.ReturnVerified, nil, &now, &verifier},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := order.RestoreReturnState(tc.phase, "r", tc.submittedAt, tc.verifiedAt, tc.verifiedBy)

				require.Error(t, err)
			})
		}
	})
}

func TestOrder_TotalQuantity(t *testing.T) {
	t.Run("should sum quantities across items", func(t *testing.T) {
		itemA, err := order.NewItem("SKU-A", 2, 10, "", 5, 0)
		require.NoError(t, err)
		itemB, err := order.NewItem("SKU-B", 3, 10, "", 5, 0)
		require.NoError(t, err)

		o, err := order.NewOrder(kernel.NewUUID(), "INV-1", kernel.Kuwait, "", "",
			[]order.Item{itemA, itemB}, 0, 0, nil, validCreator(t, order.RoleOwner), time.Now())
		require.NoError(t, err)

		assert.Equal(t, 5, o.TotalQuantity())
	})

	t.Run("should default a missing item quantity to one", func(t *testing.T) {
		item, err := order.NewItem("SKU-C", 0, 10, "", 5, 0)

		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity())
	})
}
