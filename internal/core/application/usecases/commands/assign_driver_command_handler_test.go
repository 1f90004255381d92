package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssignDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t, order.Pending)
	driverID := kernel.NewUUID()
	cmd, err := commands.NewAssignDriverCommand(aggregate.ID(), driverID, 10)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	expectMutation(ctx, uow, repo, aggregate)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockOrderChangedPublisher)
	publisher.On("PublishOrderChanged", ctx, aggregate.ID()).Return(nil).Once()

	h := commands.NewAssignDriverCommandHandler(factory, publisher, nil)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, aggregate.DriverID())
	require.True(t, aggregate.DriverID().IsEqual(driverID))
	require.Equal(t, 10.0, aggregate.DriverCommission())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestAssignDriverCommandHandler_Handle_DeliveredOrderIsLocked(t *testing.T) {
	ctx := t.Context()
	aggregate := storedOrder(t, order.Delivered)
	cmd, err := commands.NewAssignDriverCommand(aggregate.ID(), kernel.NewUUID(), 10)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAssignDriverCommandHandler(factory, nil, nil)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrOrderLocked)
	require.Nil(t, aggregate.DriverID())
	uow.AssertNotCalled(t, "Commit")
}

func TestAssignDriverCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockOrderUoWFactory)
	h := commands.NewAssignDriverCommandHandler(factory, nil, nil)
	err := h.Handle(ctx, commands.AssignDriverCommand{})
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
