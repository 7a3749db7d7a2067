package commands_test

import (
	"errors"
	"testing"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/domain/model/order"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDeleteHandler(repo *MockOrderRepository, remote *MockRemoteClient, sink *auditRecorder) *commands.DeleteOrderCommandHandler {
	h := commands.NewDeleteOrderCommandHandler(newOrderStore(repo), remote, sink, fixedClock{testNow}, discardLogger())
	return &h
}

func TestDeleteOrderCommandHandler_Handle_RegisteredOrder(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, 60000).Return(storedOrder(60000, order.StatusRegistered), nil).Once()
	repo.On("Delete", mock.Anything, 60000, testNow).Return(int64(1), nil).Once()

	remote := new(MockRemoteClient)
	remote.On("DeleteOrder", mock.Anything, mock.Anything).Return(okResponse(), nil).Once()

	sink := &auditRecorder{}
	cmd, _ := commands.NewDeleteOrderCommand(60000, 7)

	err := newDeleteHandler(repo, remote, sink).Handle(testContext(t), cmd)

	require.NoError(t, err)
	assert.Equal(t, []string{commands.ActionDeleteOrder}, sink.actions())
	repo.AssertExpectations(t)
	remote.AssertExpectations(t)
}

func TestDeleteOrderCommandHandler_Handle_LocalOnly(t *testing.T) {
	for _, status := range []order.Status{100, 200, 201} {
		repo := new(MockOrderRepository)
		repo.On("Get", mock.Anything, 60000).Return(storedOrder(60000, status), nil).Once()
		repo.On("Delete", mock.Anything, 60000, testNow).Return(int64(1), nil).Once()
		remote := new(MockRemoteClient)

		cmd, _ := commands.NewDeleteOrderCommand(60000, 7)
		err := newDeleteHandler(repo, remote, &auditRecorder{}).Handle(testContext(t), cmd)

		require.NoError(t, err, "status %d", status)
		remote.AssertNotCalled(t, "DeleteOrder", mock.Anything, mock.Anything)
	}
}

func TestDeleteOrderCommandHandler_Handle_TerminalIsConflict(t *testing.T) {
	for _, status := range []order.Status{1001, 1100, 1300, 5000} {
		repo := new(MockOrderRepository)
		repo.On("Get", mock.Anything, 60000).Return(storedOrder(60000, status), nil).Once()
		remote := new(MockRemoteClient)

		cmd, _ := commands.NewDeleteOrderCommand(60000, 7)
		err := newDeleteHandler(repo, remote, &auditRecorder{}).Handle(testContext(t), cmd)

		assert.ErrorIs(t, err, errs.ErrConflict, "status %d", status)
		remote.AssertNotCalled(t, "DeleteOrder", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestDeleteOrderCommandHandler_Handle_RemoteFailureAborts(t *testing.T) {
	tests := []struct {
		name         string
		resp         ports.RemoteResponse
		callErr      error
		wantNotFound bool
		wantDetail   string
	}{
		{name: "transport", callErr: errors.New("no route to host"), wantDetail: "no route to host"},
		{
			name:       "logical error",
			resp:       ports.RemoteResponse{StatusCode: 200, Parsed: true, Result: "ERROR", Messages: []string{"busy"}},
			wantDetail: "busy",
		},
		{
			name:         "not found is relabelled",
			resp:         ports.RemoteResponse{StatusCode: 404, Parsed: true, Messages: []string{"Order ERROR => unknown"}},
			wantNotFound: true,
			wantDetail:   "ZANCANER ERROR => unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockOrderRepository)
			repo.On("Get", mock.Anything, 60000).Return(storedOrder(60000, order.Status(950)), nil).Once()

			remote := new(MockRemoteClient)
			remote.On("DeleteOrder", mock.Anything, mock.Anything).Return(tt.resp, tt.callErr).Once()

			sink := &auditRecorder{}
			cmd, _ := commands.NewDeleteOrderCommand(60000, 7)

			err := newDeleteHandler(repo, remote, sink).Handle(testContext(t), cmd)

			var remoteErr *errs.RemoteError
			require.ErrorAs(t, err, &remoteErr)
			assert.Equal(t, tt.wantNotFound, remoteErr.NotFound)
			assert.Equal(t, tt.wantDetail, remoteErr.Detail())
			repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
			assert.Equal(t, []string{commands.ActionDeleteOrderFailed}, sink.actions())
		})
	}
}

func TestDeleteOrderCommandHandler_Handle_NoRowsAffected(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, 60000).Return(storedOrder(60000, order.StatusCreated), nil).Once()
	repo.On("Delete", mock.Anything, 60000, testNow).Return(int64(0), nil).Once()

	sink := &auditRecorder{}
	cmd, _ := commands.NewDeleteOrderCommand(60000, 7)

	err := newDeleteHandler(repo, new(MockRemoteClient), sink).Handle(testContext(t), cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, []string{commands.ActionDeleteOrderFailed}, sink.actions())
}

func TestDeleteOrderCommandHandler_Handle_MissingOrder(t *testing.T) {
	repo := new(MockOrderRepository)
	repo.On("Get", mock.Anything, 60000).Return(nil, errs.NewObjectNotFoundError("productionOrder", 60000)).Once()
	remote := new(MockRemoteClient)

	cmd, _ := commands.NewDeleteOrderCommand(60000, 7)
	err := newDeleteHandler(repo, remote, &auditRecorder{}).Handle(testContext(t), cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	remote.AssertNotCalled(t, "DeleteOrder", mock.Anything, mock.Anything)
}
