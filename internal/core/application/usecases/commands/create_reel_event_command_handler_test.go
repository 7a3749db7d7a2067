package commands_test

import (
	"errors"
	"testing"

	"ordersync/internal/core/application/usecases/commands"
	"ordersync/internal/core/domain/model/reel"
	"ordersync/internal/core/ports"
	"ordersync/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReelCommand(t *testing.T) commands.CreateReelEventCommand {
	t.Helper()

	first, err := reel.NewDetail(1, 1, "P-100", false, 2)
	require.NoError(t, err)
	second, err := reel.NewDetail(2, 1, "P-100", true, 0)
	require.NoError(t, err)

	cmd, err := commands.NewCreateReelEventCommand(reel.Shape{
		ProductionOrder: 60000,
		UserID:          7,
		UpperShaftReels: 1,
		LowerShaftReels: 1,
		ReelLength:      1200,
		EndOfLot:        true,
	}, []reel.Detail{first, second})
	require.NoError(t, err)
	return cmd
}

type reelFixture struct {
	uow     *MockUoW
	reels   *MockReelEventRepository
	factory *MockUoWFactory
	remote  *MockRemoteClient
	sink    *auditRecorder
}

func newReelFixture() reelFixture {
	f := reelFixture{
		uow:     new(MockUoW),
		reels:   new(MockReelEventRepository),
		factory: new(MockUoWFactory),
		remote:  new(MockRemoteClient),
		sink:    &auditRecorder{},
	}
	f.factory.On("Create").Return(f.uow)
	f.uow.On("ReelEventRepository").Return(f.reels)
	return f
}

func (f reelFixture) handler() *commands.CreateReelEventCommandHandler {
	h := commands.NewCreateReelEventCommandHandler(f.factory, f.remote, f.sink, fixedClock{testNow}, discardLogger())
	return &h
}

func TestCreateReelEventCommandHandler_Handle_Success(t *testing.T) {
	f := newReelFixture()
	mock.InOrder(
		f.uow.On("Begin", mock.Anything).Return(nil).Once(),
		f.reels.On("Add", mock.Anything, mock.AnythingOfType("*reel.Event")).Return(nil).Once(),
		f.remote.On("CreateSet", mock.Anything, mock.MatchedBy(func(req ports.CreateSetRequest) bool {
			return req.ProductionOrder == 60000 && len(req.Records) == 2 && req.Records[1].ManualExit && req.EndOfLot
		})).Return(okResponse(), nil).Once(),
		f.uow.On("Commit", mock.Anything).Return(nil).Once(),
		f.uow.On("Rollback", mock.Anything).Return(errors.New("no transaction")).Once(),
	)

	messageID, err := f.handler().Handle(testContext(t), newReelCommand(t))

	require.NoError(t, err)
	assert.False(t, messageID.IsZero())
	assert.Equal(t, []string{commands.ActionCreateSetExternal, commands.ActionCreateReelEvent}, f.sink.actions())
	assert.Equal(t, messageID, f.sink.last().CorrelationID)
	f.uow.AssertExpectations(t)
	f.reels.AssertExpectations(t)
	f.remote.AssertExpectations(t)
}

func TestCreateReelEventCommandHandler_Handle_RemoteFailureRollsBack(t *testing.T) {
	tests := []struct {
		name      string
		resp      ports.RemoteResponse
		callErr   error
		wantStage errs.Stage
	}{
		{
			name:      "logical error",
			resp:      ports.RemoteResponse{StatusCode: 200, Parsed: true, Result: "ERROR", Messages: []string{"ERROR => unknown order"}},
			wantStage: errs.StageRemote,
		},
		{name: "non 2xx", resp: ports.RemoteResponse{StatusCode: 503, Body: "maintenance"}, wantStage: errs.StageRemote},
		{name: "transport", callErr: errors.New("connection reset"), wantStage: errs.StageTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReelFixture()
			f.uow.On("Begin", mock.Anything).Return(nil).Once()
			f.reels.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
			f.remote.On("CreateSet", mock.Anything, mock.Anything).Return(tt.resp, tt.callErr).Once()
			f.uow.On("Rollback", mock.Anything).Return(nil)

			_, err := f.handler().Handle(testContext(t), newReelCommand(t))

			require.Error(t, err)
			assert.Equal(t, tt.wantStage, errs.StageOf(err))
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
			f.uow.AssertCalled(t, "Rollback", mock.Anything)
			assert.Equal(t, []string{commands.ActionCreateSetExternalFailed}, f.sink.actions())
		})
	}
}

func TestCreateReelEventCommandHandler_Handle_InsertFailure(t *testing.T) {
	f := newReelFixture()
	dbErr := errs.NewPersistenceError("create reel detail", errors.New("value too long"))
	dbErr.DBErrorNumber = "22001"

	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.reels.On("Add", mock.Anything, mock.Anything).Return(dbErr).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil)

	_, err := f.handler().Handle(testContext(t), newReelCommand(t))

	var persistenceErr *errs.PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.True(t, persistenceErr.RolledBack)
	assert.Equal(t, "22001", persistenceErr.DBErrorNumber)
	f.remote.AssertNotCalled(t, "CreateSet", mock.Anything, mock.Anything)
	assert.Equal(t, []string{commands.ActionCreateReelEventDBFailed}, f.sink.actions())
}

func TestCreateReelEventCommandHandler_Handle_CommitFailure(t *testing.T) {
	f := newReelFixture()
	f.uow.On("Begin", mock.Anything).Return(nil).Once()
	f.reels.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	f.remote.On("CreateSet", mock.Anything, mock.Anything).Return(okResponse(), nil).Once()
	f.uow.On("Commit", mock.Anything).Return(errs.NewPersistenceError("commit transaction", errors.New("serialization failure"))).Once()
	f.uow.On("Rollback", mock.Anything).Return(nil)

	_, err := f.handler().Handle(testContext(t), newReelCommand(t))

	assert.ErrorIs(t, err, errs.ErrPersistence)
	assert.Equal(t, []string{commands.ActionCreateSetExternal, commands.ActionCreateReelEventDBFailed}, f.sink.actions())
}

func TestCreateReelEventCommandHandler_Handle_BeginNotConfigured(t *testing.T) {
	f := newReelFixture()
	f.uow.On("Begin", mock.Anything).Return(errs.ErrNotConfigured).Once()

	_, err := f.handler().Handle(testContext(t), newReelCommand(t))

	assert.Equal(t, errs.StageConfiguration, errs.StageOf(err))
	f.remote.AssertNotCalled(t, "CreateSet", mock.Anything, mock.Anything)
}

func TestNewCreateReelEventCommand_RequiresReels(t *testing.T) {
	_, err := commands.NewCreateReelEventCommand(reel.Shape{ProductionOrder: 60000, UserID: 7, ReelLength: 10}, nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
