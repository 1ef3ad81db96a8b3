package rest

import (
	"context"
	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/internal/service/peer"
	"sync"
)

var _ peerService = &peerServiceMock{}

type peerServiceMock struct {
	CheckStatusFunc   func(ctx context.Context) (*domain.MatchResult, error)
	EndConnectionFunc func(ctx context.Context, roomName string) error
	JoinQueueFunc     func(ctx context.Context, input peer.JoinInput) (*domain.MatchResult, error)
	LeaveQueueFunc    func(ctx context.Context) error

	calls struct {
		CheckStatus   []struct{ Ctx context.Context }
		EndConnection []struct {
			Ctx      context.Context
			RoomName string
		}
		JoinQueue []struct {
			Ctx   context.Context
			Input peer.JoinInput
		}
		LeaveQueue []struct{ Ctx context.Context }
	}
	lockCheckStatus   sync.RWMutex
	lockEndConnection sync.RWMutex
	lockJoinQueue     sync.RWMutex
	lockLeaveQueue    sync.RWMutex
}

func (mock *peerServiceMock) CheckStatus(ctx context.Context) (*domain.MatchResult, error) {
	if mock.CheckStatusFunc == nil {
		panic("peerServiceMock.CheckStatusFunc: method is nil but peerService.CheckStatus was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockCheckStatus.Lock()
	mock.calls.CheckStatus = append(mock.calls.CheckStatus, callInfo)
	mock.lockCheckStatus.Unlock()
	return mock.CheckStatusFunc(ctx)
}

func (mock *peerServiceMock) CheckStatusCalls() []struct{ Ctx context.Context } {
	mock.lockCheckStatus.RLock()
	calls := mock.calls.CheckStatus
	mock.lockCheckStatus.RUnlock()
	return calls
}

func (mock *peerServiceMock) EndConnection(ctx context.Context, roomName string) error {
	if mock.EndConnectionFunc == nil {
		panic("peerServiceMock.EndConnectionFunc: method is nil but peerService.EndConnection was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		RoomName string
	}{Ctx: ctx, RoomName: roomName}
	mock.lockEndConnection.Lock()
	mock.calls.EndConnection = append(mock.calls.EndConnection, callInfo)
	mock.lockEndConnection.Unlock()
	return mock.EndConnectionFunc(ctx, roomName)
}

func (mock *peerServiceMock) EndConnectionCalls() []struct {
	Ctx      context.Context
	RoomName string
} {
	mock.lockEndConnection.RLock()
	calls := mock.calls.EndConnection
	mock.lockEndConnection.RUnlock()
	return calls
}

func (mock *peerServiceMock) JoinQueue(ctx context.Context, input peer.JoinInput) (*domain.MatchResult, error) {
	if mock.JoinQueueFunc == nil {
		panic("peerServiceMock.JoinQueueFunc: method is nil but peerService.JoinQueue was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input peer.JoinInput
	}{Ctx: ctx, Input: input}
	mock.lockJoinQueue.Lock()
	mock.calls.JoinQueue = append(mock.calls.JoinQueue, callInfo)
	mock.lockJoinQueue.Unlock()
	return mock.JoinQueueFunc(ctx, input)
}

func (mock *peerServiceMock) JoinQueueCalls() []struct {
	Ctx   context.Context
	Input peer.JoinInput
} {
	mock.lockJoinQueue.RLock()
	calls := mock.calls.JoinQueue
	mock.lockJoinQueue.RUnlock()
	return calls
}

func (mock *peerServiceMock) LeaveQueue(ctx context.Context) error {
	if mock.LeaveQueueFunc == nil {
		panic("peerServiceMock.LeaveQueueFunc: method is nil but peerService.LeaveQueue was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockLeaveQueue.Lock()
	mock.calls.LeaveQueue = append(mock.calls.LeaveQueue, callInfo)
	mock.lockLeaveQueue.Unlock()
	return mock.LeaveQueueFunc(ctx)
}

func (mock *peerServiceMock) LeaveQueueCalls() []struct{ Ctx context.Context } {
	mock.lockLeaveQueue.RLock()
	calls := mock.calls.LeaveQueue
	mock.lockLeaveQueue.RUnlock()
	return calls
}
