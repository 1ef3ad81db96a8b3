package peer

import (
	"context"
	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"sync"
)

var _ waitingRoom = &waitingRoomMock{}

type waitingRoomMock struct {
	IsWaitingFunc func(ctx context.Context, userID string) (bool, error)
	JoinFunc      func(ctx context.Context, userID string, interests []string) (domain.PeerPair, bool, error)
	LeaveFunc     func(ctx context.Context, userID string) error

	calls struct {
		IsWaiting []struct {
			Ctx    context.Context
			UserID string
		}
		Join []struct {
			Ctx       context.Context
			UserID    string
			Interests []string
		}
		Leave []struct {
			Ctx    context.Context
			UserID string
		}
	}
	lockIsWaiting sync.RWMutex
	lockJoin      sync.RWMutex
	lockLeave     sync.RWMutex
}

func (mock *waitingRoomMock) IsWaiting(ctx context.Context, userID string) (bool, error) {
	if mock.IsWaitingFunc == nil {
		panic("waitingRoomMock.IsWaitingFunc: method is nil but waitingRoom.IsWaiting was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID string
	}{Ctx: ctx, UserID: userID}
	mock.lockIsWaiting.Lock()
	mock.calls.IsWaiting = append(mock.calls.IsWaiting, callInfo)
	mock.lockIsWaiting.Unlock()
	return mock.IsWaitingFunc(ctx, userID)
}

func (mock *waitingRoomMock) IsWaitingCalls() []struct {
	Ctx    context.Context
	UserID string
} {
	mock.lockIsWaiting.RLock()
	calls := mock.calls.IsWaiting
	mock.lockIsWaiting.RUnlock()
	return calls
}

func (mock *waitingRoomMock) Join(ctx context.Context, userID string, interests []string) (domain.PeerPair, bool, error) {
	if mock.JoinFunc == nil {
		panic("waitingRoomMock.JoinFunc: method is nil but waitingRoom.Join was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    string
		Interests []string
	}{Ctx: ctx, UserID: userID, Interests: interests}
	mock.lockJoin.Lock()
	mock.calls.Join = append(mock.calls.Join, callInfo)
	mock.lockJoin.Unlock()
	return mock.JoinFunc(ctx, userID, interests)
}

func (mock *waitingRoomMock) JoinCalls() []struct {
	Ctx       context.Context
	UserID    string
	Interests []string
} {
	mock.lockJoin.RLock()
	calls := mock.calls.Join
	mock.lockJoin.RUnlock()
	return calls
}

func (mock *waitingRoomMock) Leave(ctx context.Context, userID string) error {
	if mock.LeaveFunc == nil {
		panic("waitingRoomMock.LeaveFunc: method is nil but waitingRoom.Leave was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID string
	}{Ctx: ctx, UserID: userID}
	mock.lockLeave.Lock()
	mock.calls.Leave = append(mock.calls.Leave, callInfo)
	mock.lockLeave.Unlock()
	return mock.LeaveFunc(ctx, userID)
}

func (mock *waitingRoomMock) LeaveCalls() []struct {
	Ctx    context.Context
	UserID string
} {
	mock.lockLeave.RLock()
	calls := mock.calls.Leave
	mock.lockLeave.RUnlock()
	return calls
}
