package peer

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"sync"
)

var _ membershipRepo = &membershipRepoMock{}

type membershipRepoMock struct {
	CreateFunc       func(ctx context.Context, c *domain.PeerConnection) (*domain.PeerConnection, error)
	EndFunc          func(ctx context.Context, roomName string, userID uuid.UUID) error
	LatestActiveFunc func(ctx context.Context, userID uuid.UUID) (*domain.PeerConnection, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			C   *domain.PeerConnection
		}
		End []struct {
			Ctx      context.Context
			RoomName string
			UserID   uuid.UUID
		}
		LatestActive []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockCreate       sync.RWMutex
	lockEnd          sync.RWMutex
	lockLatestActive sync.RWMutex
}

func (mock *membershipRepoMock) Create(ctx context.Context, c *domain.PeerConnection) (*domain.PeerConnection, error) {
	if mock.CreateFunc == nil {
		panic("membershipRepoMock.CreateFunc: method is nil but membershipRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.PeerConnection
	}{Ctx: ctx, C: c}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *membershipRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   *domain.PeerConnection
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *membershipRepoMock) End(ctx context.Context, roomName string, userID uuid.UUID) error {
	if mock.EndFunc == nil {
		panic("membershipRepoMock.EndFunc: method is nil but membershipRepo.End was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		RoomName string
		UserID   uuid.UUID
	}{Ctx: ctx, RoomName: roomName, UserID: userID}
	mock.lockEnd.Lock()
	mock.calls.End = append(mock.calls.End, callInfo)
	mock.lockEnd.Unlock()
	return mock.EndFunc(ctx, roomName, userID)
}

func (mock *membershipRepoMock) EndCalls() []struct {
	Ctx      context.Context
	RoomName string
	UserID   uuid.UUID
} {
	mock.lockEnd.RLock()
	calls := mock.calls.End
	mock.lockEnd.RUnlock()
	return calls
}

func (mock *membershipRepoMock) LatestActive(ctx context.Context, userID uuid.UUID) (*domain.PeerConnection, error) {
	if mock.LatestActiveFunc == nil {
		panic("membershipRepoMock.LatestActiveFunc: method is nil but membershipRepo.LatestActive was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockLatestActive.Lock()
	mock.calls.LatestActive = append(mock.calls.LatestActive, callInfo)
	mock.lockLatestActive.Unlock()
	return mock.LatestActiveFunc(ctx, userID)
}

func (mock *membershipRepoMock) LatestActiveCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockLatestActive.RLock()
	calls := mock.calls.LatestActive
	mock.lockLatestActive.RUnlock()
	return calls
}
