package grant

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"sync"
)

var _ membershipRepo = &membershipRepoMock{}

type membershipRepoMock struct {
	FindActiveFunc func(ctx context.Context, roomName string, userID uuid.UUID) (*domain.PeerConnection, error)

	calls struct {
		FindActive []struct {
			Ctx      context.Context
			RoomName string
			UserID   uuid.UUID
		}
	}
	lockFindActive sync.RWMutex
}

func (mock *membershipRepoMock) FindActive(ctx context.Context, roomName string, userID uuid.UUID) (*domain.PeerConnection, error) {
	if mock.FindActiveFunc == nil {
		panic("membershipRepoMock.FindActiveFunc: method is nil but membershipRepo.FindActive was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		RoomName string
		UserID   uuid.UUID
	}{Ctx: ctx, RoomName: roomName, UserID: userID}
	mock.lockFindActive.Lock()
	mock.calls.FindActive = append(mock.calls.FindActive, callInfo)
	mock.lockFindActive.Unlock()
	return mock.FindActiveFunc(ctx, roomName, userID)
}

func (mock *membershipRepoMock) FindActiveCalls() []struct {
	Ctx      context.Context
	RoomName string
	UserID   uuid.UUID
} {
	mock.lockFindActive.RLock()
	calls := mock.calls.FindActive
	mock.lockFindActive.RUnlock()
	return calls
}
