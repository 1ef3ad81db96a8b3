package settings

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"sync"
)

var _ settingsRepo = &settingsRepoMock{}

type settingsRepoMock struct {
	ClearAPIKeyFunc     func(ctx context.Context, userID uuid.UUID) error
	GetFunc             func(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	SetSealedAPIKeyFunc func(ctx context.Context, userID uuid.UUID, sealed []byte) error

	calls struct {
		ClearAPIKey []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Get []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		SetSealedAPIKey []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Sealed []byte
		}
	}
	lockClearAPIKey     sync.RWMutex
	lockGet             sync.RWMutex
	lockSetSealedAPIKey sync.RWMutex
}

func (mock *settingsRepoMock) ClearAPIKey(ctx context.Context, userID uuid.UUID) error {
	if mock.ClearAPIKeyFunc == nil {
		panic("settingsRepoMock.ClearAPIKeyFunc: method is nil but settingsRepo.ClearAPIKey was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockClearAPIKey.Lock()
	mock.calls.ClearAPIKey = append(mock.calls.ClearAPIKey, callInfo)
	mock.lockClearAPIKey.Unlock()
	return mock.ClearAPIKeyFunc(ctx, userID)
}

func (mock *settingsRepoMock) ClearAPIKeyCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockClearAPIKey.RLock()
	calls := mock.calls.ClearAPIKey
	mock.lockClearAPIKey.RUnlock()
	return calls
}

func (mock *settingsRepoMock) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	if mock.GetFunc == nil {
		panic("settingsRepoMock.GetFunc: method is nil but settingsRepo.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, userID)
}

func (mock *settingsRepoMock) GetCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *settingsRepoMock) SetSealedAPIKey(ctx context.Context, userID uuid.UUID, sealed []byte) error {
	if mock.SetSealedAPIKeyFunc == nil {
		panic("settingsRepoMock.SetSealedAPIKeyFunc: method is nil but settingsRepo.SetSealedAPIKey was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Sealed []byte
	}{Ctx: ctx, UserID: userID, Sealed: sealed}
	mock.lockSetSealedAPIKey.Lock()
	mock.calls.SetSealedAPIKey = append(mock.calls.SetSealedAPIKey, callInfo)
	mock.lockSetSealedAPIKey.Unlock()
	return mock.SetSealedAPIKeyFunc(ctx, userID, sealed)
}

func (mock *settingsRepoMock) SetSealedAPIKeyCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Sealed []byte
} {
	mock.lockSetSealedAPIKey.RLock()
	calls := mock.calls.SetSealedAPIKey
	mock.lockSetSealedAPIKey.RUnlock()
	return calls
}
