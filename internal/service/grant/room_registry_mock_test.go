package grant

import (
	"context"
	"sync"
	"time"
)

var _ roomRegistry = &roomRegistryMock{}

type roomRegistryMock struct {
	OwnerFunc    func(ctx context.Context, roomName string) (string, error)
	RegisterFunc func(ctx context.Context, roomName string, owner string, identity string, ttl time.Duration) error

	calls struct {
		Owner []struct {
			Ctx      context.Context
			RoomName string
		}
		Register []struct {
			Ctx      context.Context
			RoomName string
			Owner    string
			Identity string
			TTL      time.Duration
		}
	}
	lockOwner    sync.RWMutex
	lockRegister sync.RWMutex
}

func (mock *roomRegistryMock) Owner(ctx context.Context, roomName string) (string, error) {
	if mock.OwnerFunc == nil {
		panic("roomRegistryMock.OwnerFunc: method is nil but roomRegistry.Owner was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		RoomName string
	}{Ctx: ctx, RoomName: roomName}
	mock.lockOwner.Lock()
	mock.calls.Owner = append(mock.calls.Owner, callInfo)
	mock.lockOwner.Unlock()
	return mock.OwnerFunc(ctx, roomName)
}

func (mock *roomRegistryMock) OwnerCalls() []struct {
	Ctx      context.Context
	RoomName string
} {
	mock.lockOwner.RLock()
	calls := mock.calls.Owner
	mock.lockOwner.RUnlock()
	return calls
}

func (mock *roomRegistryMock) Register(ctx context.Context, roomName string, owner string, identity string, ttl time.Duration) error {
	if mock.RegisterFunc == nil {
		panic("roomRegistryMock.RegisterFunc: method is nil but roomRegistry.Register was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		RoomName string
		Owner    string
		Identity string
		TTL      time.Duration
	}{Ctx: ctx, RoomName: roomName, Owner: owner, Identity: identity, TTL: ttl}
	mock.lockRegister.Lock()
	mock.calls.Register = append(mock.calls.Register, callInfo)
	mock.lockRegister.Unlock()
	return mock.RegisterFunc(ctx, roomName, owner, identity, ttl)
}

func (mock *roomRegistryMock) RegisterCalls() []struct {
	Ctx      context.Context
	RoomName string
	Owner    string
	Identity string
	TTL      time.Duration
} {
	mock.lockRegister.RLock()
	calls := mock.calls.Register
	mock.lockRegister.RUnlock()
	return calls
}
