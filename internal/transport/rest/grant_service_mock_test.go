package rest

import (
	"context"
	"github.com/heartmarshall/mindcure-backend/internal/service/grant"
	"sync"
)

var _ grantService = &grantServiceMock{}

type grantServiceMock struct {
	CompanionConnectionFunc func(ctx context.Context) (*grant.ConnectionDetails, error)
	PeerConnectionFunc      func(ctx context.Context, input grant.PeerTokenInput) (*grant.PeerTokenResult, error)

	calls struct {
		CompanionConnection []struct{ Ctx context.Context }
		PeerConnection      []struct {
			Ctx   context.Context
			Input grant.PeerTokenInput
		}
	}
	lockCompanionConnection sync.RWMutex
	lockPeerConnection      sync.RWMutex
}

func (mock *grantServiceMock) CompanionConnection(ctx context.Context) (*grant.ConnectionDetails, error) {
	if mock.CompanionConnectionFunc == nil {
		panic("grantServiceMock.CompanionConnectionFunc: method is nil but grantService.CompanionConnection was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockCompanionConnection.Lock()
	mock.calls.CompanionConnection = append(mock.calls.CompanionConnection, callInfo)
	mock.lockCompanionConnection.Unlock()
	return mock.CompanionConnectionFunc(ctx)
}

func (mock *grantServiceMock) CompanionConnectionCalls() []struct{ Ctx context.Context } {
	mock.lockCompanionConnection.RLock()
	calls := mock.calls.CompanionConnection
	mock.lockCompanionConnection.RUnlock()
	return calls
}

func (mock *grantServiceMock) PeerConnection(ctx context.Context, input grant.PeerTokenInput) (*grant.PeerTokenResult, error) {
	if mock.PeerConnectionFunc == nil {
		panic("grantServiceMock.PeerConnectionFunc: method is nil but grantService.PeerConnection was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input grant.PeerTokenInput
	}{Ctx: ctx, Input: input}
	mock.lockPeerConnection.Lock()
	mock.calls.PeerConnection = append(mock.calls.PeerConnection, callInfo)
	mock.lockPeerConnection.Unlock()
	return mock.PeerConnectionFunc(ctx, input)
}

func (mock *grantServiceMock) PeerConnectionCalls() []struct {
	Ctx   context.Context
	Input grant.PeerTokenInput
} {
	mock.lockPeerConnection.RLock()
	calls := mock.calls.PeerConnection
	mock.lockPeerConnection.RUnlock()
	return calls
}
