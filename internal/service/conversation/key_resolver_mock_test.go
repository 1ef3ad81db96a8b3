package conversation

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ keyResolver = &keyResolverMock{}

type keyResolverMock struct {
	ResolveAPIKeyFunc func(ctx context.Context, userID uuid.UUID) (string, error)

	calls struct {
		ResolveAPIKey []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockResolveAPIKey sync.RWMutex
}

func (mock *keyResolverMock) ResolveAPIKey(ctx context.Context, userID uuid.UUID) (string, error) {
	if mock.ResolveAPIKeyFunc == nil {
		panic("keyResolverMock.ResolveAPIKeyFunc: method is nil but keyResolver.ResolveAPIKey was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockResolveAPIKey.Lock()
	mock.calls.ResolveAPIKey = append(mock.calls.ResolveAPIKey, callInfo)
	mock.lockResolveAPIKey.Unlock()
	return mock.ResolveAPIKeyFunc(ctx, userID)
}

func (mock *keyResolverMock) ResolveAPIKeyCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockResolveAPIKey.RLock()
	calls := mock.calls.ResolveAPIKey
	mock.lockResolveAPIKey.RUnlock()
	return calls
}
