package grant

import (
	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"sync"
)

var _ grantSigner = &grantSignerMock{}

type grantSignerMock struct {
	ConfiguredFunc func() bool
	SignFunc       func(g domain.AccessGrant) (string, error)

	calls struct {
		Configured []struct{}
		Sign       []struct{ G domain.AccessGrant }
	}
	lockConfigured sync.RWMutex
	lockSign       sync.RWMutex
}

func (mock *grantSignerMock) Configured() bool {
	if mock.ConfiguredFunc == nil {
		panic("grantSignerMock.ConfiguredFunc: method is nil but grantSigner.Configured was just called")
	}
	mock.lockConfigured.Lock()
	mock.calls.Configured = append(mock.calls.Configured, struct{}{})
	mock.lockConfigured.Unlock()
	return mock.ConfiguredFunc()
}

func (mock *grantSignerMock) ConfiguredCalls() []struct{} {
	mock.lockConfigured.RLock()
	calls := mock.calls.Configured
	mock.lockConfigured.RUnlock()
	return calls
}

func (mock *grantSignerMock) Sign(g domain.AccessGrant) (string, error) {
	if mock.SignFunc == nil {
		panic("grantSignerMock.SignFunc: method is nil but grantSigner.Sign was just called")
	}
	callInfo := struct{ G domain.AccessGrant }{G: g}
	mock.lockSign.Lock()
	mock.calls.Sign = append(mock.calls.Sign, callInfo)
	mock.lockSign.Unlock()
	return mock.SignFunc(g)
}

func (mock *grantSignerMock) SignCalls() []struct{ G domain.AccessGrant } {
	mock.lockSign.RLock()
	calls := mock.calls.Sign
	mock.lockSign.RUnlock()
	return calls
}
