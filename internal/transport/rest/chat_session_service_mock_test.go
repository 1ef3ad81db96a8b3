package rest

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/mindcure-backend/internal/domain"
	"github.com/heartmarshall/mindcure-backend/internal/service/conversation"
	"sync"
)

var _ chatSessionService = &chatSessionServiceMock{}

type chatSessionServiceMock struct {
	CreateFunc    func(ctx context.Context, input conversation.CreateInput) (*domain.ChatSession, error)
	DeleteFunc    func(ctx context.Context, id uuid.UUID) error
	GetFunc       func(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error)
	ListFunc      func(ctx context.Context, limit int) ([]*domain.ChatSession, error)
	ReanalyzeFunc func(ctx context.Context, id uuid.UUID, input conversation.ReanalyzeInput) (*domain.AnalysisResult, error)
	UpdateFunc    func(ctx context.Context, id uuid.UUID, input conversation.UpdateInput) (*domain.ChatSession, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input conversation.CreateInput
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx   context.Context
			Limit int
		}
		Reanalyze []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Input conversation.ReanalyzeInput
		}
		Update []struct {
			Ctx   context.Context
			ID    uuid.UUID
			Input conversation.UpdateInput
		}
	}
	lockCreate    sync.RWMutex
	lockDelete    sync.RWMutex
	lockGet       sync.RWMutex
	lockList      sync.RWMutex
	lockReanalyze sync.RWMutex
	lockUpdate    sync.RWMutex
}

func (mock *chatSessionServiceMock) Create(ctx context.Context, input conversation.CreateInput) (*domain.ChatSession, error) {
	if mock.CreateFunc == nil {
		panic("chatSessionServiceMock.CreateFunc: method is nil but chatSessionService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input conversation.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *chatSessionServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input conversation.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *chatSessionServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("chatSessionServiceMock.DeleteFunc: method is nil but chatSessionService.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *chatSessionServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *chatSessionServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	if mock.GetFunc == nil {
		panic("chatSessionServiceMock.GetFunc: method is nil but chatSessionService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *chatSessionServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *chatSessionServiceMock) List(ctx context.Context, limit int) ([]*domain.ChatSession, error) {
	if mock.ListFunc == nil {
		panic("chatSessionServiceMock.ListFunc: method is nil but chatSessionService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{Ctx: ctx, Limit: limit}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, limit)
}

func (mock *chatSessionServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *chatSessionServiceMock) Reanalyze(ctx context.Context, id uuid.UUID, input conversation.ReanalyzeInput) (*domain.AnalysisResult, error) {
	if mock.ReanalyzeFunc == nil {
		panic("chatSessionServiceMock.ReanalyzeFunc: method is nil but chatSessionService.Reanalyze was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Input conversation.ReanalyzeInput
	}{Ctx: ctx, ID: id, Input: input}
	mock.lockReanalyze.Lock()
	mock.calls.Reanalyze = append(mock.calls.Reanalyze, callInfo)
	mock.lockReanalyze.Unlock()
	return mock.ReanalyzeFunc(ctx, id, input)
}

func (mock *chatSessionServiceMock) ReanalyzeCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Input conversation.ReanalyzeInput
} {
	mock.lockReanalyze.RLock()
	calls := mock.calls.Reanalyze
	mock.lockReanalyze.RUnlock()
	return calls
}

func (mock *chatSessionServiceMock) Update(ctx context.Context, id uuid.UUID, input conversation.UpdateInput) (*domain.ChatSession, error) {
	if mock.UpdateFunc == nil {
		panic("chatSessionServiceMock.UpdateFunc: method is nil but chatSessionService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		ID    uuid.UUID
		Input conversation.UpdateInput
	}{Ctx: ctx, ID: id, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, id, input)
}

func (mock *chatSessionServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	ID    uuid.UUID
	Input conversation.UpdateInput
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}
