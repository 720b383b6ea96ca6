package feed

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

var _ ranker = &rankerMock{}

type rankerMock struct {
	LookupFunc        func(ctx context.Context, key string) (*domain.RankedResult, bool)
	RankAndDecideFunc func(ctx context.Context, rc domain.RankingContext) *domain.RankedResult
	InvalidateFunc    func(ctx context.Context, userID uuid.UUID) error

	calls struct {
		Lookup []struct {
			Ctx context.Context
			Key string
		}
		RankAndDecide []struct {
			Ctx context.Context
			Rc  domain.RankingContext
		}
		Invalidate []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
	}
	lockLookup        sync.RWMutex
	lockRankAndDecide sync.RWMutex
	lockInvalidate    sync.RWMutex
}

func (mock *rankerMock) Lookup(ctx context.Context, key string) (*domain.RankedResult, bool) {
	if mock.LookupFunc == nil {
		panic("rankerMock.LookupFunc: method is nil but ranker.Lookup was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockLookup.Lock()
	mock.calls.Lookup = append(mock.calls.Lookup, callInfo)
	mock.lockLookup.Unlock()
	return mock.LookupFunc(ctx, key)
}

func (mock *rankerMock) LookupCalls() []struct {
	Ctx context.Context
	Key string
} {
	var calls []struct {
		Ctx context.Context
		Key string
	}
	mock.lockLookup.RLock()
	calls = mock.calls.Lookup
	mock.lockLookup.RUnlock()
	return calls
}

func (mock *rankerMock) RankAndDecide(ctx context.Context, rc domain.RankingContext) *domain.RankedResult {
	if mock.RankAndDecideFunc == nil {
		panic("rankerMock.RankAndDecideFunc: method is nil but ranker.RankAndDecide was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rc  domain.RankingContext
	}{
		Ctx: ctx,
		Rc:  rc,
	}
	mock.lockRankAndDecide.Lock()
	mock.calls.RankAndDecide = append(mock.calls.RankAndDecide, callInfo)
	mock.lockRankAndDecide.Unlock()
	return mock.RankAndDecideFunc(ctx, rc)
}

func (mock *rankerMock) RankAndDecideCalls() []struct {
	Ctx context.Context
	Rc  domain.RankingContext
} {
	var calls []struct {
		Ctx context.Context
		Rc  domain.RankingContext
	}
	mock.lockRankAndDecide.RLock()
	calls = mock.calls.RankAndDecide
	mock.lockRankAndDecide.RUnlock()
	return calls
}

func (mock *rankerMock) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if mock.InvalidateFunc == nil {
		panic("rankerMock.InvalidateFunc: method is nil but ranker.Invalidate was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockInvalidate.Lock()
	mock.calls.Invalidate = append(mock.calls.Invalidate, callInfo)
	mock.lockInvalidate.Unlock()
	return mock.InvalidateFunc(ctx, userID)
}

func (mock *rankerMock) InvalidateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
	}
	mock.lockInvalidate.RLock()
	calls = mock.calls.Invalidate
	mock.lockInvalidate.RUnlock()
	return calls
}

