package feed

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

var _ summarizer = &summarizerMock{}

type summarizerMock struct {
	GenerateSummaryFunc func(ctx context.Context, userID uuid.UUID, timeframe domain.Timeframe) *domain.BehaviorSummary

	calls struct {
		GenerateSummary []struct {
			Ctx       context.Context
			UserID    uuid.UUID
			Timeframe domain.Timeframe
		}
	}
	lockGenerateSummary sync.RWMutex
}

func (mock *summarizerMock) GenerateSummary(ctx context.Context, userID uuid.UUID, timeframe domain.Timeframe) *domain.BehaviorSummary {
	if mock.GenerateSummaryFunc == nil {
		panic("summarizerMock.GenerateSummaryFunc: method is nil but summarizer.GenerateSummary was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		UserID    uuid.UUID
		Timeframe domain.Timeframe
	}{
		Ctx:       ctx,
		UserID:    userID,
		Timeframe: timeframe,
	}
	mock.lockGenerateSummary.Lock()
	mock.calls.GenerateSummary = append(mock.calls.GenerateSummary, callInfo)
	mock.lockGenerateSummary.Unlock()
	return mock.GenerateSummaryFunc(ctx, userID, timeframe)
}

func (mock *summarizerMock) GenerateSummaryCalls() []struct {
	Ctx       context.Context
	UserID    uuid.UUID
	Timeframe domain.Timeframe
} {
	var calls []struct {
		Ctx       context.Context
		UserID    uuid.UUID
		Timeframe domain.Timeframe
	}
	mock.lockGenerateSummary.RLock()
	calls = mock.calls.GenerateSummary
	mock.lockGenerateSummary.RUnlock()
	return calls
}

