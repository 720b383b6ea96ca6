package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/service/behavior"
)

var _ behaviorService = &behaviorServiceMock{}

type behaviorServiceMock struct {
	RecordEventsFunc func(ctx context.Context, input behavior.RecordEventsInput) (int, error)
	SummaryFunc      func(ctx context.Context, timeframe string) (*domain.BehaviorSummary, error)

	calls struct {
		RecordEvents []struct {
			Ctx   context.Context
			Input behavior.RecordEventsInput
		}
		Summary []struct {
			Ctx       context.Context
			Timeframe string
		}
	}
	lockRecordEvents sync.RWMutex
	lockSummary      sync.RWMutex
}

func (mock *behaviorServiceMock) RecordEvents(ctx context.Context, input behavior.RecordEventsInput) (int, error) {
	if mock.RecordEventsFunc == nil {
		panic("behaviorServiceMock.RecordEventsFunc: method is nil but behaviorService.RecordEvents was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input behavior.RecordEventsInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockRecordEvents.Lock()
	mock.calls.RecordEvents = append(mock.calls.RecordEvents, callInfo)
	mock.lockRecordEvents.Unlock()
	return mock.RecordEventsFunc(ctx, input)
}

func (mock *behaviorServiceMock) RecordEventsCalls() []struct {
	Ctx   context.Context
	Input behavior.RecordEventsInput
} {
	var calls []struct {
		Ctx   context.Context
		Input behavior.RecordEventsInput
	}
	mock.lockRecordEvents.RLock()
	calls = mock.calls.RecordEvents
	mock.lockRecordEvents.RUnlock()
	return calls
}

func (mock *behaviorServiceMock) Summary(ctx context.Context, timeframe string) (*domain.BehaviorSummary, error) {
	if mock.SummaryFunc == nil {
		panic("behaviorServiceMock.SummaryFunc: method is nil but behaviorService.Summary was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Timeframe string
	}{
		Ctx:       ctx,
		Timeframe: timeframe,
	}
	mock.lockSummary.Lock()
	mock.calls.Summary = append(mock.calls.Summary, callInfo)
	mock.lockSummary.Unlock()
	return mock.SummaryFunc(ctx, timeframe)
}

func (mock *behaviorServiceMock) SummaryCalls() []struct {
	Ctx       context.Context
	Timeframe string
} {
	var calls []struct {
		Ctx       context.Context
		Timeframe string
	}
	mock.lockSummary.RLock()
	calls = mock.calls.Summary
	mock.lockSummary.RUnlock()
	return calls
}

