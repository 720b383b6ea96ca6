package behavior

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

var _ profileStore = &profileStoreMock{}

type profileStoreMock struct {
	UpdateBehaviorSummaryFunc func(ctx context.Context, userID uuid.UUID, summary domain.BehaviorSummary) error

	calls struct {
		UpdateBehaviorSummary []struct {
			Ctx     context.Context
			UserID  uuid.UUID
			Summary domain.BehaviorSummary
		}
	}
	lockUpdateBehaviorSummary sync.RWMutex
}

func (mock *profileStoreMock) UpdateBehaviorSummary(ctx context.Context, userID uuid.UUID, summary domain.BehaviorSummary) error {
	if mock.UpdateBehaviorSummaryFunc == nil {
		panic("profileStoreMock.UpdateBehaviorSummaryFunc: method is nil but profileStore.UpdateBehaviorSummary was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		UserID  uuid.UUID
		Summary domain.BehaviorSummary
	}{
		Ctx:     ctx,
		UserID:  userID,
		Summary: summary,
	}
	mock.lockUpdateBehaviorSummary.Lock()
	mock.calls.UpdateBehaviorSummary = append(mock.calls.UpdateBehaviorSummary, callInfo)
	mock.lockUpdateBehaviorSummary.Unlock()
	return mock.UpdateBehaviorSummaryFunc(ctx, userID, summary)
}

func (mock *profileStoreMock) UpdateBehaviorSummaryCalls() []struct {
	Ctx     context.Context
	UserID  uuid.UUID
	Summary domain.BehaviorSummary
} {
	var calls []struct {
		Ctx     context.Context
		UserID  uuid.UUID
		Summary domain.BehaviorSummary
	}
	mock.lockUpdateBehaviorSummary.RLock()
	calls = mock.calls.UpdateBehaviorSummary
	mock.lockUpdateBehaviorSummary.RUnlock()
	return calls
}

