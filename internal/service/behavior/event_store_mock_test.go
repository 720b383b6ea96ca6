package behavior

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

var _ eventStore = &eventStoreMock{}

type eventStoreMock struct {
	FindEventsFunc   func(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.BehaviorEvent, error)
	InsertEventsFunc func(ctx context.Context, events []domain.BehaviorEvent) error

	calls struct {
		FindEvents []struct {
			Ctx    context.Context
			UserID uuid.UUID
			Since  time.Time
		}
		InsertEvents []struct {
			Ctx    context.Context
			Events []domain.BehaviorEvent
		}
	}
	lockFindEvents   sync.RWMutex
	lockInsertEvents sync.RWMutex
}

func (mock *eventStoreMock) FindEvents(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.BehaviorEvent, error) {
	if mock.FindEventsFunc == nil {
		panic("eventStoreMock.FindEventsFunc: method is nil but eventStore.FindEvents was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		Since  time.Time
	}{
		Ctx:    ctx,
		UserID: userID,
		Since:  since,
	}
	mock.lockFindEvents.Lock()
	mock.calls.FindEvents = append(mock.calls.FindEvents, callInfo)
	mock.lockFindEvents.Unlock()
	return mock.FindEventsFunc(ctx, userID, since)
}

func (mock *eventStoreMock) FindEventsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	Since  time.Time
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		Since  time.Time
	}
	mock.lockFindEvents.RLock()
	calls = mock.calls.FindEvents
	mock.lockFindEvents.RUnlock()
	return calls
}

func (mock *eventStoreMock) InsertEvents(ctx context.Context, events []domain.BehaviorEvent) error {
	if mock.InsertEventsFunc == nil {
		panic("eventStoreMock.InsertEventsFunc: method is nil but eventStore.InsertEvents was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Events []domain.BehaviorEvent
	}{
		Ctx:    ctx,
		Events: events,
	}
	mock.lockInsertEvents.Lock()
	mock.calls.InsertEvents = append(mock.calls.InsertEvents, callInfo)
	mock.lockInsertEvents.Unlock()
	return mock.InsertEventsFunc(ctx, events)
}

func (mock *eventStoreMock) InsertEventsCalls() []struct {
	Ctx    context.Context
	Events []domain.BehaviorEvent
} {
	var calls []struct {
		Ctx    context.Context
		Events []domain.BehaviorEvent
	}
	mock.lockInsertEvents.RLock()
	calls = mock.calls.InsertEvents
	mock.lockInsertEvents.RUnlock()
	return calls
}

