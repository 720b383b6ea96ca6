package feed

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

var _ connectionStore = &connectionStoreMock{}

type connectionStoreMock struct {
	ListConnectionsFunc  func(ctx context.Context, userID uuid.UUID) ([]domain.PlatformConnection, error)
	UpsertConnectionFunc func(ctx context.Context, conn domain.PlatformConnection) error
	DeleteConnectionFunc func(ctx context.Context, userID uuid.UUID, platform domain.Platform) error

	calls struct {
		ListConnections []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		UpsertConnection []struct {
			Ctx  context.Context
			Conn domain.PlatformConnection
		}
		DeleteConnection []struct {
			Ctx      context.Context
			UserID   uuid.UUID
			Platform domain.Platform
		}
	}
	lockListConnections  sync.RWMutex
	lockUpsertConnection sync.RWMutex
	lockDeleteConnection sync.RWMutex
}

func (mock *connectionStoreMock) ListConnections(ctx context.Context, userID uuid.UUID) ([]domain.PlatformConnection, error) {
	if mock.ListConnectionsFunc == nil {
		panic("connectionStoreMock.ListConnectionsFunc: method is nil but connectionStore.ListConnections was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockListConnections.Lock()
	mock.calls.ListConnections = append(mock.calls.ListConnections, callInfo)
	mock.lockListConnections.Unlock()
	return mock.ListConnectionsFunc(ctx, userID)
}

func (mock *connectionStoreMock) ListConnectionsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
	}
	mock.lockListConnections.RLock()
	calls = mock.calls.ListConnections
	mock.lockListConnections.RUnlock()
	return calls
}

func (mock *connectionStoreMock) UpsertConnection(ctx context.Context, conn domain.PlatformConnection) error {
	if mock.UpsertConnectionFunc == nil {
		panic("connectionStoreMock.UpsertConnectionFunc: method is nil but connectionStore.UpsertConnection was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Conn domain.PlatformConnection
	}{
		Ctx:  ctx,
		Conn: conn,
	}
	mock.lockUpsertConnection.Lock()
	mock.calls.UpsertConnection = append(mock.calls.UpsertConnection, callInfo)
	mock.lockUpsertConnection.Unlock()
	return mock.UpsertConnectionFunc(ctx, conn)
}

func (mock *connectionStoreMock) UpsertConnectionCalls() []struct {
	Ctx  context.Context
	Conn domain.PlatformConnection
} {
	var calls []struct {
		Ctx  context.Context
		Conn domain.PlatformConnection
	}
	mock.lockUpsertConnection.RLock()
	calls = mock.calls.UpsertConnection
	mock.lockUpsertConnection.RUnlock()
	return calls
}

func (mock *connectionStoreMock) DeleteConnection(ctx context.Context, userID uuid.UUID, platform domain.Platform) error {
	if mock.DeleteConnectionFunc == nil {
		panic("connectionStoreMock.DeleteConnectionFunc: method is nil but connectionStore.DeleteConnection was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		UserID   uuid.UUID
		Platform domain.Platform
	}{
		Ctx:      ctx,
		UserID:   userID,
		Platform: platform,
	}
	mock.lockDeleteConnection.Lock()
	mock.calls.DeleteConnection = append(mock.calls.DeleteConnection, callInfo)
	mock.lockDeleteConnection.Unlock()
	return mock.DeleteConnectionFunc(ctx, userID, platform)
}

func (mock *connectionStoreMock) DeleteConnectionCalls() []struct {
	Ctx      context.Context
	UserID   uuid.UUID
	Platform domain.Platform
} {
	var calls []struct {
		Ctx      context.Context
		UserID   uuid.UUID
		Platform domain.Platform
	}
	mock.lockDeleteConnection.RLock()
	calls = mock.calls.DeleteConnection
	mock.lockDeleteConnection.RUnlock()
	return calls
}

