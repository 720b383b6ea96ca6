package feed

import (
	"context"
	"sync"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

var _ platformClient = &platformClientMock{}

type platformClientMock struct {
	FetchFeedFunc func(ctx context.Context, conn domain.PlatformConnection, limit int) ([]domain.RawPost, error)
	SupportsFunc  func(p domain.Platform) bool

	calls struct {
		FetchFeed []struct {
			Ctx   context.Context
			Conn  domain.PlatformConnection
			Limit int
		}
		Supports []struct {
			P domain.Platform
		}
	}
	lockFetchFeed sync.RWMutex
	lockSupports  sync.RWMutex
}

func (mock *platformClientMock) FetchFeed(ctx context.Context, conn domain.PlatformConnection, limit int) ([]domain.RawPost, error) {
	if mock.FetchFeedFunc == nil {
		panic("platformClientMock.FetchFeedFunc: method is nil but platformClient.FetchFeed was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Conn  domain.PlatformConnection
		Limit int
	}{
		Ctx:   ctx,
		Conn:  conn,
		Limit: limit,
	}
	mock.lockFetchFeed.Lock()
	mock.calls.FetchFeed = append(mock.calls.FetchFeed, callInfo)
	mock.lockFetchFeed.Unlock()
	return mock.FetchFeedFunc(ctx, conn, limit)
}

func (mock *platformClientMock) FetchFeedCalls() []struct {
	Ctx   context.Context
	Conn  domain.PlatformConnection
	Limit int
} {
	var calls []struct {
		Ctx   context.Context
		Conn  domain.PlatformConnection
		Limit int
	}
	mock.lockFetchFeed.RLock()
	calls = mock.calls.FetchFeed
	mock.lockFetchFeed.RUnlock()
	return calls
}

func (mock *platformClientMock) Supports(p domain.Platform) bool {
	if mock.SupportsFunc == nil {
		panic("platformClientMock.SupportsFunc: method is nil but platformClient.Supports was just called")
	}
	callInfo := struct {
		P domain.Platform
	}{
		P: p,
	}
	mock.lockSupports.Lock()
	mock.calls.Supports = append(mock.calls.Supports, callInfo)
	mock.lockSupports.Unlock()
	return mock.SupportsFunc(p)
}

func (mock *platformClientMock) SupportsCalls() []struct {
	P domain.Platform
} {
	var calls []struct {
		P domain.Platform
	}
	mock.lockSupports.RLock()
	calls = mock.calls.Supports
	mock.lockSupports.RUnlock()
	return calls
}

