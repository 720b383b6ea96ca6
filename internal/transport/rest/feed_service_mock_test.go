package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/service/feed"
)

var _ feedService = &feedServiceMock{}

type feedServiceMock struct {
	GetFeedFunc    func(ctx context.Context, input feed.GetFeedInput) (*domain.RankedResult, error)
	ConnectFunc    func(ctx context.Context, input feed.ConnectInput) (*domain.PlatformConnection, error)
	DisconnectFunc func(ctx context.Context, platform string) error

	calls struct {
		GetFeed []struct {
			Ctx   context.Context
			Input feed.GetFeedInput
		}
		Connect []struct {
			Ctx   context.Context
			Input feed.ConnectInput
		}
		Disconnect []struct {
			Ctx      context.Context
			Platform string
		}
	}
	lockGetFeed    sync.RWMutex
	lockConnect    sync.RWMutex
	lockDisconnect sync.RWMutex
}

func (mock *feedServiceMock) GetFeed(ctx context.Context, input feed.GetFeedInput) (*domain.RankedResult, error) {
	if mock.GetFeedFunc == nil {
		panic("feedServiceMock.GetFeedFunc: method is nil but feedService.GetFeed was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input feed.GetFeedInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockGetFeed.Lock()
	mock.calls.GetFeed = append(mock.calls.GetFeed, callInfo)
	mock.lockGetFeed.Unlock()
	return mock.GetFeedFunc(ctx, input)
}

func (mock *feedServiceMock) GetFeedCalls() []struct {
	Ctx   context.Context
	Input feed.GetFeedInput
} {
	var calls []struct {
		Ctx   context.Context
		Input feed.GetFeedInput
	}
	mock.lockGetFeed.RLock()
	calls = mock.calls.GetFeed
	mock.lockGetFeed.RUnlock()
	return calls
}

func (mock *feedServiceMock) Connect(ctx context.Context, input feed.ConnectInput) (*domain.PlatformConnection, error) {
	if mock.ConnectFunc == nil {
		panic("feedServiceMock.ConnectFunc: method is nil but feedService.Connect was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input feed.ConnectInput
	}{
		Ctx:   ctx,
		Input: input,
	}
	mock.lockConnect.Lock()
	mock.calls.Connect = append(mock.calls.Connect, callInfo)
	mock.lockConnect.Unlock()
	return mock.ConnectFunc(ctx, input)
}

func (mock *feedServiceMock) ConnectCalls() []struct {
	Ctx   context.Context
	Input feed.ConnectInput
} {
	var calls []struct {
		Ctx   context.Context
		Input feed.ConnectInput
	}
	mock.lockConnect.RLock()
	calls = mock.calls.Connect
	mock.lockConnect.RUnlock()
	return calls
}

func (mock *feedServiceMock) Disconnect(ctx context.Context, platform string) error {
	if mock.DisconnectFunc == nil {
		panic("feedServiceMock.DisconnectFunc: method is nil but feedService.Disconnect was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		Platform string
	}{
		Ctx:      ctx,
		Platform: platform,
	}
	mock.lockDisconnect.Lock()
	mock.calls.Disconnect = append(mock.calls.Disconnect, callInfo)
	mock.lockDisconnect.Unlock()
	return mock.DisconnectFunc(ctx, platform)
}

func (mock *feedServiceMock) DisconnectCalls() []struct {
	Ctx      context.Context
	Platform string
} {
	var calls []struct {
		Ctx      context.Context
		Platform string
	}
	mock.lockDisconnect.RLock()
	calls = mock.calls.Disconnect
	mock.lockDisconnect.RUnlock()
	return calls
}

