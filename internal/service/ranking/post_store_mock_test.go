package ranking

import (
	"context"
	"sync"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

var _ postStore = &postStoreMock{}

type postStoreMock struct {
	UpsertPostsFunc func(ctx context.Context, posts []domain.NormalizedPost) (int, error)

	calls struct {
		UpsertPosts []struct {
			Ctx   context.Context
			Posts []domain.NormalizedPost
		}
	}
	lockUpsertPosts sync.RWMutex
}

func (mock *postStoreMock) UpsertPosts(ctx context.Context, posts []domain.NormalizedPost) (int, error) {
	if mock.UpsertPostsFunc == nil {
		panic("postStoreMock.UpsertPostsFunc: method is nil but postStore.UpsertPosts was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Posts []domain.NormalizedPost
	}{
		Ctx:   ctx,
		Posts: posts,
	}
	mock.lockUpsertPosts.Lock()
	mock.calls.UpsertPosts = append(mock.calls.UpsertPosts, callInfo)
	mock.lockUpsertPosts.Unlock()
	return mock.UpsertPostsFunc(ctx, posts)
}

func (mock *postStoreMock) UpsertPostsCalls() []struct {
	Ctx   context.Context
	Posts []domain.NormalizedPost
} {
	var calls []struct {
		Ctx   context.Context
		Posts []domain.NormalizedPost
	}
	mock.lockUpsertPosts.RLock()
	calls = mock.calls.UpsertPosts
	mock.lockUpsertPosts.RUnlock()
	return calls
}

