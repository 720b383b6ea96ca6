package ranking

import (
	"context"
	"sync"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

var _ oracle = &oracleMock{}

type oracleMock struct {
	RerankFunc func(ctx context.Context, req domain.OracleRequest) (*domain.OracleResponse, error)

	calls struct {
		Rerank []struct {
			Ctx context.Context
			Req domain.OracleRequest
		}
	}
	lockRerank sync.RWMutex
}

func (mock *oracleMock) Rerank(ctx context.Context, req domain.OracleRequest) (*domain.OracleResponse, error) {
	if mock.RerankFunc == nil {
		panic("oracleMock.RerankFunc: method is nil but oracle.Rerank was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.OracleRequest
	}{
		Ctx: ctx,
		Req: req,
	}
	mock.lockRerank.Lock()
	mock.calls.Rerank = append(mock.calls.Rerank, callInfo)
	mock.lockRerank.Unlock()
	return mock.RerankFunc(ctx, req)
}

func (mock *oracleMock) RerankCalls() []struct {
	Ctx context.Context
	Req domain.OracleRequest
} {
	var calls []struct {
		Ctx context.Context
		Req domain.OracleRequest
	}
	mock.lockRerank.RLock()
	calls = mock.calls.Rerank
	mock.lockRerank.RUnlock()
	return calls
}

