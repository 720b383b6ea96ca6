package ranking

import (
	"context"
	"sync"
	"time"
)

var _ cache = &cacheMock{}

type cacheMock struct {
	GetFunc          func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc          func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeletePrefixFunc func(ctx context.Context, prefix string) error

	calls struct {
		Get []struct {
			Ctx context.Context
			Key string
		}
		Set []struct {
			Ctx   context.Context
			Key   string
			Value []byte
			Ttl   time.Duration
		}
		DeletePrefix []struct {
			Ctx    context.Context
			Prefix string
		}
	}
	lockGet          sync.RWMutex
	lockSet          sync.RWMutex
	lockDeletePrefix sync.RWMutex
}

func (mock *cacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if mock.GetFunc == nil {
		panic("cacheMock.GetFunc: method is nil but cache.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{
		Ctx: ctx,
		Key: key,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *cacheMock) GetCalls() []struct {
	Ctx context.Context
	Key string
} {
	var calls []struct {
		Ctx context.Context
		Key string
	}
	mock.lockGet.RLock()
	calls = mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *cacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if mock.SetFunc == nil {
		panic("cacheMock.SetFunc: method is nil but cache.Set was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Key   string
		Value []byte
		Ttl   time.Duration
	}{
		Ctx:   ctx,
		Key:   key,
		Value: value,
		Ttl:   ttl,
	}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, key, value, ttl)
}

func (mock *cacheMock) SetCalls() []struct {
	Ctx   context.Context
	Key   string
	Value []byte
	Ttl   time.Duration
} {
	var calls []struct {
		Ctx   context.Context
		Key   string
		Value []byte
		Ttl   time.Duration
	}
	mock.lockSet.RLock()
	calls = mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}

func (mock *cacheMock) DeletePrefix(ctx context.Context, prefix string) error {
	if mock.DeletePrefixFunc == nil {
		panic("cacheMock.DeletePrefixFunc: method is nil but cache.DeletePrefix was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Prefix string
	}{
		Ctx:    ctx,
		Prefix: prefix,
	}
	mock.lockDeletePrefix.Lock()
	mock.calls.DeletePrefix = append(mock.calls.DeletePrefix, callInfo)
	mock.lockDeletePrefix.Unlock()
	return mock.DeletePrefixFunc(ctx, prefix)
}

func (mock *cacheMock) DeletePrefixCalls() []struct {
	Ctx    context.Context
	Prefix string
} {
	var calls []struct {
		Ctx    context.Context
		Prefix string
	}
	mock.lockDeletePrefix.RLock()
	calls = mock.calls.DeletePrefix
	mock.lockDeletePrefix.RUnlock()
	return calls
}

