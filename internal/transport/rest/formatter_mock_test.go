package rest

import (
	"sync"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
	"github.com/heartmarshall/feedsense-backend/internal/service/normalize"
)

var _ formatter = &formatterMock{}

type formatterMock struct {
	FormatForPlatformFunc func(content string, hashtags []string, platform domain.Platform, maxLength int) string
	LimitsForFunc         func(platform domain.Platform) normalize.FormatLimits

	calls struct {
		FormatForPlatform []struct {
			Content   string
			Hashtags  []string
			Platform  domain.Platform
			MaxLength int
		}
		LimitsFor []struct {
			Platform domain.Platform
		}
	}
	lockFormatForPlatform sync.RWMutex
	lockLimitsFor         sync.RWMutex
}

func (mock *formatterMock) FormatForPlatform(content string, hashtags []string, platform domain.Platform, maxLength int) string {
	if mock.FormatForPlatformFunc == nil {
		panic("formatterMock.FormatForPlatformFunc: method is nil but formatter.FormatForPlatform was just called")
	}
	callInfo := struct {
		Content   string
		Hashtags  []string
		Platform  domain.Platform
		MaxLength int
	}{
		Content:   content,
		Hashtags:  hashtags,
		Platform:  platform,
		MaxLength: maxLength,
	}
	mock.lockFormatForPlatform.Lock()
	mock.calls.FormatForPlatform = append(mock.calls.FormatForPlatform, callInfo)
	mock.lockFormatForPlatform.Unlock()
	return mock.FormatForPlatformFunc(content, hashtags, platform, maxLength)
}

func (mock *formatterMock) FormatForPlatformCalls() []struct {
	Content   string
	Hashtags  []string
	Platform  domain.Platform
	MaxLength int
} {
	var calls []struct {
		Content   string
		Hashtags  []string
		Platform  domain.Platform
		MaxLength int
	}
	mock.lockFormatForPlatform.RLock()
	calls = mock.calls.FormatForPlatform
	mock.lockFormatForPlatform.RUnlock()
	return calls
}

func (mock *formatterMock) LimitsFor(platform domain.Platform) normalize.FormatLimits {
	if mock.LimitsForFunc == nil {
		panic("formatterMock.LimitsForFunc: method is nil but formatter.LimitsFor was just called")
	}
	callInfo := struct {
		Platform domain.Platform
	}{
		Platform: platform,
	}
	mock.lockLimitsFor.Lock()
	mock.calls.LimitsFor = append(mock.calls.LimitsFor, callInfo)
	mock.lockLimitsFor.Unlock()
	return mock.LimitsForFunc(platform)
}

func (mock *formatterMock) LimitsForCalls() []struct {
	Platform domain.Platform
} {
	var calls []struct {
		Platform domain.Platform
	}
	mock.lockLimitsFor.RLock()
	calls = mock.calls.LimitsFor
	mock.lockLimitsFor.RUnlock()
	return calls
}

