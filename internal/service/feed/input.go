package feed

import (
	"unicode/utf8"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// MaxIntentLength bounds the free-form intent string.
const MaxIntentLength = 200

// GetFeedInput is the feed request. Zero Limit selects the default page size.
type GetFeedInput struct {
	Limit  int
	Offset int
	Intent string
	Mode   string
}

// Validate checks the input against maxLimit.
func (i GetFeedInput) Validate(maxLimit int) error {
	var errs []domain.FieldError

	if i.Limit < 0 || i.Limit > maxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 1 and the maximum page size"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}
	if utf8.RuneCountInString(i.Intent) > MaxIntentLength {
		errs = append(errs, domain.FieldError{Field: "intent", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ConnectInput links the current user to a platform account.
type ConnectInput struct {
	Platform       string
	ExternalUserID string
	AccessToken    string
}

func (i ConnectInput) Validate() error {
	var errs []domain.FieldError

	if !domain.Platform(i.Platform).IsValid() {
		errs = append(errs, domain.FieldError{Field: "platform", Message: "unsupported platform"})
	}
	if i.AccessToken == "" {
		errs = append(errs, domain.FieldError{Field: "access_token", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
