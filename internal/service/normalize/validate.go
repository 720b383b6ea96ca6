package normalize

import (
	"time"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// Validate checks that the required fields of a normalized post are present.
func Validate(p domain.NormalizedPost) error {
	var errs []domain.FieldError

	if p.ID == "" {
		errs = append(errs, domain.FieldError{Field: "id", Message: "required"})
	}
	if p.Platform == "" {
		errs = append(errs, domain.FieldError{Field: "platform", Message: "required"})
	}
	if !p.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "invalid value"})
	}
	if p.Creator.Handle == "" {
		errs = append(errs, domain.FieldError{Field: "creator.handle", Message: "required"})
	}
	if p.Creator.ID == "" {
		errs = append(errs, domain.FieldError{Field: "creator.id", Message: "required"})
	}
	if p.Text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if _, err := time.Parse(time.RFC3339, p.TimePublished); err != nil {
		errs = append(errs, domain.FieldError{Field: "timePublished", Message: "must be RFC 3339"})
	}
	if p.Stats.Likes < 0 || p.Stats.Comments < 0 || p.Stats.Shares < 0 || p.Stats.Views < 0 {
		errs = append(errs, domain.FieldError{Field: "stats", Message: "must not be negative"})
	}
	if p.DurationSeconds != nil && *p.DurationSeconds < 0 {
		errs = append(errs, domain.FieldError{Field: "durationSeconds", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
