package behavior

import (
	"fmt"
	"strings"
	"time"

	"github.com/heartmarshall/feedsense-backend/internal/domain"
)

// MaxEventsPerBatch bounds a single ingestion call.
const MaxEventsPerBatch = 500

// EventInput is one client-reported interaction.
type EventInput struct {
	PostID      string
	EventType   domain.EventType
	Timestamp   time.Time
	DwellTimeMs *int64
	Metadata    domain.EventMetadata
	SessionID   *string
}

// RecordEventsInput holds the parameters for ingesting a batch of events.
type RecordEventsInput struct {
	Events []EventInput
}

// Validate checks all fields and collects all errors.
func (i RecordEventsInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Events) == 0 {
		errs = append(errs, domain.FieldError{Field: "events", Message: "at least one required"})
	}
	if len(i.Events) > MaxEventsPerBatch {
		errs = append(errs, domain.FieldError{Field: "events", Message: fmt.Sprintf("max %d per batch", MaxEventsPerBatch)})
	}

	for idx, e := range i.Events {
		prefix := fmt.Sprintf("events[%d]", idx)
		if strings.TrimSpace(e.PostID) == "" {
			errs = append(errs, domain.FieldError{Field: prefix + ".postId", Message: "required"})
		}
		if !e.EventType.IsValid() {
			errs = append(errs, domain.FieldError{Field: prefix + ".eventType", Message: "invalid value"})
		}
		if e.Timestamp.IsZero() {
			errs = append(errs, domain.FieldError{Field: prefix + ".timestamp", Message: "required"})
		}
		if e.DwellTimeMs != nil && *e.DwellTimeMs < 0 {
			errs = append(errs, domain.FieldError{Field: prefix + ".dwellTimeMs", Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
