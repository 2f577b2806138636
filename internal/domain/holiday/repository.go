package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// ListBetween returns holidays whose date falls in [from, to], ordered by date.
	ListBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)
}
