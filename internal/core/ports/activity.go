package ports

import (
	"context"
	"time"

	"github.com/recipebox/recipe-api/internal/core/domain"
)

// ActivityInput describes one audit-trail entry to record.
type ActivityInput struct {
	UserID    string
	Action    string
	RecipeID  int64
	Title     string
	Timestamp time.Time
}

// ActivityDispatcher accepts entries for asynchronous recording. Entries for
// the same user are processed in order.
type ActivityDispatcher interface {
	Enqueue(input ActivityInput)
}

// ActivityService persists a single audit-trail entry.
type ActivityService interface {
	Process(ctx context.Context, input ActivityInput) error
}

// ActivityRepository defines persistence for the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
}
