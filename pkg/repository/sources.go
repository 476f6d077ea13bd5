package repository

import (
	"context"

	"github.com/trashtrack/trashtrack/pkg/wcdf"
)

// ScheduleSource provides bulk access to collection schedules. A failure
// here is fatal to any operation that needs a schedule.
type ScheduleSource interface {
	GetAllSchedules(ctx context.Context) ([]wcdf.Schedule, error)
}

// UserSource provides bulk access to users. Callers treat a failure as
// "no users available" rather than an error.
type UserSource interface {
	GetAllUsers(ctx context.Context) ([]wcdf.User, error)
}

// TPSSource provides bulk access to TPS records. Callers treat a failure as
// an empty station collection rather than an error.
type TPSSource interface {
	GetAllTPS(ctx context.Context) ([]wcdf.TPS, error)
}
