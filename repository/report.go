package repository

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

// AssigneeQuery selects tasks for the busiest-assignee report. Year,
// Month and Day filter on task creation time when non-zero. Least
// flips the ordering so the quietest assignee is returned instead.
type AssigneeQuery struct {
	Status domain.Status
	Role   domain.Role
	Year   int
	Month  int
	Day    int
	Least  bool
}

// PeakUnit selects the grouping bucket for peak reports.
type PeakUnit string

const (
	PeakByDay   PeakUnit = "day"
	PeakByMonth PeakUnit = "month"
)

func (u PeakUnit) Valid() bool {
	return u == PeakByDay || u == PeakByMonth
}

// ReportRepository answers the aggregation queries of the reporting
// usecase. Implementations return domain.ErrUserNotFound /
// domain.ErrTaskNotFound when a query matches nothing.
type ReportRepository interface {
	TopAssignee(ctx context.Context, q AssigneeQuery) (*domain.AssigneeActivity, error)
	PeakCreated(ctx context.Context, unit PeakUnit) (*domain.PeakBucket, error)
	PeakCompleted(ctx context.Context, unit PeakUnit, role domain.Role) (*domain.PeakBucket, error)
}
