package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

// UseCase answers the reporting queries over the task corpus. All the
// heavy lifting happens in SQL; this layer validates parameters and
// classifies "nothing matched" results.
type UseCase struct {
	reports repository.ReportRepository
	logger  *zap.Logger
}

func New(reports repository.ReportRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		reports: reports,
		logger:  logger,
	}
}

// TopAssignee returns the user carrying the most (or, with q.Least,
// fewest) tasks in the given status, optionally narrowed by role and
// creation date parts.
func (uc *UseCase) TopAssignee(ctx context.Context, q repository.AssigneeQuery) (*domain.AssigneeActivity, error) {
	if !q.Status.Valid() {
		return nil, domain.InvalidInput(fmt.Sprintf("status %q is not recognized", q.Status))
	}
	if q.Role != "" && !q.Role.Valid() {
		return nil, domain.InvalidInput(fmt.Sprintf("role %q is not recognized", q.Role))
	}
	if q.Month < 0 || q.Month > 12 || q.Day < 0 || q.Day > 31 {
		return nil, domain.InvalidInput("month or day out of range")
	}
	return uc.reports.TopAssignee(ctx, q)
}

// PeakCreated returns the day-of-month or month in which the most tasks
// were created.
func (uc *UseCase) PeakCreated(ctx context.Context, unit repository.PeakUnit) (*domain.PeakBucket, error) {
	if !unit.Valid() {
		return nil, domain.InvalidInput(fmt.Sprintf("unit must be %q or %q", repository.PeakByDay, repository.PeakByMonth))
	}
	return uc.reports.PeakCreated(ctx, unit)
}

// PeakCompleted returns the day-of-month or month in which the most
// tasks reached "Done", optionally counting only tasks with at least
// one assignee of the given role.
func (uc *UseCase) PeakCompleted(ctx context.Context, unit repository.PeakUnit, role domain.Role) (*domain.PeakBucket, error) {
	if !unit.Valid() {
		return nil, domain.InvalidInput(fmt.Sprintf("unit must be %q or %q", repository.PeakByDay, repository.PeakByMonth))
	}
	if role != "" && !role.Valid() {
		return nil, domain.InvalidInput(fmt.Sprintf("role %q is not recognized", role))
	}
	return uc.reports.PeakCompleted(ctx, unit, role)
}
