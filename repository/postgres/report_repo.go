package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a Postgres-backed ReportRepository implementation.
func NewReportRepository(pool *pgxpool.Pool) repository.ReportRepository {
	return &reportRepository{pool: pool}
}

func (r *reportRepository) TopAssignee(ctx context.Context, q repository.AssigneeQuery) (*domain.AssigneeActivity, error) {
	direction := "DESC"
	if q.Least {
		direction = "ASC"
	}

	// Assignments live in the tasks.assigned_users jsonb array, so the
	// count is built by unnesting that array and joining users back in.
	query := fmt.Sprintf(`
	SELECT u.id, u.name, u.email, u.role, u.status, u.created_at, u.updated_at, COUNT(*) AS task_count
	FROM tasks t
	CROSS JOIN LATERAL jsonb_array_elements_text(t.assigned_users) AS a(user_id)
	JOIN users u ON u.id = a.user_id
	WHERE ($1 = '' OR t.status->>'current_status' = $1)
	  AND ($2 = '' OR u.role = $2)
	  AND ($3 = 0 OR EXTRACT(YEAR FROM t.created_at)::int = $3)
	  AND ($4 = 0 OR EXTRACT(MONTH FROM t.created_at)::int = $4)
	  AND ($5 = 0 OR EXTRACT(DAY FROM t.created_at)::int = $5)
	GROUP BY u.id, u.name, u.email, u.role, u.status, u.created_at, u.updated_at
	ORDER BY task_count %s, u.id ASC
	LIMIT 1
	`, direction)

	row := r.pool.QueryRow(ctx, query,
		string(q.Status), string(q.Role), q.Year, q.Month, q.Day)

	var activity domain.AssigneeActivity
	if err := row.Scan(
		&activity.User.ID,
		&activity.User.Name,
		&activity.User.Email,
		&activity.User.Role,
		&activity.User.Status,
		&activity.User.CreatedAt,
		&activity.User.UpdatedAt,
		&activity.TaskCount,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &activity, nil
}

func (r *reportRepository) PeakCreated(ctx context.Context, unit repository.PeakUnit) (*domain.PeakBucket, error) {
	query := fmt.Sprintf(`
	SELECT EXTRACT(%s FROM created_at)::int AS bucket, COUNT(*) AS task_count
	FROM tasks
	GROUP BY bucket
	ORDER BY task_count DESC, bucket ASC
	LIMIT 1
	`, extractField(unit))

	return r.scanPeak(ctx, unit, query)
}

func (r *reportRepository) PeakCompleted(ctx context.Context, unit repository.PeakUnit, role domain.Role) (*domain.PeakBucket, error) {
	// The latest transition sits at history index 0; for a Done task
	// that entry carries the moment the previous state was left, which
	// is when the task was completed.
	query := fmt.Sprintf(`
	SELECT EXTRACT(%s FROM (t.status->'history'->0->>'changed_at')::timestamptz)::int AS bucket,
	       COUNT(*) AS task_count
	FROM tasks t
	WHERE t.status->>'current_status' = 'Done'
	  AND jsonb_array_length(t.status->'history') > 0
	  AND ($1 = '' OR EXISTS (
		SELECT 1
		FROM jsonb_array_elements_text(t.assigned_users) AS a(user_id)
		JOIN users u ON u.id = a.user_id
		WHERE u.role = $1
	  ))
	GROUP BY bucket
	ORDER BY task_count DESC, bucket ASC
	LIMIT 1
	`, extractField(unit))

	return r.scanPeak(ctx, unit, query, string(role))
}

func (r *reportRepository) scanPeak(ctx context.Context, unit repository.PeakUnit, query string, args ...interface{}) (*domain.PeakBucket, error) {
	var (
		bucket int
		count  int
	)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&bucket, &count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &domain.PeakBucket{
		Unit:      string(unit),
		Label:     bucketLabel(unit, bucket),
		TaskCount: count,
	}, nil
}

func extractField(unit repository.PeakUnit) string {
	if unit == repository.PeakByMonth {
		return "MONTH"
	}
	return "DAY"
}

func bucketLabel(unit repository.PeakUnit, bucket int) string {
	if unit == repository.PeakByMonth && bucket >= 1 && bucket <= 12 {
		return time.Month(bucket).String()
	}
	return fmt.Sprintf("%d", bucket)
}
