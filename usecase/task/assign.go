package task

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
)

// AssignUsers adds the users to the task and the task to each user's
// back-reference list.
//
// The batch is validated up front: if any id is already assigned (or
// repeated within the batch) the whole call fails and nothing is
// persisted. Ids that do not resolve to a user are skipped silently;
// this tolerance is deliberate, not a bug.
func (e *Engine) AssignUsers(ctx context.Context, ident domain.Identity, id string, userIDs []string) (*domain.Task, error) {
	task, err := e.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, asDomain(err)
	}
	loaded := task.Versioning.Current

	seen := make(map[string]struct{}, len(userIDs))
	for _, userID := range userIDs {
		if _, dup := seen[userID]; dup || task.IsAssigned(userID) {
			return nil, domain.AlreadyAssigned(userID)
		}
		seen[userID] = struct{}{}
	}

	for _, userID := range userIDs {
		user, err := e.users.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				e.logger.Debug("skipping unresolved assignee", zap.String("user_id", userID), zap.String("task_id", task.ID))
				continue
			}
			return nil, asDomain(err)
		}
		user.AssignedTasks = appendUnique(user.AssignedTasks, task.ID)
		if err := e.users.Upsert(ctx, user); err != nil {
			return nil, asDomain(err)
		}
		task.AssignedUsers = append(task.AssignedUsers, userID)
	}

	task.Versioning.Current++
	if err := e.saveTask(ctx, task, loaded); err != nil {
		return nil, err
	}
	e.auditTask("Assigned Task", ident, task)
	return task, nil
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
